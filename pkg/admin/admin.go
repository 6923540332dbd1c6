// Package admin defines the broker-side collaborators the catalog
// reads from, and an HTTP client implementing them against the Pulsar
// admin REST API.
package admin

import (
	"context"
	"errors"

	"github.com/streambridge/pulsarsql/pkg/naming"
	"github.com/streambridge/pulsarsql/pkg/schema"
)

// ErrNotFound is returned when the broker reports 404 for the
// requested tenant, namespace, topic, or schema.
var ErrNotFound = errors.New("not found")

// NamespaceDirectory enumerates tenants and their namespaces.
type NamespaceDirectory interface {
	ListTenants(ctx context.Context) ([]string, error)
	// ListNamespaces fails with ErrNotFound if the tenant is absent.
	ListNamespaces(ctx context.Context, tenant string) ([]naming.NamespaceName, error)
}

// TopicDirectory enumerates topics within a namespace.
type TopicDirectory interface {
	// ListTopics returns raw topic names, including the
	// partition-suffixed names of partitioned topics.
	ListTopics(ctx context.Context, ns naming.NamespaceName) ([]naming.TopicName, error)
	// ListPartitionedTopics returns the base names of partitioned topics.
	ListPartitionedTopics(ctx context.Context, ns naming.NamespaceName) ([]naming.TopicName, error)
}

// SchemaRegistry fetches the latest schema registered for a topic.
type SchemaRegistry interface {
	// GetSchemaInfo fails with ErrNotFound when no schema is registered.
	GetSchemaInfo(ctx context.Context, topic naming.TopicName) (schema.Snapshot, error)
}
