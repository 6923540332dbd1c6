package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/streambridge/pulsarsql/pkg/admin"
	"github.com/streambridge/pulsarsql/pkg/metrics"
	"github.com/streambridge/pulsarsql/pkg/naming"
	"github.com/streambridge/pulsarsql/pkg/schema"
)

// SchemaTable names one table within one schema. Schema is always the
// canonical tenant/namespace form.
type SchemaTable struct {
	Schema string `json:"schema"`
	Table  string `json:"table"`
}

// TableMetadata is the result of resolving a table handle.
type TableMetadata struct {
	Schema  string          `json:"schema"`
	Table   string          `json:"table"`
	Columns []schema.Column `json:"columns"`
}

// Prefix scopes a ListTableColumns scan. An empty Table covers every
// table in the schema.
type Prefix struct {
	Schema string
	Table  string
}

// Catalog implements the connector's read-only metadata surface over
// the broker collaborators. Configuration is read-only after New, so
// concurrent calls need no synchronization.
type Catalog struct {
	connectorID string
	directory   admin.NamespaceDirectory
	topics      admin.TopicDirectory
	registry    admin.SchemaRegistry
	delimiter   string
	logger      *zap.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the catalog logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// WithNamespaceDelimiter rewrites the "/" separator of exposed schema
// names with delim. Empty disables rewriting.
func WithNamespaceDelimiter(delim string) Option {
	return func(c *Catalog) { c.delimiter = delim }
}

// New returns a Catalog over the given collaborators.
func New(connectorID string, directory admin.NamespaceDirectory, topics admin.TopicDirectory, registry admin.SchemaRegistry, opts ...Option) *Catalog {
	c := &Catalog{
		connectorID: connectorID,
		directory:   directory,
		topics:      topics,
		registry:    registry,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSchemaNames returns one schema name per tenant/namespace pair,
// delimiter-rewritten when configured.
func (c *Catalog) ListSchemaNames(ctx context.Context) ([]string, error) {
	metrics.CatalogOperations.WithLabelValues("listSchemaNames").Inc()

	namespaces, err := c.listNamespaces(ctx)
	if err != nil {
		metrics.CatalogErrors.WithLabelValues("listSchemaNames", errorKind(err)).Inc()
		return nil, err
	}
	names := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		names = append(names, naming.RewriteDelimiter(ns.String(), c.delimiter))
	}
	return names, nil
}

// ListTables returns one entry per logical topic in schemaName, with
// all partitions of a partitioned topic coalesced into a single entry
// named after the base topic. An empty or unknown schema yields an
// empty list, not an error.
func (c *Catalog) ListTables(ctx context.Context, schemaName string) ([]SchemaTable, error) {
	metrics.CatalogOperations.WithLabelValues("listTables").Inc()

	if schemaName == "" {
		return nil, nil
	}
	ns, err := naming.ParseNamespace(naming.RestoreDelimiter(schemaName, c.delimiter))
	if err != nil {
		return nil, nil
	}

	logical, err := c.logicalTopics(ctx, ns)
	if errors.Is(err, admin.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		metrics.CatalogErrors.WithLabelValues("listTables", errorKind(err)).Inc()
		return nil, err
	}

	tables := make([]SchemaTable, 0, len(logical))
	for _, t := range logical {
		tables = append(tables, SchemaTable{Schema: t.NamespaceName().String(), Table: t.LocalName()})
	}
	return tables, nil
}

// GetTableHandle constructs a handle without checking existence;
// later calls validate lazily. The schema name is restored to its
// canonical form first.
func (c *Catalog) GetTableHandle(_ context.Context, schemaName, tableName string) TableHandle {
	metrics.CatalogOperations.WithLabelValues("getTableHandle").Inc()

	canonical := naming.RestoreDelimiter(schemaName, c.delimiter)
	return NewTableHandle(c.connectorID, canonical, tableName, tableName)
}

// GetTableMetadata resolves a handle into its column list.
func (c *Catalog) GetTableMetadata(ctx context.Context, h TableHandle) (TableMetadata, error) {
	metrics.CatalogOperations.WithLabelValues("getTableMetadata").Inc()

	cols, err := c.resolveColumns(ctx, h)
	if err != nil {
		metrics.CatalogErrors.WithLabelValues("getTableMetadata", errorKind(err)).Inc()
		return TableMetadata{}, err
	}
	return TableMetadata{Schema: h.SchemaName, Table: h.TableName, Columns: cols}, nil
}

// GetColumnHandles resolves a handle into one column handle per
// column, keyed by column name. It fails on exactly the same
// conditions as GetTableMetadata.
func (c *Catalog) GetColumnHandles(ctx context.Context, h TableHandle) (map[string]ColumnHandle, error) {
	metrics.CatalogOperations.WithLabelValues("getColumnHandles").Inc()

	cols, err := c.resolveColumns(ctx, h)
	if err != nil {
		metrics.CatalogErrors.WithLabelValues("getColumnHandles", errorKind(err)).Inc()
		return nil, err
	}
	handles := make(map[string]ColumnHandle, len(cols))
	for _, col := range cols {
		handles[col.Name] = NewColumnHandle(c.connectorID, col)
	}
	return handles, nil
}

// ListTableColumns resolves every table matching the prefix. Unlike
// the single-table path, a topic with an invalid schema or a failing
// collaborator does not abort the scan: the topic is skipped with a
// warning and the scan continues. An unknown schema yields an empty
// map.
func (c *Catalog) ListTableColumns(ctx context.Context, p Prefix) (map[string][]schema.Column, error) {
	metrics.CatalogOperations.WithLabelValues("listTableColumns").Inc()

	canonical := naming.RestoreDelimiter(p.Schema, c.delimiter)
	if _, err := naming.ParseNamespace(canonical); err != nil {
		return map[string][]schema.Column{}, nil
	}
	known, err := c.namespaceExists(ctx, canonical)
	if err != nil {
		metrics.CatalogErrors.WithLabelValues("listTableColumns", errorKind(err)).Inc()
		return nil, err
	}
	if !known {
		return map[string][]schema.Column{}, nil
	}

	var tables []SchemaTable
	if p.Table != "" {
		tables = []SchemaTable{{Schema: canonical, Table: p.Table}}
	} else {
		if tables, err = c.ListTables(ctx, p.Schema); err != nil {
			metrics.CatalogErrors.WithLabelValues("listTableColumns", errorKind(err)).Inc()
			return nil, err
		}
	}

	out := make(map[string][]schema.Column, len(tables))
	for _, table := range tables {
		h := NewTableHandle(c.connectorID, table.Schema, table.Table, table.Table)
		cols, err := c.resolveColumns(ctx, h)
		if err != nil {
			kind := errorKind(err)
			metrics.SkippedTopics.WithLabelValues(kind).Inc()
			c.logger.Warn("skipping topic during column scan",
				zap.String("schema", table.Schema),
				zap.String("table", table.Table),
				zap.String("reason", kind),
				zap.Error(err))
			continue
		}
		out[table.Table] = cols
	}
	return out, nil
}

// resolveColumns is the shared resolution pipeline: namespace check,
// topic check (partition-aware), schema fetch, translation. Branches
// map one-to-one onto the error taxonomy; collaborator failures pass
// through wrapped only with %w.
func (c *Catalog) resolveColumns(ctx context.Context, h TableHandle) ([]schema.Column, error) {
	ns, err := naming.ParseNamespace(h.SchemaName)
	if err != nil {
		return nil, &SchemaNotFoundError{Schema: h.SchemaName}
	}
	known, err := c.namespaceExists(ctx, h.SchemaName)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, &SchemaNotFoundError{Schema: h.SchemaName}
	}

	topic, found, err := c.findTopic(ctx, ns, h.TopicName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &TableNotFoundError{Schema: h.SchemaName, Table: h.TableName}
	}

	start := time.Now()
	snap, err := c.registry.GetSchemaInfo(ctx, topic)
	metrics.SchemaFetchDuration.WithLabelValues(ns.String()).Observe(time.Since(start).Seconds())
	if errors.Is(err, admin.ErrNotFound) {
		// No schema registered: expose the envelope plus the raw value.
		return append([]schema.Column{schema.ValueColumn(schema.Varbinary)}, schema.InternalColumns()...), nil
	}
	if err != nil {
		return nil, err
	}

	cols, err := schema.Translate(snap)
	if errors.Is(err, schema.ErrInvalidSchema) {
		return nil, &InvalidSchemaError{Topic: topic, cause: err}
	}
	if err != nil {
		return nil, fmt.Errorf("translate schema of %s: %w", topic, err)
	}
	return cols, nil
}

// listNamespaces enumerates every tenant/namespace pair the directory
// knows, preserving directory order.
func (c *Catalog) listNamespaces(ctx context.Context) ([]naming.NamespaceName, error) {
	tenants, err := c.directory.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	var namespaces []naming.NamespaceName
	for _, tenant := range tenants {
		nss, err := c.directory.ListNamespaces(ctx, tenant)
		if err != nil {
			return nil, err
		}
		namespaces = append(namespaces, nss...)
	}
	return namespaces, nil
}

func (c *Catalog) namespaceExists(ctx context.Context, canonical string) (bool, error) {
	namespaces, err := c.listNamespaces(ctx)
	if err != nil {
		return false, err
	}
	for _, ns := range namespaces {
		if ns.String() == canonical {
			return true, nil
		}
	}
	return false, nil
}

// logicalTopics lists the namespace's topics with partitions coalesced
// to their base topic, preserving discovery order: raw topics first,
// then partitioned base topics not already seen.
func (c *Catalog) logicalTopics(ctx context.Context, ns naming.NamespaceName) ([]naming.TopicName, error) {
	raw, err := c.topics.ListTopics(ctx, ns)
	if err != nil {
		return nil, err
	}
	partitioned, err := c.topics.ListPartitionedTopics(ctx, ns)
	if err != nil && !errors.Is(err, admin.ErrNotFound) {
		return nil, err
	}

	seen := make(map[string]bool)
	var logical []naming.TopicName
	for _, t := range raw {
		base := t.PartitionedTopicName()
		if seen[base.LocalName()] {
			continue
		}
		seen[base.LocalName()] = true
		logical = append(logical, base)
	}
	for _, t := range partitioned {
		if seen[t.LocalName()] {
			continue
		}
		seen[t.LocalName()] = true
		logical = append(logical, t)
	}
	return logical, nil
}

// findTopic locates tableName among the namespace's logical topics.
func (c *Catalog) findTopic(ctx context.Context, ns naming.NamespaceName, tableName string) (naming.TopicName, bool, error) {
	logical, err := c.logicalTopics(ctx, ns)
	if err != nil && !errors.Is(err, admin.ErrNotFound) {
		return naming.TopicName{}, false, err
	}
	for _, t := range logical {
		if t.LocalName() == tableName {
			return t, true, nil
		}
	}
	return naming.TopicName{}, false, nil
}
