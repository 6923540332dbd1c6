package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streambridge/pulsarsql/pkg/naming"
	"github.com/streambridge/pulsarsql/pkg/schema"
)

func TestClientListTenantsAndNamespaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/v2/tenants":
			w.Write([]byte(`["tenant-1","tenant-2"]`))
		case "/admin/v2/namespaces/tenant-1":
			w.Write([]byte(`["tenant-1/ns-1","tenant-1/ns-2"]`))
		case "/admin/v2/namespaces/missing":
			http.NotFound(w, r)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	tenants, err := c.ListTenants(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant-1", "tenant-2"}, tenants)

	namespaces, err := c.ListNamespaces(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, namespaces, 2)
	assert.Equal(t, "tenant-1/ns-1", namespaces[0].String())

	_, err = c.ListNamespaces(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientListTopics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/v2/persistent/tenant-1/ns-1":
			w.Write([]byte(`["persistent://tenant-1/ns-1/topic-1","persistent://tenant-1/ns-1/pt-partition-0"]`))
		case "/admin/v2/persistent/tenant-1/ns-1/partitioned":
			w.Write([]byte(`["persistent://tenant-1/ns-1/pt"]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ns := naming.NewNamespaceName("tenant-1", "ns-1")

	topics, err := c.ListTopics(context.Background(), ns)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "topic-1", topics[0].LocalName())
	assert.True(t, topics[1].IsPartition())

	partitioned, err := c.ListPartitionedTopics(context.Background(), ns)
	require.NoError(t, err)
	require.Len(t, partitioned, 1)
	assert.Equal(t, "pt", partitioned[0].LocalName())
}

func TestClientGetSchemaInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/v2/schemas/tenant-1/ns-1/topic-1/schema":
			w.Write([]byte(`{"type":"AVRO","data":"{\"type\":\"record\",\"name\":\"R\",\"fields\":[]}"}`))
		case "/admin/v2/schemas/tenant-1/ns-1/bare/schema":
			http.NotFound(w, r)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ns := naming.NewNamespaceName("tenant-1", "ns-1")

	snap, err := c.GetSchemaInfo(context.Background(), naming.NewTopicName(ns, "topic-1"))
	require.NoError(t, err)
	assert.Equal(t, schema.TypeAvro, snap.Type)
	assert.Contains(t, string(snap.Data), `"record"`)

	_, err = c.GetSchemaInfo(context.Background(), naming.NewTopicName(ns, "bare"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "broker unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`["tenant-1"]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithMaxRetries(5))
	tenants, err := c.ListTenants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant-1"}, tenants)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithMaxRetries(5))
	_, err := c.ListTenants(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}
