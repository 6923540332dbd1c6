package admin

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/streambridge/pulsarsql/pkg/naming"
	"github.com/streambridge/pulsarsql/pkg/schema"
)

const adminBasePath = "/admin/v2"

// Client talks to the Pulsar admin REST API. It implements
// NamespaceDirectory, TopicDirectory, and SchemaRegistry.
//
// Transient failures (transport errors and 5xx responses) are retried
// with exponential backoff; 404 maps to ErrNotFound and is never
// retried. The catalog core on top stays retry-free.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	maxRetries uint64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the client logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxRetries caps retry attempts for transient failures.
func WithMaxRetries(n uint64) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient returns a Client for the broker's web service URL,
// eg "http://localhost:8080".
func NewClient(webServiceURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(webServiceURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTenants implements NamespaceDirectory.
func (c *Client) ListTenants(ctx context.Context) ([]string, error) {
	var tenants []string
	if err := c.get(ctx, "/tenants", &tenants); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// ListNamespaces implements NamespaceDirectory.
func (c *Client) ListNamespaces(ctx context.Context, tenant string) ([]naming.NamespaceName, error) {
	var raw []string
	if err := c.get(ctx, "/namespaces/"+url.PathEscape(tenant), &raw); err != nil {
		return nil, fmt.Errorf("list namespaces of %s: %w", tenant, err)
	}
	namespaces := make([]naming.NamespaceName, 0, len(raw))
	for _, s := range raw {
		ns, err := naming.ParseNamespace(s)
		if err != nil {
			c.logger.Warn("skipping unparsable namespace", zap.String("namespace", s), zap.Error(err))
			continue
		}
		namespaces = append(namespaces, ns)
	}
	return namespaces, nil
}

// ListTopics implements TopicDirectory.
func (c *Client) ListTopics(ctx context.Context, ns naming.NamespaceName) ([]naming.TopicName, error) {
	return c.listTopics(ctx, ns, "")
}

// ListPartitionedTopics implements TopicDirectory.
func (c *Client) ListPartitionedTopics(ctx context.Context, ns naming.NamespaceName) ([]naming.TopicName, error) {
	return c.listTopics(ctx, ns, "/partitioned")
}

func (c *Client) listTopics(ctx context.Context, ns naming.NamespaceName, suffix string) ([]naming.TopicName, error) {
	path := fmt.Sprintf("/persistent/%s/%s%s", url.PathEscape(ns.Tenant), url.PathEscape(ns.Namespace), suffix)
	var raw []string
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("list topics of %s: %w", ns, err)
	}
	topics := make([]naming.TopicName, 0, len(raw))
	for _, s := range raw {
		topic, err := naming.ParseTopic(s)
		if err != nil {
			c.logger.Warn("skipping unparsable topic", zap.String("topic", s), zap.Error(err))
			continue
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

// schemaPayload is the admin API's GetSchema response body. The
// definition arrives as a JSON string, not raw bytes.
type schemaPayload struct {
	Type       string            `json:"type"`
	Data       string            `json:"data"`
	Properties map[string]string `json:"properties"`
}

// GetSchemaInfo implements SchemaRegistry.
func (c *Client) GetSchemaInfo(ctx context.Context, topic naming.TopicName) (schema.Snapshot, error) {
	path := fmt.Sprintf("/schemas/%s/schema", topic.SchemaName())
	var payload schemaPayload
	if err := c.get(ctx, path, &payload); err != nil {
		return schema.Snapshot{}, fmt.Errorf("get schema of %s: %w", topic, err)
	}
	return schema.Snapshot{
		Type: schema.Type(cmp.Or(payload.Type, string(schema.TypeNone))),
		Data: []byte(payload.Data),
	}, nil
}

// get performs a GET against the admin API and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, out any) error {
	u := c.baseURL + adminBasePath + path

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug("admin request failed, retrying", zap.String("url", u), zap.Error(err))
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s: %w", u, ErrNotFound))
		case resp.StatusCode >= 500:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			c.logger.Debug("admin request failed, retrying",
				zap.String("url", u), zap.Int("status", resp.StatusCode))
			return fmt.Errorf("%s: status %d: %s", u, resp.StatusCode, strings.TrimSpace(string(body)))
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("%s: status %d: %s", u, resp.StatusCode, strings.TrimSpace(string(body))))
		}
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	return backoff.Retry(operation, bo)
}
