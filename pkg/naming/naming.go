// Package naming provides value types for Pulsar namespace and topic
// identifiers, including partitioned-topic suffix handling and the
// optional namespace-delimiter rewrite applied to SQL schema names.
package naming

import (
	"fmt"
	"strings"
)

const (
	// PersistentDomain prefixes fully qualified names of persistent topics.
	PersistentDomain = "persistent"

	// PartitionSuffix joins a partitioned topic's base name to a partition index.
	PartitionSuffix = "-partition-"

	namespaceSeparator = "/"
)

// NamespaceName identifies a tenant/namespace pair.
type NamespaceName struct {
	Tenant    string
	Namespace string
}

// NewNamespaceName returns the namespace identified by tenant and namespace.
func NewNamespaceName(tenant, namespace string) NamespaceName {
	return NamespaceName{Tenant: tenant, Namespace: namespace}
}

// ParseNamespace parses the canonical "tenant/namespace" form.
func ParseNamespace(s string) (NamespaceName, error) {
	parts := strings.Split(s, namespaceSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NamespaceName{}, fmt.Errorf("invalid namespace %q: expected tenant/namespace", s)
	}
	return NamespaceName{Tenant: parts[0], Namespace: parts[1]}, nil
}

// String returns the canonical "tenant/namespace" form.
func (n NamespaceName) String() string {
	return n.Tenant + namespaceSeparator + n.Namespace
}

// TopicName identifies a single Pulsar topic.
type TopicName struct {
	Domain    string
	Tenant    string
	Namespace string
	Local     string
}

// NewTopicName returns the persistent topic local to ns.
func NewTopicName(ns NamespaceName, local string) TopicName {
	return TopicName{Domain: PersistentDomain, Tenant: ns.Tenant, Namespace: ns.Namespace, Local: local}
}

// ParseTopic parses either a fully qualified "domain://tenant/ns/local"
// name or the short "tenant/ns/local" form used by the schema registry.
func ParseTopic(s string) (TopicName, error) {
	domain := PersistentDomain
	rest := s
	if i := strings.Index(s, "://"); i >= 0 {
		domain = s[:i]
		rest = s[i+3:]
	}
	parts := strings.Split(rest, namespaceSeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return TopicName{}, fmt.Errorf("invalid topic name %q", s)
	}
	return TopicName{Domain: domain, Tenant: parts[0], Namespace: parts[1], Local: parts[2]}, nil
}

// String returns the fully qualified topic name.
func (t TopicName) String() string {
	return fmt.Sprintf("%s://%s/%s/%s", t.Domain, t.Tenant, t.Namespace, t.Local)
}

// NamespaceName returns the namespace the topic belongs to.
func (t TopicName) NamespaceName() NamespaceName {
	return NamespaceName{Tenant: t.Tenant, Namespace: t.Namespace}
}

// LocalName returns the topic name without domain and namespace. It is
// used as the SQL table name.
func (t TopicName) LocalName() string {
	return t.Local
}

// SchemaName returns the "tenant/ns/local" key the schema registry uses.
func (t TopicName) SchemaName() string {
	return t.Tenant + namespaceSeparator + t.Namespace + namespaceSeparator + t.Local
}

// IsPartition reports whether the topic is one partition of a
// partitioned topic.
func (t TopicName) IsPartition() bool {
	i := strings.LastIndex(t.Local, PartitionSuffix)
	if i <= 0 {
		return false
	}
	idx := t.Local[i+len(PartitionSuffix):]
	if idx == "" {
		return false
	}
	for _, r := range idx {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PartitionedTopicName returns the base topic shared by all partitions.
// For a non-partition topic it returns the topic unchanged.
func (t TopicName) PartitionedTopicName() TopicName {
	if !t.IsPartition() {
		return t
	}
	base := t.Local[:strings.LastIndex(t.Local, PartitionSuffix)]
	return TopicName{Domain: t.Domain, Tenant: t.Tenant, Namespace: t.Namespace, Local: base}
}

// Partition returns the topic of partition i of a partitioned topic.
func (t TopicName) Partition(i int) TopicName {
	return TopicName{
		Domain:    t.Domain,
		Tenant:    t.Tenant,
		Namespace: t.Namespace,
		Local:     fmt.Sprintf("%s%s%d", t.Local, PartitionSuffix, i),
	}
}

// RewriteDelimiter replaces the namespace separator in ns with delim.
// An empty delim disables rewriting. Purely cosmetic: some SQL clients
// cannot quote schema names containing "/".
func RewriteDelimiter(ns, delim string) string {
	if delim == "" {
		return ns
	}
	return strings.ReplaceAll(ns, namespaceSeparator, delim)
}

// RestoreDelimiter reverses RewriteDelimiter on a caller-supplied
// schema name, recovering the canonical tenant/namespace form.
func RestoreDelimiter(s, delim string) string {
	if delim == "" {
		return s
	}
	return strings.ReplaceAll(s, delim, namespaceSeparator)
}
