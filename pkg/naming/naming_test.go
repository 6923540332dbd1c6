package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamespace(t *testing.T) {
	ns, err := ParseNamespace("tenant-1/ns-1")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", ns.Tenant)
	assert.Equal(t, "ns-1", ns.Namespace)
	assert.Equal(t, "tenant-1/ns-1", ns.String())

	for _, bad := range []string{"", "tenant-1", "tenant-1/", "/ns-1", "a/b/c"} {
		_, err := ParseNamespace(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseTopic(t *testing.T) {
	topic, err := ParseTopic("persistent://tenant-1/ns-1/topic-1")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1/ns-1", topic.NamespaceName().String())
	assert.Equal(t, "topic-1", topic.LocalName())
	assert.Equal(t, "tenant-1/ns-1/topic-1", topic.SchemaName())
	assert.Equal(t, "persistent://tenant-1/ns-1/topic-1", topic.String())

	short, err := ParseTopic("tenant-1/ns-1/topic-1")
	require.NoError(t, err)
	assert.Equal(t, topic, short)

	_, err = ParseTopic("persistent://tenant-1/topic-1")
	assert.Error(t, err)
}

func TestPartitionHandling(t *testing.T) {
	base := NewTopicName(NewNamespaceName("tenant-1", "ns-1"), "events")

	p2 := base.Partition(2)
	assert.Equal(t, "events-partition-2", p2.LocalName())
	assert.True(t, p2.IsPartition())
	assert.Equal(t, base, p2.PartitionedTopicName())

	assert.False(t, base.IsPartition())
	assert.Equal(t, base, base.PartitionedTopicName())

	// Suffix lookalikes without a trailing index are ordinary topics.
	odd := NewTopicName(base.NamespaceName(), "events-partition-")
	assert.False(t, odd.IsPartition())
	odd = NewTopicName(base.NamespaceName(), "events-partition-x")
	assert.False(t, odd.IsPartition())
}

func TestRewriteDelimiter(t *testing.T) {
	assert.Equal(t, "tenant-1/ns-1", RewriteDelimiter("tenant-1/ns-1", ""))
	assert.Equal(t, "tenant-1&ns-1", RewriteDelimiter("tenant-1/ns-1", "&"))
	assert.Equal(t, "tenant-1__ns-1", RewriteDelimiter("tenant-1/ns-1", "__"))

	for _, delim := range []string{"", "&", "__"} {
		rewritten := RewriteDelimiter("tenant-1/ns-1", delim)
		assert.Equal(t, "tenant-1/ns-1", RestoreDelimiter(rewritten, delim))
	}
}
