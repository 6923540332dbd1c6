package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streambridge/pulsarsql/internal/testutil"
)

func dataColumns(cols []Column) []Column {
	var out []Column
	for _, c := range cols {
		if !c.Internal {
			out = append(out, c)
		}
	}
	return out
}

func TestTranslateFlattensNestedRecords(t *testing.T) {
	fooSchema, err := testutil.ReadFixture("foo_schema.json")
	require.NoError(t, err)

	cols, err := Translate(Snapshot{Type: TypeAvro, Data: fooSchema})
	require.NoError(t, err)

	data := dataColumns(cols)
	names := make([]string, len(data))
	for i, c := range data {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"field1", "field2", "field3", "field4", "field5", "field6",
		"timestamp", "time", "date",
		"bar.field1", "bar.field2", "bar.test.field4",
	}, names)

	byName := make(map[string]Column, len(data))
	for _, c := range data {
		byName[c.Name] = c
	}

	assert.Equal(t, []int{0}, byName["field1"].PositionIndices)
	assert.Equal(t, Integer, byName["field1"].Type)
	assert.Equal(t, Timestamp, byName["timestamp"].Type)
	assert.Equal(t, Time, byName["time"].Type)
	assert.Equal(t, Date, byName["date"].Type)

	assert.Equal(t, []int{9, 0}, byName["bar.field1"].PositionIndices)
	assert.Equal(t, []string{"bar", "field1"}, byName["bar.field1"].FieldNames)
	assert.True(t, byName["bar.field1"].Nullable)
	assert.Equal(t, []int{9, 2, 0}, byName["bar.test.field4"].PositionIndices)
	assert.Equal(t, []string{"bar", "test", "field4"}, byName["bar.test.field4"].FieldNames)

	// Internal columns follow data columns, in registry order.
	tail := cols[len(data):]
	require.Len(t, tail, len(InternalColumns()))
	for i, c := range InternalColumns() {
		assert.Equal(t, c, tail[i])
	}
}

func TestTranslateSimpleNesting(t *testing.T) {
	// {a: int, b: {c: string}} => [a, b.c] with indices [0] and [1, 0].
	def := `{
		"type": "record", "name": "R",
		"fields": [
			{"name": "a", "type": "int"},
			{"name": "b", "type": {"type": "record", "name": "B", "fields": [
				{"name": "c", "type": "string"}
			]}}
		]
	}`
	cols, err := Translate(Snapshot{Type: TypeJSON, Data: []byte(def)})
	require.NoError(t, err)

	data := dataColumns(cols)
	require.Len(t, data, 2)
	assert.Equal(t, "a", data[0].Name)
	assert.Equal(t, []int{0}, data[0].PositionIndices)
	assert.Equal(t, "b.c", data[1].Name)
	assert.Equal(t, []int{1, 0}, data[1].PositionIndices)
}

func TestTranslateContainerAndEnumFields(t *testing.T) {
	def := `{
		"type": "record", "name": "R",
		"fields": [
			{"name": "tags", "type": {"type": "array", "items": "string"}},
			{"name": "attrs", "type": {"type": "map", "values": "long"}},
			{"name": "color", "type": {"type": "enum", "name": "Color", "symbols": ["RED", "BLUE"]}},
			{"name": "digest", "type": {"type": "fixed", "name": "MD5", "size": 16}}
		]
	}`
	cols, err := Translate(Snapshot{Type: TypeAvro, Data: []byte(def)})
	require.NoError(t, err)

	data := dataColumns(cols)
	require.Len(t, data, 4)
	assert.Equal(t, JSON, data[0].Type)
	assert.Equal(t, JSON, data[1].Type)
	assert.Equal(t, Varchar, data[2].Type)
	assert.Equal(t, Varbinary, data[3].Type)
	assert.Equal(t, []int{1}, data[1].PositionIndices)
}

func TestTranslatePrimitiveSchemas(t *testing.T) {
	tests := []struct {
		schemaType Type
		want       ColumnType
	}{
		{TypeString, Varchar},
		{TypeInt64, Bigint},
		{TypeDouble, Double},
		{TypeBoolean, Boolean},
		{TypeNone, Varbinary},
	}
	for _, tt := range tests {
		t.Run(string(tt.schemaType), func(t *testing.T) {
			cols, err := Translate(Snapshot{Type: tt.schemaType})
			require.NoError(t, err)
			require.Len(t, cols, len(InternalColumns())+1)
			assert.Equal(t, ValueColumnName, cols[0].Name)
			assert.Equal(t, tt.want, cols[0].Type)
		})
	}
}

func TestTranslateInvalid(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"empty bytes", Snapshot{Type: TypeAvro, Data: []byte{}}},
		{"whitespace only", Snapshot{Type: TypeJSON, Data: []byte("  \n")}},
		{"garbage", Snapshot{Type: TypeAvro, Data: []byte("foo")}},
		{"non-record root", Snapshot{Type: TypeAvro, Data: []byte(`"string"`)}},
		{"multi-branch union", Snapshot{Type: TypeAvro, Data: []byte(`{
			"type": "record", "name": "R",
			"fields": [{"name": "x", "type": ["int", "string"]}]
		}`)}},
		{"internal name collision", Snapshot{Type: TypeAvro, Data: []byte(`{
			"type": "record", "name": "R",
			"fields": [{"name": "__key__", "type": "string"}]
		}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.snap)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestInternalColumnLookup(t *testing.T) {
	c, ok := InternalColumn("__publish_time__")
	require.True(t, ok)
	assert.Equal(t, Timestamp, c.Type)
	assert.True(t, c.Internal)

	_, ok = InternalColumn("field1")
	assert.False(t, ok)

	// Returned slice is a copy; mutating it must not affect the registry.
	cols := InternalColumns()
	cols[0].Name = "mutated"
	assert.Equal(t, "__event_time__", InternalColumns()[0].Name)
}
