// Package schema translates Pulsar schema-registry snapshots into the
// flat, typed column lists a SQL engine expects. Nested record fields
// are flattened depth-first into dotted column names carrying the
// positional offsets needed to project them back out of a message.
package schema

// Type is the schema type tag reported by the registry.
type Type string

const (
	TypeAvro      Type = "AVRO"
	TypeJSON      Type = "JSON"
	TypeNone      Type = "NONE"
	TypeString    Type = "STRING"
	TypeBoolean   Type = "BOOLEAN"
	TypeInt8      Type = "INT8"
	TypeInt16     Type = "INT16"
	TypeInt32     Type = "INT32"
	TypeInt64     Type = "INT64"
	TypeFloat     Type = "FLOAT"
	TypeDouble    Type = "DOUBLE"
	TypeBytes     Type = "BYTES"
	TypeDate      Type = "DATE"
	TypeTime      Type = "TIME"
	TypeTimestamp Type = "TIMESTAMP"
)

// HasStruct reports whether the type carries an Avro-grammar structural
// definition in the snapshot bytes. Pulsar JSON schemas use the Avro
// schema definition language too.
func (t Type) HasStruct() bool {
	return t == TypeAvro || t == TypeJSON
}

// Snapshot is a raw schema as fetched from the registry.
type Snapshot struct {
	Type Type   `json:"type"`
	Data []byte `json:"data"`
}

// ColumnType is the SQL-facing type of a column.
type ColumnType string

const (
	Boolean   ColumnType = "boolean"
	Tinyint   ColumnType = "tinyint"
	Smallint  ColumnType = "smallint"
	Integer   ColumnType = "integer"
	Bigint    ColumnType = "bigint"
	Real      ColumnType = "real"
	Double    ColumnType = "double"
	Varchar   ColumnType = "varchar"
	Varbinary ColumnType = "varbinary"
	Date      ColumnType = "date"
	Time      ColumnType = "time"
	Timestamp ColumnType = "timestamp"
	JSON      ColumnType = "json"
)

// Column describes one column of a topic's table.
type Column struct {
	// Name is the dotted field path for flattened data columns.
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Nullable bool       `json:"nullable,omitempty"`
	Hidden   bool       `json:"hidden,omitempty"`
	Comment  string     `json:"comment,omitempty"`
	// PositionIndices locate the field inside the nested schema, one
	// declared-order offset per nesting level. Empty for internal columns.
	PositionIndices []int `json:"positionIndices,omitempty"`
	// FieldNames are the path segments of Name, outermost first.
	FieldNames []string `json:"fieldNames,omitempty"`
	// Internal marks synthetic message-envelope columns.
	Internal bool `json:"internal,omitempty"`
}

// primitiveColumnTypes maps the registry's primitive schema types to
// column types for single-value topics.
var primitiveColumnTypes = map[Type]ColumnType{
	TypeNone:      Varbinary,
	TypeBytes:     Varbinary,
	TypeString:    Varchar,
	TypeBoolean:   Boolean,
	TypeInt8:      Tinyint,
	TypeInt16:     Smallint,
	TypeInt32:     Integer,
	TypeInt64:     Bigint,
	TypeFloat:     Real,
	TypeDouble:    Double,
	TypeDate:      Date,
	TypeTime:      Time,
	TypeTimestamp: Timestamp,
}
