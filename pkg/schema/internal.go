package schema

// ValueColumnName is the column exposing the whole message value for
// topics without a structured schema.
const ValueColumnName = "__value__"

// internalColumns is the fixed set of message-envelope columns appended
// after data columns, in its fixed order. Built once, never mutated.
var internalColumns = []Column{
	{
		Name:     "__event_time__",
		Type:     Timestamp,
		Internal: true,
		Comment:  "Application defined timestamp in milliseconds of when the event occurred",
	},
	{
		Name:     "__publish_time__",
		Type:     Timestamp,
		Internal: true,
		Comment:  "The timestamp in milliseconds of when event as published",
	},
	{
		Name:     "__message_id__",
		Type:     Varchar,
		Internal: true,
		Comment:  "The message ID of the message used to generate this row",
	},
	{
		Name:     "__sequence_id__",
		Type:     Bigint,
		Internal: true,
		Comment:  "The sequence ID of the message used to generate this row",
	},
	{
		Name:     "__producer_name__",
		Type:     Varchar,
		Internal: true,
		Comment:  "The name of the producer that publish the message used to generate this row",
	},
	{
		Name:     "__key__",
		Type:     Varchar,
		Internal: true,
		Comment:  "The partition key for the topic",
	},
	{
		Name:     "__properties__",
		Type:     Varchar,
		Internal: true,
		Comment:  "User defined properties",
	},
}

var internalColumnsByName = func() map[string]Column {
	m := make(map[string]Column, len(internalColumns))
	for _, c := range internalColumns {
		m[c.Name] = c
	}
	return m
}()

// InternalColumns returns the internal column set in declared order.
func InternalColumns() []Column {
	cols := make([]Column, len(internalColumns))
	copy(cols, internalColumns)
	return cols
}

// InternalColumn looks an internal column up by name.
func InternalColumn(name string) (Column, bool) {
	c, ok := internalColumnsByName[name]
	return c, ok
}

// IsInternalColumn reports whether name is a reserved internal column.
func IsInternalColumn(name string) bool {
	_, ok := internalColumnsByName[name]
	return ok
}

// ValueColumn returns the generic value column for topics whose schema
// is a primitive type, or varbinary when no schema is registered.
func ValueColumn(t ColumnType) Column {
	return Column{
		Name:       ValueColumnName,
		Type:       t,
		FieldNames: []string{ValueColumnName},
		Comment:    "The raw value of the message",
	}
}
