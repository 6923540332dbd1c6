package catalog

import (
	"slices"

	"github.com/streambridge/pulsarsql/pkg/schema"
)

// TableHandle is the opaque table reference exchanged with the query
// engine. SchemaName always carries the canonical, unrewritten
// tenant/namespace form. Handles are plain values: the engine may hold
// them across calls and compare or re-serialize them, so identical
// inputs always produce identical handles.
type TableHandle struct {
	ConnectorID string `json:"connectorId"`
	SchemaName  string `json:"schemaName"`
	TableName   string `json:"tableName"`
	TopicName   string `json:"topicName"`
}

// NewTableHandle builds a table handle from resolved names.
func NewTableHandle(connectorID, schemaName, tableName, topicName string) TableHandle {
	return TableHandle{
		ConnectorID: connectorID,
		SchemaName:  schemaName,
		TableName:   tableName,
		TopicName:   topicName,
	}
}

// ColumnHandle is the opaque column reference exchanged with the query
// engine. PositionIndices and FieldNames address the column inside the
// topic's nested schema; both are nil for internal columns.
type ColumnHandle struct {
	ConnectorID     string            `json:"connectorId"`
	Name            string            `json:"name"`
	Type            schema.ColumnType `json:"type"`
	PositionIndices []int             `json:"positionIndices,omitempty"`
	FieldNames      []string          `json:"fieldNames,omitempty"`
	Hidden          bool              `json:"hidden,omitempty"`
}

// NewColumnHandle builds the handle for one resolved column.
func NewColumnHandle(connectorID string, col schema.Column) ColumnHandle {
	return ColumnHandle{
		ConnectorID:     connectorID,
		Name:            col.Name,
		Type:            col.Type,
		PositionIndices: slices.Clone(col.PositionIndices),
		FieldNames:      slices.Clone(col.FieldNames),
		Hidden:          col.Hidden,
	}
}

// Equal reports value equality, including the positional address.
func (h ColumnHandle) Equal(other ColumnHandle) bool {
	return h.ConnectorID == other.ConnectorID &&
		h.Name == other.Name &&
		h.Type == other.Type &&
		h.Hidden == other.Hidden &&
		slices.Equal(h.PositionIndices, other.PositionIndices) &&
		slices.Equal(h.FieldNames, other.FieldNames)
}
