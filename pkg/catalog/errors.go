package catalog

import (
	"errors"
	"fmt"

	"github.com/streambridge/pulsarsql/pkg/naming"
	"github.com/streambridge/pulsarsql/pkg/schema"
)

// SchemaNotFoundError reports a schema name that maps to no known
// tenant/namespace pair.
type SchemaNotFoundError struct {
	Schema string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("Schema %s does not exist", e.Schema)
}

// TableNotFoundError reports a table absent from an existing schema.
type TableNotFoundError struct {
	Schema string
	Table  string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("Table '%s.%s' not found", e.Schema, e.Table)
}

// InvalidSchemaError reports a topic whose registered schema is empty
// or cannot be parsed.
type InvalidSchemaError struct {
	Topic naming.TopicName
	cause error
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("Topic %s does not have a valid schema", e.Topic)
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.cause
}

// errorKind labels an operation failure for metrics. Anything outside
// the catalog taxonomy is a collaborator failure passed through as-is.
func errorKind(err error) string {
	var (
		schemaNotFound *SchemaNotFoundError
		tableNotFound  *TableNotFoundError
		invalidSchema  *InvalidSchemaError
	)
	switch {
	case errors.As(err, &schemaNotFound):
		return "schema_not_found"
	case errors.As(err, &tableNotFound):
		return "table_not_found"
	case errors.As(err, &invalidSchema), errors.Is(err, schema.ErrInvalidSchema):
		return "invalid_schema"
	default:
		return "collaborator_failure"
	}
}
