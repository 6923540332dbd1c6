package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/linkedin/goavro/v2"
)

// ErrInvalidSchema marks snapshots whose definition is empty, cannot be
// parsed, or contains a shape that cannot be mapped to columns.
var ErrInvalidSchema = errors.New("invalid schema")

// Translate converts a registry snapshot into the table's column list:
// flattened data columns in declared order followed by the internal
// columns.
//
// A data field whose flattened name equals a reserved internal column
// name is rejected rather than silently overridden.
func Translate(s Snapshot) ([]Column, error) {
	if !s.Type.HasStruct() {
		t, ok := primitiveColumnTypes[s.Type]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported schema type %q", ErrInvalidSchema, s.Type)
		}
		return append([]Column{ValueColumn(t)}, InternalColumns()...), nil
	}

	if len(bytes.TrimSpace(s.Data)) == 0 {
		return nil, fmt.Errorf("%w: empty schema definition", ErrInvalidSchema)
	}
	if _, err := goavro.NewCodec(string(s.Data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	var root any
	if err := json.Unmarshal(s.Data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	rec, ok := root.(map[string]any)
	if !ok || rec["type"] != "record" {
		return nil, fmt.Errorf("%w: top-level schema is not a record", ErrInvalidSchema)
	}

	cols, err := flattenFields(rec, nil, nil)
	if err != nil {
		return nil, err
	}
	return append(cols, InternalColumns()...), nil
}

// flattenFields walks a record's fields depth-first in declared order.
// path and indices address the record itself; leaves extend both by one
// level, record fields recurse and never emit a column themselves.
func flattenFields(rec map[string]any, path []string, indices []int) ([]Column, error) {
	fields, ok := rec["fields"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: record without fields", ErrInvalidSchema)
	}

	var cols []Column
	for i, f := range fields {
		fm, ok := f.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: malformed field declaration", ErrInvalidSchema)
		}
		name, _ := fm["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("%w: field without a name", ErrInvalidSchema)
		}

		fieldPath := appendCopy(path, name)
		fieldIndices := appendIndex(indices, i)

		colType, nullable, nested, err := mapFieldType(fm["type"])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", strings.Join(fieldPath, "."), err)
		}

		if nested != nil {
			sub, err := flattenFields(nested, fieldPath, fieldIndices)
			if err != nil {
				return nil, err
			}
			cols = append(cols, sub...)
			continue
		}

		full := strings.Join(fieldPath, ".")
		if IsInternalColumn(full) {
			return nil, fmt.Errorf("%w: field %s collides with a reserved internal column", ErrInvalidSchema, full)
		}
		cols = append(cols, Column{
			Name:            full,
			Type:            colType,
			Nullable:        nullable,
			PositionIndices: fieldIndices,
			FieldNames:      fieldPath,
		})
	}
	return cols, nil
}

// mapFieldType resolves an Avro field type declaration to either a leaf
// column type or a nested record to recurse into. union(null, T)
// unwraps to a nullable T; arrays and maps become a single json leaf;
// any other union shape is unmappable.
func mapFieldType(node any) (ColumnType, bool, map[string]any, error) {
	switch t := node.(type) {
	case string:
		ct, err := mapPrimitive(t)
		return ct, false, nil, err

	case []any:
		var branches []any
		for _, b := range t {
			if s, ok := b.(string); ok && s == "null" {
				continue
			}
			branches = append(branches, b)
		}
		if len(branches) != 1 {
			return "", false, nil, fmt.Errorf("%w: unsupported union shape", ErrInvalidSchema)
		}
		nullable := len(branches) < len(t)
		ct, _, nested, err := mapFieldType(branches[0])
		return ct, nullable, nested, err

	case map[string]any:
		switch inner := t["type"].(type) {
		case string:
			switch inner {
			case "record":
				return "", false, t, nil
			case "enum":
				return Varchar, false, nil, nil
			case "fixed":
				return Varbinary, false, nil, nil
			case "array", "map":
				return JSON, false, nil, nil
			default:
				ct, err := mapLogical(inner, t["logicalType"])
				return ct, false, nil, err
			}
		case map[string]any, []any:
			return mapFieldType(inner)
		default:
			return "", false, nil, fmt.Errorf("%w: malformed type declaration", ErrInvalidSchema)
		}

	default:
		return "", false, nil, fmt.Errorf("%w: malformed type declaration", ErrInvalidSchema)
	}
}

func mapPrimitive(name string) (ColumnType, error) {
	switch name {
	case "boolean":
		return Boolean, nil
	case "int":
		return Integer, nil
	case "long":
		return Bigint, nil
	case "float":
		return Real, nil
	case "double":
		return Double, nil
	case "bytes":
		return Varbinary, nil
	case "string":
		return Varchar, nil
	default:
		// Named-type references are not resolved.
		return "", fmt.Errorf("%w: unmappable type %q", ErrInvalidSchema, name)
	}
}

// mapLogical refines int/long/bytes primitives carrying an Avro logical
// type annotation. Unrecognized annotations fall back to the base type.
func mapLogical(base string, logical any) (ColumnType, error) {
	ct, err := mapPrimitive(base)
	if err != nil {
		return "", err
	}
	l, _ := logical.(string)
	switch {
	case base == "int" && l == "date":
		return Date, nil
	case base == "int" && l == "time-millis", base == "long" && l == "time-micros":
		return Time, nil
	case base == "long" && (l == "timestamp-millis" || l == "timestamp-micros"):
		return Timestamp, nil
	}
	return ct, nil
}

func appendCopy(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

func appendIndex(indices []int, i int) []int {
	out := make([]int, len(indices)+1)
	copy(out, indices)
	out[len(indices)] = i
	return out
}
