package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds a multi-row INSERT from a slice of structs with db tags.
// All rows share the column set of the slice's element type.
func InsertModels(table string, models any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(models)
	if value.Kind() != reflect.Slice {
		return "", nil, fmt.Errorf("models must be a slice, got %T", models)
	}
	if value.Len() == 0 {
		return "", nil, fmt.Errorf("models slice is empty")
	}

	cols, err := columnsFromModel(value.Index(0).Interface())
	if err != nil {
		return "", nil, err
	}

	builder := InsertInto(table).Columns(cols...)
	for i := 0; i < value.Len(); i++ {
		vals, err := valuesFromModel(value.Index(i).Interface(), len(cols))
		if err != nil {
			return "", nil, fmt.Errorf("row %d: %w", i, err)
		}
		builder.Values(vals...)
	}

	return builder.Suffix(suffix).ToSQL()
}

// UpsertModels builds a multi-row INSERT ... ON CONFLICT (key) DO UPDATE where
// every non-key column is overwritten by the incoming value. extraSet is
// appended to the SET list (e.g. "ingested_at = NOW()").
func UpsertModels(table string, models any, conflictColumns []string, extraSet string) (string, []any, error) {
	value := reflect.ValueOf(models)
	if value.Kind() != reflect.Slice {
		return "", nil, fmt.Errorf("models must be a slice, got %T", models)
	}
	if value.Len() == 0 {
		return "", nil, fmt.Errorf("models slice is empty")
	}
	if len(conflictColumns) == 0 {
		return "", nil, fmt.Errorf("conflict columns are required")
	}

	cols, err := columnsFromModel(value.Index(0).Interface())
	if err != nil {
		return "", nil, err
	}

	suffix, err := conflictUpdateSuffix(cols, conflictColumns, extraSet)
	if err != nil {
		return "", nil, err
	}

	return InsertModels(table, models, suffix)
}

func conflictUpdateSuffix(columns, conflictColumns []string, extraSet string) (string, error) {
	conflictSet := make(map[string]struct{}, len(conflictColumns))
	for _, col := range conflictColumns {
		conflictSet[col] = struct{}{}
	}

	sets := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		if _, ok := conflictSet[col]; ok {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	if extra := strings.TrimSpace(extraSet); extra != "" {
		sets = append(sets, extra)
	}

	conflictList := strings.Join(conflictColumns, ", ")
	if len(sets) == 0 {
		return "ON CONFLICT (" + conflictList + ") DO NOTHING", nil
	}
	return "ON CONFLICT (" + conflictList + ") DO UPDATE SET " + strings.Join(sets, ", "), nil
}

func columnsFromModel(model any) ([]string, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := dbColumn(field.Tag.Get("db"))
		if col == "" {
			continue
		}
		cols = append(cols, col)
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return cols, nil
}

func valuesFromModel(model any, want int) ([]any, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}

	typ := value.Type()
	vals := make([]any, 0, want)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		if dbColumn(field.Tag.Get("db")) == "" {
			continue
		}
		vals = append(vals, value.Field(i).Interface())
	}

	if len(vals) != want {
		return nil, fmt.Errorf("model has %d db columns, expected %d", len(vals), want)
	}
	return vals, nil
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be struct")
	}
	return value, nil
}

func dbColumn(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "-" {
		return ""
	}
	col := strings.TrimSpace(strings.Split(tag, ",")[0])
	if col == "-" {
		return ""
	}
	return col
}
