package authdb

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// applyFields overwrites the named columns on a model struct from a map of
// column name to value. Names follow the bun column naming: the first token
// of the bun tag, or the underscored field name when the tag has none.
// Unknown names fail with ErrUnknownField; nothing is applied atomically,
// the caller is expected to discard the model on error.
func applyFields(model any, fields map[string]any) error {
	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("authdb: applyFields needs a struct pointer, got %T", model)
	}
	v = v.Elem()

	cols := columnIndex(v.Type())
	for name, value := range fields {
		idx, ok := cols[name]
		if !ok {
			return fmt.Errorf("%w: %q on %s", ErrUnknownField, name, v.Type().Name())
		}
		if err := setField(v.Field(idx), value); err != nil {
			return fmt.Errorf("authdb: field %q: %w", name, err)
		}
	}
	return nil
}

// columnIndex maps bun column names to struct field indices. Relation
// fields and the embedded BaseModel carry no column and are skipped.
func columnIndex(t reflect.Type) map[string]int {
	cols := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name := columnName(f)
		if name == "" {
			continue
		}
		cols[name] = i
	}
	return cols
}

func columnName(f reflect.StructField) string {
	tag := f.Tag.Get("bun")
	if strings.Contains(tag, "rel:") {
		return ""
	}
	first, _, _ := strings.Cut(tag, ",")
	if first == "-" {
		return ""
	}
	if first != "" {
		return first
	}
	return underscore(f.Name)
}

// underscore converts CamelCase to snake_case the way bun's default
// naming does for untagged fields.
func underscore(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if !unicode.IsUpper(c) {
			b.WriteRune(c)
			continue
		}
		// Break before an upper that starts a word: after a lower, or
		// ending a run of caps followed by a lower.
		if i > 0 && (unicode.IsLower(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

func setField(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	// A plain value for a nullable column: allocate the pointer.
	if field.Kind() == reflect.Pointer {
		elem := reflect.New(field.Type().Elem())
		if err := setField(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	if isNumeric(rv.Kind()) && isNumeric(field.Kind()) {
		field.Set(rv.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
