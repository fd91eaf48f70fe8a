package argonaut

import (
	"fmt"
	"reflect"
	"strconv"
)

// Enumer is implemented by enum-like types whose string-to-value mapping
// the Loader cannot discover through reflection alone: the type itself
// owns the table, typically as a package-level map literal, and
// ParseEnumName is just a lookup.
type Enumer interface {
	ParseEnumName(name string) (int64, bool)
}

// Load projects node onto a freshly constructed value of type T. T is
// usually a struct, slice, array, pointer, or scalar; Load is the entry
// point callers use once per target type, and it recurses internally
// through loadInto for nested fields.
func Load[T any](n Node) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if err := loadInto(n, rv); err != nil {
		return out, err
	}
	return out, nil
}

func loadInto(n Node, rv reflect.Value) error {
	if rv.Kind() != reflect.Ptr && rv.CanAddr() {
		if enumer, ok := rv.Addr().Interface().(Enumer); ok {
			return loadEnum(n, rv, enumer)
		}
	}
	switch rv.Kind() {
	case reflect.Ptr:
		return loadPointer(n, rv)
	case reflect.Bool:
		return loadBool(n, rv)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return loadInt(n, rv)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return loadUint(n, rv)
	case reflect.Float32, reflect.Float64:
		return loadFloat(n, rv)
	case reflect.String:
		return loadString(n, rv)
	case reflect.Array:
		return loadArray(n, rv)
	case reflect.Slice:
		return loadSlice(n, rv)
	case reflect.Struct:
		return loadStruct(n, rv)
	default:
		return fmt.Errorf("%w: unsupported target kind %s", ErrTypeMismatch, rv.Kind())
	}
}

// loadEnum matches an enum with named variants: the node must be one of
// the string variants, its decoded text is looked up via the target's own
// Enumer.ParseEnumName, and the resulting tag is stored through whichever
// integer or string kind the target's underlying type actually has.
func loadEnum(n Node, rv reflect.Value, enumer Enumer) error {
	text, err := scalarText(n)
	if err != nil {
		return err
	}
	tag, found := enumer.ParseEnumName(string(text))
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownEnumValue, text)
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		rv.SetInt(tag)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		rv.SetUint(uint64(tag))
	case reflect.String:
		rv.SetString(string(text))
	default:
		return fmt.Errorf("%w: enum target must have integer or string underlying kind, got %s", ErrTypeMismatch, rv.Kind())
	}
	return nil
}

// loadPointer handles both an optional field and a single-owned pointer:
// a null node yields a nil pointer (absent), anything else allocates the
// pointee and recurses into it.
func loadPointer(n Node, rv reflect.Value) error {
	if n.IsNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	elem := reflect.New(rv.Type().Elem())
	if err := loadInto(n, elem.Elem()); err != nil {
		return err
	}
	rv.Set(elem)
	return nil
}

func loadBool(n Node, rv reflect.Value) error {
	b, err := n.Bool()
	if err != nil {
		return err
	}
	rv.SetBool(b)
	return nil
}

// scalarText returns the decoded text backing a number or string node,
// covering every node variant accepted for integers, floats, and byte
// slices: json_string is unescaped first, the rest pass through.
func scalarText(n Node) ([]byte, error) {
	switch n.Kind() {
	case KindNumber, KindSafeString, KindWildString:
		return n.Text(), nil
	case KindJSONString:
		raw := n.Text()
		length, err := UnescapedLength(raw)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, length)
		UnescapeToBuffer(buf, raw)
		return buf, nil
	default:
		return nil, typeMismatchErr(n, "number or string")
	}
}

func loadInt(n Node, rv reflect.Value) error {
	text, err := scalarText(n)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return err
	}
	rv.SetInt(v)
	return nil
}

func loadUint(n Node, rv reflect.Value) error {
	text, err := scalarText(n)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return err
	}
	rv.SetUint(v)
	return nil
}

func loadFloat(n Node, rv reflect.Value) error {
	text, err := scalarText(n)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return err
	}
	rv.SetFloat(v)
	return nil
}

func loadString(n Node, rv reflect.Value) error {
	text, err := scalarText(n)
	if err != nil {
		return err
	}
	rv.SetString(string(text))
	return nil
}

// loadElements returns the node's per-element children for either an
// array or a multi node: the two span kinds are treated interchangeably
// for array/slice targets.
func loadElements(n Node) ([]Node, error) {
	switch n.Kind() {
	case KindArray:
		return n.ArrayValues()
	case KindMulti:
		return n.MultiValues()
	default:
		return nil, typeMismatchErr(n, "array or multi")
	}
}

func loadArray(n Node, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		if ok, err := tryLoadByteArray(n, rv); ok {
			return err
		}
	}
	elems, err := loadElements(n)
	if err != nil {
		return err
	}
	if len(elems) != rv.Len() {
		return fmt.Errorf("%w: want %d elements, got %d", ErrArraySizeMismatch, rv.Len(), len(elems))
	}
	for i, e := range elems {
		if err := loadInto(e, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func tryLoadByteArray(n Node, rv reflect.Value) (handled bool, err error) {
	switch n.Kind() {
	case KindSafeString, KindWildString:
		text := n.Text()
		if len(text) != rv.Len() {
			return true, fmt.Errorf("%w: want %d bytes, got %d", ErrArraySizeMismatch, rv.Len(), len(text))
		}
		reflect.Copy(rv, reflect.ValueOf(text))
		return true, nil
	case KindJSONString:
		text, err := scalarText(n)
		if err != nil {
			return true, err
		}
		if len(text) != rv.Len() {
			return true, fmt.Errorf("%w: want %d bytes, got %d", ErrArraySizeMismatch, rv.Len(), len(text))
		}
		reflect.Copy(rv, reflect.ValueOf(text))
		return true, nil
	default:
		return false, nil
	}
}

func loadSlice(n Node, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		switch n.Kind() {
		case KindSafeString, KindWildString:
			rv.SetBytes(append([]byte(nil), n.Text()...))
			return nil
		case KindJSONString:
			text, err := scalarText(n)
			if err != nil {
				return err
			}
			rv.SetBytes(text)
			return nil
		}
	}
	elems, err := loadElements(n)
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
	for i, e := range elems {
		if err := loadInto(e, out.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// structField mirrors one reflected struct field's loader-relevant
// metadata: its JSON name (from a `json` tag, falling back to the Go
// field name), its declared default (from a `default` tag), and whether
// it counts as optional for schema purposes (declares a default, or is
// itself a pointer type).
type structField struct {
	index      int
	name       string
	defaultTag string
	hasDefault bool
	optional   bool
}

func reflectStructFields(t reflect.Type) []structField {
	fields := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok && tag != "" && tag != "-" {
			name = tag
		}
		def, hasDefault := f.Tag.Lookup("default")
		fields = append(fields, structField{
			index:      i,
			name:       name,
			defaultTag: def,
			hasDefault: hasDefault,
			optional:   hasDefault || f.Type.Kind() == reflect.Ptr,
		})
	}
	return fields
}

func loadStruct(n Node, rv reflect.Value) error {
	switch n.Kind() {
	case KindObject:
		return loadStructFromObject(n, rv)
	case KindArray, KindMulti:
		return loadStructFromTuple(n, rv)
	default:
		return typeMismatchErr(n, "object, array, or multi")
	}
}

func loadStructFromObject(n Node, rv reflect.Value) error {
	class, err := n.ObjectClass()
	if err != nil {
		return err
	}
	values, err := n.ObjectValues()
	if err != nil {
		return err
	}
	fields := reflectStructFields(rv.Type())
	for _, f := range fields {
		ord, ok := class.IndexMap[f.name]
		if !ok {
			if f.hasDefault {
				if err := setDefault(rv.Field(f.index), f.defaultTag); err != nil {
					return err
				}
				continue
			}
			if f.optional {
				continue
			}
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if err := loadInto(values[ord], rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func loadStructFromTuple(n Node, rv reflect.Value) error {
	elems, err := loadElements(n)
	if err != nil {
		return err
	}
	fields := reflectStructFields(rv.Type())
	requiredPrefix := 0
	for i, f := range fields {
		if !f.optional {
			requiredPrefix = i + 1
		}
	}
	if len(elems) < requiredPrefix {
		return fmt.Errorf("%w: need at least %d elements, got %d", ErrTupleSizeMismatch, requiredPrefix, len(elems))
	}
	for i, f := range fields {
		if i >= len(elems) {
			if f.hasDefault {
				if err := setDefault(rv.Field(f.index), f.defaultTag); err != nil {
					return err
				}
			}
			continue
		}
		if err := loadInto(elems[i], rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

// setDefault parses a struct tag's literal default value the same way a
// JSON scalar would be parsed, by wrapping it as a wild_string, number, or
// boolean node
// and routing it back through loadInto. This lets a default like
// `default:"0"` or `default:"true"` reuse every scalar conversion above
// instead of a second parallel parser.
func setDefault(rv reflect.Value, literal string) error {
	var n Node
	switch rv.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64:
		n = Node{kind: KindNumber, text: []byte(literal)}
		if rv.Kind() == reflect.Bool {
			n = Node{kind: KindBool, b: literal == "true"}
		}
	default:
		n = NewWildString([]byte(literal))
	}
	return loadInto(n, rv)
}
