// Package env fills config structs from the process environment.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// Validator is implemented by config groups that check their own invariants.
type Validator interface {
	Validate() error
}

// ErrInvalidValue reports a variable, or a default tag, that does not parse into its field.
type ErrInvalidValue struct {
	Field  string
	EnvVar string
	Value  string
	Err    error
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s=%q (field: %s): %v", e.EnvVar, e.Value, e.Field, e.Err)
}

func (e ErrInvalidValue) Unwrap() error {
	return e.Err
}

// ErrNotStructPointer is returned when Load is not handed a non-nil *struct.
type ErrNotStructPointer struct {
	Type string
}

func (e ErrNotStructPointer) Error() string {
	return fmt.Sprintf("env.Load: argument must be a pointer to struct, got %s", e.Type)
}

// ErrUnsupportedType names a tagged field kind the loader cannot decode.
type ErrUnsupportedType struct {
	Kind string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Kind)
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// Load decodes tagged fields of the struct v points to, then runs Validate on
// every nested group and finally on v itself.
//
// A field tagged env:"NAME" takes $NAME when it is set, even to "", and the
// default:"..." tag otherwise. Fields with neither keep their zero value.
// Decodable kinds are the ones the server config uses: string, bool, signed
// integers and time.Duration.
func Load(v any) error {
	root := reflect.ValueOf(v)
	if root.Kind() != reflect.Pointer || root.IsNil() || root.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer{Type: fmt.Sprintf("%T", v)}
	}

	if err := loadGroup(root.Elem()); err != nil {
		return err
	}
	return validate(root)
}

// loadGroup walks one struct level. Nested groups are validated as soon as they
// are filled; embedded ones are left to the struct that embeds them.
func loadGroup(group reflect.Value) error {
	typ := group.Type()
	for i := range typ.NumField() {
		sf := typ.Field(i)
		field := group.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := loadGroup(field); err != nil {
				return err
			}
			if sf.Anonymous {
				continue
			}
			if err := validate(field.Addr()); err != nil {
				return err
			}
			continue
		}

		name, raw, ok := lookup(sf)
		if !ok {
			continue
		}
		if err := decode(field, raw); err != nil {
			return ErrInvalidValue{Field: sf.Name, EnvVar: name, Value: raw, Err: err}
		}
	}
	return nil
}

// lookup resolves the raw text for a tagged field: the environment first, the default tag second.
func lookup(sf reflect.StructField) (name, raw string, ok bool) {
	name = sf.Tag.Get("env")
	if name == "" {
		return "", "", false
	}
	if raw, ok = os.LookupEnv(name); ok {
		return name, raw, true
	}
	raw, ok = sf.Tag.Lookup("default")
	return name, raw, ok
}

func decode(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Parsing at the field's width turns overflow into strconv.ErrRange.
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return ErrUnsupportedType{Kind: field.Kind().String()}
	}
	return nil
}

func validate(ptr reflect.Value) error {
	if v, ok := ptr.Interface().(Validator); ok {
		return v.Validate()
	}
	return nil
}
