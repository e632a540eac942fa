package customfield

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Type string

const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeCheckbox Type = "checkbox"
	TypeSelect   Type = "select"
)

func Types() []Type {
	return []Type{TypeText, TypeNumber, TypeCheckbox, TypeSelect}
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !slices.Contains(Types(), t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

// Value is the draft value of a custom field, tagged by the field type.
// The zero value of each type is "unset" and encodes as "".
type Value struct {
	kind    Type
	set     bool
	text    string
	number  float64
	checked bool
}

func Empty(t Type) Value { return Value{kind: t} }

func Text(s string) Value {
	return Value{kind: TypeText, set: s != "", text: s}
}

func Number(f float64) Value {
	return Value{kind: TypeNumber, set: true, number: f}
}

func Checkbox(checked bool) Value {
	return Value{kind: TypeCheckbox, set: true, checked: checked}
}

func Choice(option string) Value {
	return Value{kind: TypeSelect, set: option != "", text: option}
}

func (v Value) Type() Type    { return v.kind }
func (v Value) IsEmpty() bool { return !v.set }

// Text returns the raw text of text and select values.
func (v Value) Text() string { return v.text }

func (v Value) Number() (float64, bool) {
	if v.kind != TypeNumber || !v.set {
		return 0, false
	}
	return v.number, true
}

func (v Value) Checked() bool { return v.kind == TypeCheckbox && v.set && v.checked }

// String returns the persisted string encoding: checkbox values are
// "true"/"false", numbers use the shortest decimal form.
func (v Value) String() string {
	if !v.set {
		return ""
	}
	switch v.kind {
	case TypeNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case TypeCheckbox:
		return strconv.FormatBool(v.checked)
	default:
		return v.text
	}
}

// ParseValue coerces editor input into a value of type t. Select input must
// name one of options.
func ParseValue(t Type, raw string, options []string) (Value, error) {
	switch t {
	case TypeText:
		return Text(raw), nil
	case TypeNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Empty(TypeNumber), nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw)
		}
		return Number(f), nil
	case TypeCheckbox:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Empty(TypeCheckbox), nil
		}
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not true or false", ErrInvalidValue, raw)
		}
		return Checkbox(b), nil
	case TypeSelect:
		if raw == "" {
			return Empty(TypeSelect), nil
		}
		if !slices.Contains(options, raw) {
			return Value{}, fmt.Errorf("%w: %q is not one of %v", ErrInvalidValue, raw, options)
		}
		return Choice(raw), nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// restoreValue decodes a persisted string. Values that no longer fit the
// field type decode as empty.
func restoreValue(t Type, raw string, options []string) Value {
	if t == TypeSelect && raw != "" {
		return Choice(raw)
	}
	v, err := ParseValue(t, raw, options)
	if err != nil {
		return Empty(t)
	}
	return v
}
