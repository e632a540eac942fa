package customfield

import (
	"fmt"

	"github.com/google/uuid"
)

// Patch carries the attributes to merge into a definition; nil means unchanged.
// Value is raw editor input, coerced against the resulting type.
type Patch struct {
	Label    *string
	Type     *Type
	Required *bool
	Value    *string
}

// The editor functions below never mutate their input: each returns a new slice.

// Add appends a blank text field with a fresh id.
func Add(fields []Definition) []Definition {
	out := Clone(fields)
	return append(out, Definition{
		ID:    uuid.NewString(),
		Type:  TypeText,
		Value: Empty(TypeText),
	})
}

// Update merges patch into fields[index]. A type change always clears the
// value; changing into select with no options seeds "Option 1".
func Update(fields []Definition, index int, patch Patch) ([]Definition, error) {
	if err := checkFieldIndex(fields, index); err != nil {
		return nil, err
	}

	out := Clone(fields)
	field := out[index]

	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}

	typeChanged := false
	if patch.Type != nil && *patch.Type != field.Type {
		if _, err := ParseType(string(*patch.Type)); err != nil {
			return nil, err
		}
		field.Type = *patch.Type
		field.Value = Empty(field.Type)
		if field.Type == TypeSelect && len(field.Options) == 0 {
			field.Options = []string{"Option 1"}
		}
		typeChanged = true
	}

	if patch.Value != nil && !typeChanged {
		v, err := ParseValue(field.Type, *patch.Value, field.Options)
		if err != nil {
			return nil, err
		}
		field.Value = v
	}

	out[index] = field
	return out, nil
}

// Remove deletes fields[index]; later indices shift down by one.
func Remove(fields []Definition, index int) ([]Definition, error) {
	if err := checkFieldIndex(fields, index); err != nil {
		return nil, err
	}
	out := Clone(fields)
	return append(out[:index], out[index+1:]...), nil
}

// AddOption appends "Option {n+1}" to the field's options.
func AddOption(fields []Definition, fieldIndex int) ([]Definition, error) {
	if err := checkFieldIndex(fields, fieldIndex); err != nil {
		return nil, err
	}
	out := Clone(fields)
	options := out[fieldIndex].Options
	out[fieldIndex].Options = append(options, fmt.Sprintf("Option %d", len(options)+1))
	return out, nil
}

func UpdateOption(fields []Definition, fieldIndex int, optionIndex int, value string) ([]Definition, error) {
	if err := checkOptionIndex(fields, fieldIndex, optionIndex); err != nil {
		return nil, err
	}
	out := Clone(fields)
	field := &out[fieldIndex]
	previous := field.Options[optionIndex]
	field.Options[optionIndex] = value
	if field.Type == TypeSelect && field.Value.Text() == previous {
		field.Value = Empty(TypeSelect)
	}
	return out, nil
}

// RemoveOption deletes one option. The last remaining option is never
// removed; that case returns fields unchanged.
func RemoveOption(fields []Definition, fieldIndex int, optionIndex int) ([]Definition, error) {
	if err := checkOptionIndex(fields, fieldIndex, optionIndex); err != nil {
		return nil, err
	}
	out := Clone(fields)
	field := &out[fieldIndex]
	if len(field.Options) <= 1 {
		return out, nil
	}
	removed := field.Options[optionIndex]
	field.Options = append(field.Options[:optionIndex], field.Options[optionIndex+1:]...)
	if field.Type == TypeSelect && field.Value.Text() == removed {
		field.Value = Empty(TypeSelect)
	}
	return out, nil
}

// IndexByLabel finds the first field whose label matches, ignoring case.
func IndexByLabel(fields []Definition, label string) int {
	for i, field := range fields {
		if equalFoldTrim(field.Label, label) {
			return i
		}
	}
	return -1
}

func checkFieldIndex(fields []Definition, index int) error {
	if index < 0 || index >= len(fields) {
		return fmt.Errorf("%w: %d (have %d)", ErrFieldIndexOutOfRange, index, len(fields))
	}
	return nil
}

func checkOptionIndex(fields []Definition, fieldIndex int, optionIndex int) error {
	if err := checkFieldIndex(fields, fieldIndex); err != nil {
		return err
	}
	options := fields[fieldIndex].Options
	if len(options) == 0 {
		return ErrNotSelectField
	}
	if optionIndex < 0 || optionIndex >= len(options) {
		return fmt.Errorf("%w: %d (have %d)", ErrOptionIndexOutOfRange, optionIndex, len(options))
	}
	return nil
}
