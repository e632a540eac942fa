package customfield

import (
	"encoding/json"
	"strings"
)

// Definition is an administrator-configured extra input on the feedback form.
type Definition struct {
	ID       string
	Label    string
	Type     Type
	Options  []string
	Required bool
	Value    Value
}

type storedDefinition struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     Type     `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Value    string   `json:"value"`
}

func (d Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(storedDefinition{
		ID:       d.ID,
		Label:    d.Label,
		Type:     d.Type,
		Options:  d.Options,
		Required: d.Required,
		Value:    d.Value.String(),
	})
}

func (d *Definition) UnmarshalJSON(raw []byte) error {
	var stored storedDefinition
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}

	t, err := ParseType(string(stored.Type))
	if err != nil {
		return err
	}

	*d = Definition{
		ID:       stored.ID,
		Label:    stored.Label,
		Type:     t,
		Options:  stored.Options,
		Required: stored.Required,
		Value:    restoreValue(t, stored.Value, stored.Options),
	}
	return nil
}

// Missing reports whether a required field has no value. Whitespace-only
// text counts as missing.
func (d Definition) Missing() bool {
	return d.Required && strings.TrimSpace(d.Value.String()) == ""
}

// DisplayLabel falls back to a generic name for fields saved without a label.
func (d Definition) DisplayLabel() string {
	if label := strings.TrimSpace(d.Label); label != "" {
		return label
	}
	return "Custom field"
}

// Snapshot is the {label, value} pair stored on a submitted record.
type Snapshot struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func SnapshotAll(fields []Definition) []Snapshot {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Snapshot, 0, len(fields))
	for _, field := range fields {
		out = append(out, Snapshot{Label: field.Label, Value: field.Value.String()})
	}
	return out
}

func Clone(fields []Definition) []Definition {
	if fields == nil {
		return nil
	}
	out := make([]Definition, len(fields))
	for i, field := range fields {
		out[i] = field
		if field.Options != nil {
			out[i].Options = append([]string(nil), field.Options...)
		}
	}
	return out
}

func equalFoldTrim(a string, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
