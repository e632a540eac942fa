package fieldconfig

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"feedbackdesk/internal/domain/customfield"
	"feedbackdesk/internal/errs"
)

type fieldsFile struct {
	Fields []fieldEntry `toml:"field"`
}

type fieldEntry struct {
	Label    string   `toml:"label"`
	Type     string   `toml:"type"`
	Required bool     `toml:"required"`
	Options  []string `toml:"options"`
	Value    string   `toml:"value"`
}

// ParseTOML reads a field set from [[field]] tables. Every field gets a
// fresh id; an empty type means text.
func ParseTOML(raw []byte) ([]customfield.Definition, error) {
	var file fieldsFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, errs.Wrap(err, "parse fields toml")
	}

	out := make([]customfield.Definition, 0, len(file.Fields))
	for i, entry := range file.Fields {
		rawType := entry.Type
		if strings.TrimSpace(rawType) == "" {
			rawType = string(customfield.TypeText)
		}
		t, err := customfield.ParseType(rawType)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}

		options := entry.Options
		if t == customfield.TypeSelect && len(options) == 0 {
			options = []string{"Option 1"}
		}

		value, err := customfield.ParseValue(t, entry.Value, options)
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i+1, entry.Label, err)
		}

		out = append(out, customfield.Definition{
			ID:       uuid.NewString(),
			Label:    entry.Label,
			Type:     t,
			Options:  options,
			Required: entry.Required,
			Value:    value,
		})
	}
	return out, nil
}
