package customfield

import (
	"encoding/json"
	"testing"
)

func TestDefinitionJSONKeepsStringEncodedValue(t *testing.T) {
	fields := []Definition{
		{ID: "1", Label: "Subscribe", Type: TypeCheckbox, Required: true, Value: Checkbox(false)},
		{ID: "2", Label: "Seats", Type: TypeNumber, Value: Number(3)},
		{ID: "3", Label: "Plan", Type: TypeSelect, Options: []string{"Free", "Pro"}, Value: Choice("Pro")},
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"id":"1","label":"Subscribe","type":"checkbox","required":true,"value":"false"},` +
		`{"id":"2","label":"Seats","type":"number","required":false,"value":"3"},` +
		`{"id":"3","label":"Plan","type":"select","options":["Free","Pro"],"required":false,"value":"Pro"}]`
	if string(raw) != want {
		t.Fatalf("json = %s", raw)
	}

	var decoded []Definition
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0].Value.Checked() || decoded[0].Value.IsEmpty() {
		t.Fatalf("checkbox value = %+v", decoded[0].Value)
	}
	if n, ok := decoded[1].Value.Number(); !ok || n != 3 {
		t.Fatalf("number value = %v %v", n, ok)
	}
	if decoded[2].Value.Text() != "Pro" {
		t.Fatalf("select value = %q", decoded[2].Value.Text())
	}
}

func TestDefinitionUnmarshalToleratesStaleValue(t *testing.T) {
	var field Definition
	if err := json.Unmarshal([]byte(`{"id":"x","label":"Age","type":"number","required":true,"value":"old"}`), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !field.Value.IsEmpty() || !field.Missing() {
		t.Fatalf("field = %+v", field)
	}

	if err := json.Unmarshal([]byte(`{"id":"x","type":"date"}`), &field); err == nil {
		t.Fatalf("unmarshal expected error for unknown type")
	}
}

func TestMissing(t *testing.T) {
	testCases := []struct {
		name  string
		field Definition
		want  bool
	}{
		{name: "optional empty", field: Definition{Type: TypeText}, want: false},
		{name: "required blank", field: Definition{Type: TypeText, Required: true, Value: Text("   ")}, want: true},
		{name: "required filled", field: Definition{Type: TypeText, Required: true, Value: Text("x")}, want: false},
		{name: "required unchecked", field: Definition{Type: TypeCheckbox, Required: true, Value: Checkbox(false)}, want: false},
		{name: "required unset checkbox", field: Definition{Type: TypeCheckbox, Required: true, Value: Empty(TypeCheckbox)}, want: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.field.Missing(); got != testCase.want {
				t.Fatalf("Missing() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestSnapshotAll(t *testing.T) {
	snapshots := SnapshotAll([]Definition{
		{ID: "1", Label: "Browser", Type: TypeText, Value: Text("Firefox")},
		{ID: "2", Label: "Agree", Type: TypeCheckbox, Value: Checkbox(true)},
	})
	if len(snapshots) != 2 {
		t.Fatalf("len = %d", len(snapshots))
	}
	if snapshots[0] != (Snapshot{Label: "Browser", Value: "Firefox"}) || snapshots[1] != (Snapshot{Label: "Agree", Value: "true"}) {
		t.Fatalf("snapshots = %+v", snapshots)
	}
	if SnapshotAll(nil) != nil {
		t.Fatalf("SnapshotAll(nil) should be nil")
	}
}
