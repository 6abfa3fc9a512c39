package types

import (
	"encoding/json"
	"testing"
)

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		Assignee Optional[string] `json:"assignee"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{"omitted key", `{}`, false, nil},
		{"explicit null", `{"assignee": null}`, true, nil},
		{"value", `{"assignee": "bob"}`, true, strPtr("bob")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload

			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if p.Assignee.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", p.Assignee.Set, tt.wantSet)
			}

			switch {
			case tt.wantValue == nil && p.Assignee.Value != nil:
				t.Errorf("Value = %q, want nil", *p.Assignee.Value)
			case tt.wantValue != nil && (p.Assignee.Value == nil || *p.Assignee.Value != *tt.wantValue):
				t.Errorf("Value = %v, want %q", p.Assignee.Value, *tt.wantValue)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
