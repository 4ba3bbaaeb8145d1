package types

import (
	"encoding/json"
	"testing"
)

func TestFlexInt64Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"number", `1704067200000`, 1704067200000, false},
		{"string", `"1704067200000"`, 1704067200000, false},
		{"zero", `0`, 0, false},
		{"negative", `-5`, -5, false},
		{"null", `null`, 0, false},
		{"non-numeric string", `"soon"`, 0, true},
		{"float string", `"1.5"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt64
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s): expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if f.Int64() != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, f.Int64(), tt.want)
			}
		})
	}
}

func TestFlexInt64Marshal(t *testing.T) {
	out, err := json.Marshal(FlexInt64(42))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "42" {
		t.Errorf("Marshal = %s, want 42", out)
	}
}
