package logger

import "testing"

func TestMaskAuthorization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer fk_live_9f2c7a1b", "Bearer ****7a1b"},
		{"fk_live_9f2c7a1b", "****7a1b"},
		{"abc", "****abc"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MaskAuthorization(tc.in); got != tc.want {
			t.Errorf("MaskAuthorization(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := MaskAPIKey("  fk_owner_77aa22bb  "); got != "****22bb" {
		t.Fatalf("MaskAPIKey = %q", got)
	}
}

func TestMaskJSONHidesSensitiveValues(t *testing.T) {
	input := map[string]any{
		"invoice_number": "INV-2024-001",
		"api_key":        "fk_owner_77aa22bb",
		"request": map[string]any{
			"authorization": "Bearer fk_live_9f2c7a1b",
		},
	}
	masked := MaskJSON(input)
	if masked["invoice_number"] != "INV-2024-001" {
		t.Fatalf("invoice_number changed: %v", masked["invoice_number"])
	}
	if masked["api_key"] != "****22bb" {
		t.Fatalf("api_key not masked: %v", masked["api_key"])
	}
	nested, ok := masked["request"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", masked["request"])
	}
	if nested["authorization"] != "****7a1b" {
		t.Fatalf("authorization not masked: %v", nested["authorization"])
	}
	if input["api_key"] != "fk_owner_77aa22bb" {
		t.Fatalf("input mutated: %v", input["api_key"])
	}
}
