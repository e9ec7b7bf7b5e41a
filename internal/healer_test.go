package internal

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestHealJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trailing comma",
			in:   `{"data": [{"a": 1},`,
			want: `{"data": [{"a": 1}]}`,
		},
		{
			name: "missing both brackets",
			in:   `{"data": [{"a": 1}`,
			want: `{"data": [{"a": 1}]}`,
		},
		{
			name: "missing closing brace",
			in:   `{"data": [{"a": 1}]`,
			want: `{"data": [{"a": 1}]}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  {\"data\": [{\"a\": 1},  ",
			want: `{"data": [{"a": 1}]}`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: "",
		},
		{
			name: "already valid stays byte-identical",
			in:   ` {"data": []} `,
			want: ` {"data": []} `,
		},
		{
			name: "closed but invalid is left alone",
			in:   `{"data": [1,]}`,
			want: `{"data": [1,]}`,
		},
		{
			name: "garbage gets closing brackets",
			in:   "not json",
			want: "not json]}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealJSON(tt.in); got != tt.want {
				t.Errorf("HealJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHealJSON_ValidRoundTrip(t *testing.T) {
	inputs := []string{
		`{"data": [{"timestamp": 1.0, "myType": "SceneEntryRecord"}]}`,
		`{"data": []}`,
		`[1, 2, 3]`,
		`"text"`,
		`null`,
	}

	for _, in := range inputs {
		var want, got any
		if err := json.Unmarshal([]byte(in), &want); err != nil {
			t.Fatalf("bad test input %q: %v", in, err)
		}
		if err := json.Unmarshal([]byte(HealJSON(in)), &got); err != nil {
			t.Fatalf("HealJSON(%q) no longer parses: %v", in, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("HealJSON(%q) parsed to %v, want %v", in, got, want)
		}
	}
}
