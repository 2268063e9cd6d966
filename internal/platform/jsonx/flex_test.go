package jsonx

import (
	"encoding/json"
	"testing"
)

func TestFlexString_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want FlexString
	}{
		{`42`, "42"},
		{`"42"`, "42"},
		{`1.5`, "1.5"},
		{`"1/2"`, "1/2"},
		{`null`, ""},
	}
	for _, tc := range cases {
		var got FlexString
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var got FlexString
	if err := json.Unmarshal([]byte(`{"a":1}`), &got); err == nil {
		t.Fatal("expected error for object")
	}
}

func TestFlexString_Marshal(t *testing.T) {
	b, _ := json.Marshal(map[string]FlexString{"id": "42", "dosis": "1/2"})
	if string(b) != `{"dosis":"1/2","id":42}` {
		t.Fatalf("unexpected json %s", string(b))
	}
}
