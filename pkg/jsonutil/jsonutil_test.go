package jsonutil

import "testing"

func TestRoundTrip(t *testing.T) {
	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	data, err := Marshal(record{Name: "bandit", Count: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got record
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Name != "bandit" || got.Count != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid([]byte(`{"results": []}`)) {
		t.Error("expected valid JSON to be accepted")
	}
	if Valid([]byte(`Traceback (most recent call last):`)) {
		t.Error("expected stack trace text to be rejected")
	}
	if Valid([]byte(``)) {
		t.Error("expected empty input to be rejected")
	}
}
