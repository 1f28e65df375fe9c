package shared

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableTimeDistinguishesAbsentAndNull(t *testing.T) {
	var payload struct {
		From NullableTime `json:"from"`
		To   NullableTime `json:"to"`
		At   NullableTime `json:"at"`
	}
	if err := json.Unmarshal([]byte(`{"from":null,"to":"2026-03-01 08:30:00"}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !payload.From.Set || payload.From.Value != nil {
		t.Fatalf("explicit null should be set and empty: %+v", payload.From)
	}
	want := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	if !payload.To.Set || payload.To.Value == nil || !payload.To.Value.Equal(want) {
		t.Fatalf("unexpected parsed time %+v", payload.To)
	}
	if payload.At.Set {
		t.Fatalf("absent field must not be set")
	}
	if err := json.Unmarshal([]byte(`{"from":"yesterday"}`), &payload); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNormalizePagination(t *testing.T) {
	cases := []struct{ page, size, wantPage, wantSize int }{
		{0, 0, 1, 20},
		{3, 500, 3, 100},
		{2, 10, 2, 10},
	}
	for _, tc := range cases {
		page, size := NormalizePagination(tc.page, tc.size)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("NormalizePagination(%d,%d) = %d,%d", tc.page, tc.size, page, size)
		}
	}
}

func TestParseOptionalBool(t *testing.T) {
	value, err := ParseOptionalBool(" true ")
	if err != nil || value == nil || !*value {
		t.Fatalf("unexpected parse result %v %v", value, err)
	}
	value, err = ParseOptionalBool("")
	if err != nil || value != nil {
		t.Fatalf("empty should be nil, got %v %v", value, err)
	}
	if _, err := ParseOptionalBool("maybe"); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
