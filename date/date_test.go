package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2001-08-31", New(2001, time.August, 31), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2024-02-29", New(2024, time.February, 29), false},
		{"2023-02-29", Date{}, true},
		{"2001-13-01", Date{}, true},
		{"not-a-date", Date{}, true},
		{"", Date{}, true},
		{"2001-08-31T10:00:00Z", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseISO(t *testing.T) {
	if got, err := ParseISO("2001-08-31"); err != nil || got != New(2001, time.August, 31) {
		t.Errorf("ParseISO(\"2001-08-31\") = %v, %v, want 2001-08-31", got, err)
	}
	for _, s := range []string{"2001-8-31", "2001-08-1", "01-08-31", "2001-02-30"} {
		if _, err := ParseISO(s); err == nil {
			t.Errorf("ParseISO(%q) expected an error", s)
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.March, 0), New(2024, time.February, 29); got != want {
		t.Errorf("New(2024, 3, 0) = %v, want %v", got, want)
	}
	if got, want := New(2024, time.December, 32), New(2025, time.January, 1); got != want {
		t.Errorf("New(2024, 12, 32) = %v, want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{New(2001, 8, 30), New(2001, 8, 31), -1},
		{New(2001, 8, 31), New(2001, 8, 31), 0},
		{New(2001, 9, 1), New(2001, 8, 31), 1},
		{New(2002, 1, 1), New(2001, 12, 31), 1},
		{New(2001, 12, 31), New(2002, 1, 1), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.a.Before(tt.b); got != (tt.want < 0) {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want < 0)
		}
		if got := tt.a.After(tt.b); got != (tt.want > 0) {
			t.Errorf("%v.After(%v) = %v, want %v", tt.a, tt.b, got, tt.want > 0)
		}
	}
}

func TestJSON(t *testing.T) {
	d := New(2001, time.August, 31)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error = %v", err)
	}
	if string(data) != `"2001-08-31"` {
		t.Errorf("json.Marshal() = %s, want %q", data, "2001-08-31")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error = %v", err)
	}
	if got != d {
		t.Errorf("json.Unmarshal() = %v, want %v", got, d)
	}
	if err := json.Unmarshal([]byte(`"31/08/2001"`), &got); err == nil {
		t.Errorf("json.Unmarshal(31/08/2001) expected an error")
	}
}
