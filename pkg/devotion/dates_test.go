package devotion

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantISO string
		wantOK  bool
	}{
		{
			name:    "iso",
			in:      "2025-01-02",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "day first dashes",
			in:      "02-01-2025",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "iso slashes",
			in:      "2025/01/02",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "us slashes",
			in:      "01/02/2025",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "short month name",
			in:      "Jan 2, 2025",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "long month name",
			in:      "January 2, 2025",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "day short month",
			in:      "2 Jan 2025",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "day long month",
			in:      "2 January 2025",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:    "surrounding whitespace",
			in:      "  2025-01-02  ",
			wantISO: "2025-01-02",
			wantOK:  true,
		},
		{
			name:   "garbage",
			in:     "next tuesday",
			wantOK: false,
		},
		{
			name:   "empty",
			in:     "",
			wantOK: false,
		},
		{
			name:   "numeric non-date",
			in:     "20250102",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.in)

			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantISO {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.wantISO)
			}
		})
	}
}

func TestNormalizeDateAmbiguousPrecedence(t *testing.T) {
	// 03-04-2025 matches both day-first and month-first layouts; the
	// day-first layout is earlier in the list and must win.
	got, ok := NormalizeDate("03-04-2025")
	if !ok {
		t.Fatal("expected 03-04-2025 to parse")
	}
	if got != "2025-04-03" {
		t.Errorf("NormalizeDate(03-04-2025) = %q, want 2025-04-03 (day-first precedence)", got)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	want := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	got, ok := ParseDate(ISODate(want))
	if !ok {
		t.Fatal("expected ISO output to parse back")
	}
	if !got.Equal(want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestNormalizeSlot(t *testing.T) {
	tests := []struct {
		in   string
		want Slot
	}{
		{"morning", SlotMorning},
		{"night", SlotNight},
		{"NIGHT", SlotNight},
		{"  Night ", SlotNight},
		{"sunset", SlotNight},
		{"evening", SlotNight},
		{"pm", SlotNight},
		{"sunrise", SlotMorning},
		{"am", SlotMorning},
		{"", SlotMorning},
		{"afternoon", SlotMorning},
		{"garbage", SlotMorning},
	}

	for _, tt := range tests {
		if got := NormalizeSlot(tt.in); got != tt.want {
			t.Errorf("NormalizeSlot(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
