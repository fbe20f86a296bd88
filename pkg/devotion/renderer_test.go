package devotion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSiteURL = "https://example.org/"

func newTestRenderer() *Renderer {
	return NewRenderer(testSiteURL, 0, nil)
}

func TestRenderRecordGolden(t *testing.T) {
	rec := Record{
		Theme:        "New Beginnings",
		VerseRef:     "Genesis 1:1",
		VerseText:    "In the beginning...",
		VerseMeaning: "Nothing starts without Him.",
		Body:         "Start fresh.",
		Prayer:       "Lord, guide me.",
	}

	got := newTestRenderer().RenderRecord(&rec, SlotMorning, mustDate(t, "2026-01-01"))

	want := strings.Join([]string{
		"🌅 Sunrise Devotion — Thursday, January 01, 2026",
		"Theme: New Beginnings",
		`📖 Scripture: Genesis 1:1 — "In the beginning..."`,
		"",
		"Nothing starts without Him.",
		"",
		"Start fresh.",
		"",
		"🙏 Prayer: Lord, guide me.",
		"",
		"🔗 Visit our website",
		testSiteURL,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderRecordScriptureSubstringAndFooter(t *testing.T) {
	rec := Record{
		Theme:     "New Beginnings",
		VerseRef:  "Genesis 1:1",
		VerseText: "In the beginning...",
		Body:      "Start fresh.",
		Prayer:    "Lord, guide me.",
	}

	got := newTestRenderer().RenderRecord(&rec, SlotMorning, mustDate(t, "2026-01-01"))

	assert.Contains(t, got, `📖 Scripture: Genesis 1:1 — "In the beginning..."`)
	assert.True(t, strings.HasSuffix(got, "🔗 Visit our website\n"+testSiteURL))
}

func TestRenderRecordOmitsEmptyFieldLines(t *testing.T) {
	rec := Record{
		VerseRef: "Psalm 23:1",
		Prayer:   "Keep me.",
	}

	got := newTestRenderer().RenderRecord(&rec, SlotNight, mustDate(t, "2026-01-01"))

	want := strings.Join([]string{
		"🌙 Sunset Devotion — Thursday, January 01, 2026",
		"📖 Scripture: Psalm 23:1",
		"",
		"🙏 Prayer: Keep me.",
		"",
		"🔗 Visit our website",
		testSiteURL,
	}, "\n")
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "Theme:")
	assert.NotContains(t, got, " — \"")
}

func TestRenderRecordBlank(t *testing.T) {
	rd := newTestRenderer()

	assert.Equal(t, "", rd.RenderRecord(nil, SlotMorning, mustDate(t, "2026-01-01")))
	assert.Equal(t, "", rd.RenderRecord(&Record{Date: "2026-01-01", Mode: SlotMorning}, SlotMorning, mustDate(t, "2026-01-01")))
}

func TestRenderRecordNoSiteURL(t *testing.T) {
	rd := NewRenderer("", 0, nil)
	rec := Record{Theme: "T", Prayer: "P"}

	got := rd.RenderRecord(&rec, SlotMorning, mustDate(t, "2026-01-01"))

	assert.False(t, strings.Contains(got, "🔗"))
	assert.True(t, strings.HasSuffix(got, "🙏 Prayer: P"))
}

func TestRenderRecordIdempotent(t *testing.T) {
	rd := newTestRenderer()
	rec := Record{Theme: "T", VerseRef: "R", VerseText: "V", Body: "B", Prayer: "P"}
	date := mustDate(t, "2026-01-01")

	first := rd.RenderRecord(&rec, SlotMorning, date)
	second := rd.RenderRecord(&rec, SlotMorning, date)

	assert.Equal(t, first, second)
}

func TestRenderRawNewShapeGolden(t *testing.T) {
	entry := map[string]any{
		"title":      "Walking in Peace",
		"verse_ref":  "John 14:27",
		"verse_text": "Peace I leave with you.",
		"point1":     "Receive it.",
		"point2":     "Guard it.",
		"closing":    "Carry peace into the day.",
		"prayer":     "Settle my heart.",
		"sunrise":    "6:12 AM",
		"sunset":     "6:45 PM",
	}

	got := newTestRenderer().RenderRaw(entry, SlotMorning, mustDate(t, "2026-01-02"))

	want := strings.Join([]string{
		"🌅 Sunrise Devotion — Friday, January 02, 2026",
		"🕕 Sunrise: 6:12 AM",
		"🌇 Sunset: 6:45 PM",
		"",
		"*Walking in Peace*",
		"",
		"📖 John 14:27 — Peace I leave with you.",
		"",
		"1. Receive it.",
		"2. Guard it.",
		"",
		"✍️ Carry peace into the day.",
		"",
		"🙏 Settle my heart.",
		"",
		"🔗 Visit our website",
		testSiteURL,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderRawNewShapeDefaultPrayer(t *testing.T) {
	entry := map[string]any{"title": "T"}

	morning := newTestRenderer().RenderRaw(entry, SlotMorning, mustDate(t, "2026-01-02"))
	night := newTestRenderer().RenderRaw(entry, SlotNight, mustDate(t, "2026-01-02"))

	assert.Contains(t, morning, "🙏 Lord, order my steps today. Amen.")
	assert.Contains(t, night, "🙏 Lord, quiet my mind and keep me in Your care. Amen.")
}

func TestRenderRawLegacyShape(t *testing.T) {
	entry := map[string]any{
		"scripture":    "Isaiah 26:3",
		"reflection":   "Perfect peace is kept peace.",
		"declaration":  "My mind is stayed on Him.",
		"blessing":     "Sleep well.",
		"night_prayer": "Watch over us tonight.",
	}

	got := newTestRenderer().RenderRaw(entry, SlotNight, mustDate(t, "2026-01-02"))

	want := strings.Join([]string{
		"🌙 Sunset Devotion — Friday, January 02, 2026",
		"",
		"📖 Isaiah 26:3",
		"",
		"✍️ Perfect peace is kept peace.",
		"",
		"💬 My mind is stayed on Him.",
		"",
		"🕊️ Sleep well.",
		"",
		"🙏 Watch over us tonight.",
		"",
		"🔗 Visit our website",
		testSiteURL,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderRawThemeSelectsNewShape(t *testing.T) {
	// A theme key feeds the title alias chain, so its presence routes the
	// entry through the new shape even when legacy fields are also set.
	entry := map[string]any{
		"theme":     "Old Style",
		"scripture": "Isaiah 26:3",
	}

	got := newTestRenderer().RenderRaw(entry, SlotNight, mustDate(t, "2026-01-02"))

	assert.Contains(t, got, "*Old Style*")
	assert.NotContains(t, got, "Isaiah 26:3")
	assert.Contains(t, got, "🙏 Lord, quiet my mind and keep me in Your care. Amen.")
}

func TestRenderRawLegacySlotPrayerSelection(t *testing.T) {
	entry := map[string]any{
		"scripture":      "Isaiah 26:3",
		"morning_prayer": "Morning words.",
		"night_prayer":   "Night words.",
	}
	rd := newTestRenderer()
	date := mustDate(t, "2026-01-02")

	assert.Contains(t, rd.RenderRaw(entry, SlotMorning, date), "🙏 Morning words.")
	assert.Contains(t, rd.RenderRaw(entry, SlotNight, date), "🙏 Night words.")

	// Missing slot prayer falls to the slot default, not the other slot.
	delete(entry, "night_prayer")
	assert.Contains(t, rd.RenderRaw(entry, SlotNight, date), "🙏 Lord, quiet my mind and keep me in Your care. Amen.")
}

func TestRenderRawNeitherShape(t *testing.T) {
	entry := map[string]any{"value": "loose string promoted to an entry"}

	got := newTestRenderer().RenderRaw(entry, SlotMorning, mustDate(t, "2026-01-02"))

	want := strings.Join([]string{
		"🌅 Sunrise Devotion — Friday, January 02, 2026",
		"",
		"🙏 Lord, order my steps today. Amen.",
		"",
		"🔗 Visit our website",
		testSiteURL,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderRawEmptyEntry(t *testing.T) {
	assert.Equal(t, "", newTestRenderer().RenderRaw(nil, SlotMorning, mustDate(t, "2026-01-02")))
	assert.Equal(t, "", newTestRenderer().RenderRaw(map[string]any{}, SlotMorning, mustDate(t, "2026-01-02")))
}

func TestRenderLengthWarning(t *testing.T) {
	var warnings []string
	rd := NewRenderer(testSiteURL, 10, func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	rec := Record{Theme: "A theme well past ten characters", Prayer: "P"}

	got := rd.RenderRecord(&rec, SlotMorning, mustDate(t, "2026-01-01"))

	assert.NotEmpty(t, got, "message returned unmodified")
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "consider trimming")
}

func TestRenderNoWarningUnderLimit(t *testing.T) {
	var warnings []string
	rd := NewRenderer(testSiteURL, DefaultMaxChars, func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	rec := Record{Theme: "Short", Prayer: "P"}

	rd.RenderRecord(&rec, SlotMorning, mustDate(t, "2026-01-01"))

	assert.Empty(t, warnings)
}
