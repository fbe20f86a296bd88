// Package devotion resolves dated devotional content out of the per-year
// JSON stores and renders it into shareable message text. The stores have
// accumulated several shapes over the project's history; everything in this
// package is total: malformed or missing data degrades to fallback content,
// never to an error.
package devotion

import "strings"

// Slot is the time-of-day variant of a devotion.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotNight   Slot = "night"
)

// TagPlaceholder marks a record substituted because the whole day (or its
// slot block) was absent, as opposed to field-level fallback.
const TagPlaceholder = "placeholder"

// NormalizeSlot coerces arbitrary input to a valid slot. Anything that is
// not recognizably "night" resolves to morning.
func NormalizeSlot(s string) Slot {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "night", "sunset", "evening", "pm":
		return SlotNight
	case "morning", "sunrise", "am":
		return SlotMorning
	default:
		return SlotMorning
	}
}

// Record is the canonical devotion shape produced by the resolver. Every
// field except Tags is non-empty on every record the resolver returns.
type Record struct {
	Date         string   `json:"date"`
	Mode         Slot     `json:"mode"`
	Theme        string   `json:"theme"`
	VerseRef     string   `json:"verse_ref"`
	VerseText    string   `json:"verse_text"`
	VerseMeaning string   `json:"verse_meaning"`
	Body         string   `json:"body"`
	Prayer       string   `json:"prayer"`
	Tags         []string `json:"tags"`
}

// IsPlaceholder reports whether the record was substituted whole because no
// real content existed for its date and slot.
func (r *Record) IsPlaceholder() bool {
	for _, t := range r.Tags {
		if t == TagPlaceholder {
			return true
		}
	}
	return false
}

func (r *Record) isBlank() bool {
	return r.Theme == "" && r.VerseRef == "" && r.VerseText == "" &&
		r.VerseMeaning == "" && r.Body == "" && r.Prayer == ""
}

// SlotContent is one slot's worth of fallback text.
type SlotContent struct {
	Theme        string
	VerseRef     string
	VerseText    string
	VerseMeaning string
	Body         string
	Prayer       string
}

// Fallbacks is the fixed content pack the resolver substitutes from. Field
// values fill individual blanks on otherwise-real records; the placeholder
// theme and body replace the whole record when a day or slot is absent.
type Fallbacks struct {
	Morning SlotContent
	Night   SlotContent

	PlaceholderTheme string
	PlaceholderBody  string
}

func (f Fallbacks) forSlot(slot Slot) SlotContent {
	if slot == SlotNight {
		return f.Night
	}
	return f.Morning
}

const (
	defaultMorningPrayer = "Lord, order my steps today. Amen."
	defaultNightPrayer   = "Lord, quiet my mind and keep me in Your care. Amen."
)

// DefaultPrayer returns the slot's default prayer line, used both by the
// fallback pack and by the raw renderer when an entry carries no prayer.
func DefaultPrayer(slot Slot) string {
	if slot == SlotNight {
		return defaultNightPrayer
	}
	return defaultMorningPrayer
}

// DefaultFallbacks returns the production content pack.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		Morning: SlotContent{
			Theme:        "A Word for This Morning",
			VerseRef:     "Psalm 118:24",
			VerseText:    "This is the day the Lord has made; we will rejoice and be glad in it.",
			VerseMeaning: "Today is not an accident. Receive it as a gift and walk into it with joy.",
			Body:         "Take a quiet moment with today's verse and let it set the direction of your day.",
			Prayer:       defaultMorningPrayer,
		},
		Night: SlotContent{
			Theme:        "Rest for Tonight",
			VerseRef:     "Psalm 4:8",
			VerseText:    "In peace I will lie down and sleep, for you alone, Lord, make me dwell in safety.",
			VerseMeaning: "The day is done. What is unfinished can wait; you are kept while you sleep.",
			Body:         "Lay the day down piece by piece and let tonight's verse be the last word over it.",
			Prayer:       defaultNightPrayer,
		},
		PlaceholderTheme: "Coming Soon",
		PlaceholderBody:  "Today's devotion is not yet available. Please check back soon.",
	}
}
