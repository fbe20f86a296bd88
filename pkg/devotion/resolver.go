package devotion

import (
	"strings"
	"time"
)

// fieldChains maps each chained canonical field to its lookup aliases.
// Evaluation is per-alias, slot-before-day: alias one is tried on the slot
// block then the day block, then alias two on both, and so on. The first
// non-empty string wins. This ordering is load-bearing for output fidelity;
// do not reorder.
var fieldChains = struct {
	verseRef     []string
	verseText    []string
	verseMeaning []string
	prayer       []string
}{
	verseRef:     []string{"verse_ref", "scripture"},
	verseText:    []string{"verse_text"},
	verseMeaning: []string{"verse_meaning", "silent_soul_meaning", "heart_picture", "encouragement_intro"},
	prayer:       []string{"prayer", "morning_prayer", "night_prayer"},
}

// bodyParts are the pieces the body field is assembled from, in order. Each
// part is looked up slot-before-day; non-empty parts join with newlines.
var bodyParts = []string{"body", "point1", "point2", "point3", "closing"}

// Resolver turns a (date, slot) pair into a canonical record. Resolve is
// total and deterministic: any missing or malformed source data degrades to
// the placeholder record or to field-level fallback content.
type Resolver struct {
	store    *Store
	fallback Fallbacks
}

// NewResolver builds a resolver over the store with the given content pack.
func NewResolver(store *Store, fallback Fallbacks) *Resolver {
	return &Resolver{
		store:    store,
		fallback: fallback,
	}
}

// Resolve returns the canonical record for the date and slot. The record is
// always fully populated: theme, verse_ref, verse_text, verse_meaning, body
// and prayer are non-empty on every path, and Tags is never nil.
func (r *Resolver) Resolve(date time.Time, slot Slot) Record {
	slot = NormalizeSlot(string(slot))
	key := ISODate(date)

	store := r.store.LoadYear(date.Year())
	if len(store) == 0 {
		return r.Placeholder(key, slot)
	}

	day, ok := store[key].(map[string]any)
	if !ok {
		return r.Placeholder(key, slot)
	}

	d := classify(day)
	block := slotBlock(day, slot, d)
	if len(block) == 0 {
		// An empty or garbage slot sub-object collapses to the same
		// placeholder as a missing day.
		return r.Placeholder(key, slot)
	}

	rec := Record{
		Date:         key,
		Mode:         slot,
		Theme:        dayTheme(day),
		VerseRef:     firstByAlias(block, day, fieldChains.verseRef),
		VerseText:    firstByAlias(block, day, fieldChains.verseText),
		VerseMeaning: firstByAlias(block, day, fieldChains.verseMeaning),
		Prayer:       firstByAlias(block, day, fieldChains.prayer),
		Tags:         tagList(block, day),
	}
	rec.Body = assembleBody(block, day, rec.VerseText)

	r.fillRequired(&rec, slot)
	return rec
}

// Placeholder is the whole-record substitute for a date with no usable
// content: pack verse and prayer content under a fixed "coming soon" theme
// and body, tagged so callers can tell it apart from real records.
func (r *Resolver) Placeholder(dateKey string, slot Slot) Record {
	slot = NormalizeSlot(string(slot))
	pack := r.fallback.forSlot(slot)
	return Record{
		Date:         dateKey,
		Mode:         slot,
		Theme:        r.fallback.PlaceholderTheme,
		VerseRef:     pack.VerseRef,
		VerseText:    pack.VerseText,
		VerseMeaning: pack.VerseMeaning,
		Body:         r.fallback.PlaceholderBody,
		Prayer:       pack.Prayer,
		Tags:         []string{TagPlaceholder},
	}
}

// fillRequired substitutes pack content for each required field still empty
// after extraction. Substitution is field-by-field; a record with one blank
// field keeps everything else it extracted.
func (r *Resolver) fillRequired(rec *Record, slot Slot) {
	pack := r.fallback.forSlot(slot)
	if rec.Theme == "" {
		rec.Theme = pack.Theme
	}
	if rec.VerseRef == "" {
		rec.VerseRef = pack.VerseRef
	}
	if rec.VerseText == "" {
		rec.VerseText = pack.VerseText
	}
	if rec.VerseMeaning == "" {
		rec.VerseMeaning = pack.VerseMeaning
	}
	if rec.Body == "" {
		rec.Body = pack.Body
	}
	if rec.Prayer == "" {
		rec.Prayer = pack.Prayer
	}
}

// firstByAlias walks the alias chain with slot-before-day precedence.
func firstByAlias(block, day map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if v := stringField(block, alias); v != "" {
			return v
		}
		if v := stringField(day, alias); v != "" {
			return v
		}
	}
	return ""
}

// assembleBody concatenates the body pieces; an empty assembly falls back to
// the already-extracted verse text.
func assembleBody(block, day map[string]any, verseText string) string {
	var parts []string
	for _, key := range bodyParts {
		v := stringField(block, key)
		if v == "" {
			v = stringField(day, key)
		}
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return verseText
	}
	return strings.Join(parts, "\n")
}

// tagList takes the slot's tags when they form a list, else the day's, else
// an empty list. Non-string elements are skipped.
func tagList(block, day map[string]any) []string {
	if tags, ok := listField(block, "tags"); ok {
		return tags
	}
	if tags, ok := listField(day, "tags"); ok {
		return tags
	}
	return []string{}
}

// stringField returns the string at key, or "" when the key is absent, not
// a string, or blank.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func listField(m map[string]any, key string) ([]string, bool) {
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags, true
}
