package devotion

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMaxChars is the soft length ceiling for rendered messages. Chat
// platforms accept far more, but longer blocks are user-hostile.
const DefaultMaxChars = 4000

const (
	headerDateLayout = "Monday, January 02, 2006"
	promoLabel       = "🔗 Visit our website"
)

// Renderer turns records (or raw legacy day-blocks) into shareable message
// text. Rendering is pure aside from the advisory length warning; the same
// inputs always produce byte-identical output.
type Renderer struct {
	siteURL  string
	maxChars int
	warnf    func(format string, args ...any)
}

// NewRenderer builds a renderer promoting siteURL. maxChars <= 0 falls back
// to DefaultMaxChars; a nil warnf disables the length warning.
func NewRenderer(siteURL string, maxChars int, warnf func(format string, args ...any)) *Renderer {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	return &Renderer{
		siteURL:  siteURL,
		maxChars: maxChars,
		warnf:    warnf,
	}
}

func header(slot Slot, date time.Time) string {
	label := "🌅 Sunrise Devotion"
	if slot == SlotNight {
		label = "🌙 Sunset Devotion"
	}
	return label + " — " + date.Format(headerDateLayout)
}

// RenderRecord renders a canonical record. Lines appear only when their
// field is non-empty; a nil or blank record renders to the empty string.
func (rd *Renderer) RenderRecord(rec *Record, slot Slot, date time.Time) string {
	if rec == nil || rec.isBlank() {
		return ""
	}
	slot = NormalizeSlot(string(slot))

	lines := []string{header(slot, date)}
	if rec.Theme != "" {
		lines = append(lines, "Theme: "+rec.Theme)
	}
	if rec.VerseRef != "" {
		verse := "📖 Scripture: " + rec.VerseRef
		if rec.VerseText != "" {
			verse += " — \"" + rec.VerseText + "\""
		}
		lines = append(lines, verse)
	}
	if rec.VerseMeaning != "" {
		lines = append(lines, "", rec.VerseMeaning)
	}
	if rec.Body != "" {
		lines = append(lines, "", rec.Body)
	}
	if rec.Prayer != "" {
		lines = append(lines, "", "🙏 Prayer: "+rec.Prayer)
	}
	if rd.siteURL != "" {
		lines = append(lines, "", promoLabel, rd.siteURL)
	}

	return rd.finish(strings.Join(lines, "\n"))
}

// RenderRaw renders a raw legacy day-block without canonical resolution,
// detecting whether the entry uses the newer field names, the legacy
// declaration style, or neither, and formatting accordingly.
func (rd *Renderer) RenderRaw(entry map[string]any, slot Slot, date time.Time) string {
	if len(entry) == 0 {
		return ""
	}
	slot = NormalizeSlot(string(slot))

	title := rawFirst(entry, "title", "Theme", "theme")
	verseRef := rawFirst(entry, "verse_ref", "verseRef", "VerseRef")
	verseText := rawFirst(entry, "verse_text", "verseText", "VerseText")
	var points []string
	for _, k := range []string{"point1", "point2", "point3"} {
		if p := stringField(entry, k); p != "" {
			points = append(points, p)
		}
	}
	closing := stringField(entry, "closing")
	prayer := stringField(entry, "prayer")

	scripture := rawFirst(entry, "scripture", "Scripture", "verse")
	reflection := rawFirst(entry, "reflection", "note", "thought")
	declaration := stringField(entry, "declaration")
	blessing := stringField(entry, "blessing")
	morningPrayer := rawFirst(entry, "morning_prayer", "morningPrayer")
	nightPrayer := rawFirst(entry, "night_prayer", "nightPrayer")

	isNew := title != "" || verseRef != "" || verseText != "" ||
		len(points) > 0 || closing != "" || prayer != ""
	isLegacy := scripture != "" || reflection != "" || declaration != "" ||
		blessing != "" || morningPrayer != "" || nightPrayer != ""

	lines := []string{header(slot, date)}
	if v := rawFirst(entry, "sunrise", "Sunrise", "sun_rise"); v != "" {
		lines = append(lines, "🕕 Sunrise: "+v)
	}
	if v := rawFirst(entry, "sunset", "Sunset", "sun_set"); v != "" {
		lines = append(lines, "🌇 Sunset: "+v)
	}

	switch {
	case isNew:
		if title != "" {
			lines = append(lines, "\n*"+title+"*")
		}
		if verseRef != "" || verseText != "" {
			vv := verseRef
			if verseText != "" {
				if vv != "" {
					vv += " — " + verseText
				} else {
					vv = verseText
				}
			}
			lines = append(lines, "\n📖 "+vv)
		}
		if len(points) > 0 {
			lines = append(lines, "")
			for i, p := range points {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, p))
			}
		}
		if closing != "" {
			lines = append(lines, "\n✍️ "+closing)
		}
		if prayer == "" {
			prayer = DefaultPrayer(slot)
		}
		lines = append(lines, "\n🙏 "+prayer)

	case isLegacy:
		if title != "" {
			lines = append(lines, "\n*"+title+"*")
		}
		if scripture != "" {
			lines = append(lines, "\n📖 "+scripture)
		}
		if reflection != "" {
			lines = append(lines, "\n✍️ "+reflection)
		}
		if declaration != "" {
			lines = append(lines, "\n💬 "+declaration)
		}
		if blessing != "" {
			lines = append(lines, "\n🕊️ "+blessing)
		}
		pr := morningPrayer
		if slot == SlotNight {
			pr = nightPrayer
		}
		if pr == "" {
			pr = DefaultPrayer(slot)
		}
		lines = append(lines, "\n🙏 "+pr)

	default:
		if v := stringField(entry, "verse"); v != "" {
			lines = append(lines, "\n📖 "+v)
		}
		if n := stringField(entry, "note"); n != "" {
			lines = append(lines, "\n✍️ "+n)
		}
		lines = append(lines, "\n🙏 "+DefaultPrayer(slot))
	}

	if rd.siteURL != "" {
		lines = append(lines, "\n"+promoLabel+"\n"+rd.siteURL)
	}

	return rd.finish(strings.TrimSpace(strings.Join(lines, "\n")))
}

// finish applies the soft length guard. Oversized messages are returned
// unmodified; trimming is the caller's decision.
func (rd *Renderer) finish(msg string) string {
	if n := utf8.RuneCountInString(msg); n > rd.maxChars {
		rd.warnf("message is %d chars (recommended max %d), consider trimming", n, rd.maxChars)
	}
	return msg
}

func rawFirst(entry map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := stringField(entry, k); v != "" {
			return v
		}
	}
	return ""
}
