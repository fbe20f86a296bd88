package devotion

import (
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// dateLayouts are the accepted textual date formats, tried in order. The
// store files have carried all of these at one point or another.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate parses s against every accepted layout and returns the first
// match.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate converts any accepted date string to ISO YYYY-MM-DD form.
func NormalizeDate(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(isoLayout), true
}

// ISODate formats t as the store key form.
func ISODate(t time.Time) string {
	return t.Format(isoLayout)
}
