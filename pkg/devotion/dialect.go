package devotion

// The year stores hold day-blocks in two live shapes: slotted blocks with
// nested morning/night objects, and flat blocks that are themselves the
// content for both slots. Classification happens once per resolve, then
// extraction branches on the result instead of re-probing keys.

type dialect int

const (
	dialectSlotted dialect = iota
	dialectFlat
)

var themeKeys = []string{"theme", "Theme", "title", "Title"}

// classify tags a day-block by shape: an object-typed value under "morning"
// or "night" makes it slotted, anything else is flat.
func classify(day map[string]any) dialect {
	for _, k := range []string{string(SlotMorning), string(SlotNight)} {
		if _, ok := day[k].(map[string]any); ok {
			return dialectSlotted
		}
	}
	return dialectFlat
}

// slotBlock returns the object holding the slot's fields. Slotted blocks fan
// out per slot; flat blocks serve the same content to both slots. A missing
// or non-object slot entry returns nil.
func slotBlock(day map[string]any, slot Slot, d dialect) map[string]any {
	if d == dialectFlat {
		return day
	}
	block, _ := day[string(slot)].(map[string]any)
	return block
}

// dayTheme picks the day-level theme regardless of dialect.
func dayTheme(day map[string]any) string {
	for _, k := range themeKeys {
		if v := stringField(day, k); v != "" {
			return v
		}
	}
	return ""
}
