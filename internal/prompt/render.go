package prompt

import "strings"

// Render substitutes every {{slot}} placeholder in text with the matching
// context value. Absent values become "". Placeholders that are not known
// slots are left as written.
func Render(text string, ctx Context) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	pairs := make([]string, 0, len(slotOrder)*2)
	for _, slot := range slotOrder {
		pairs = append(pairs, placeholder(slot), ctx.Value(slot))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Variables lists the known slots referenced by text, in slot order.
func Variables(text string) []string {
	var out []string
	for _, slot := range slotOrder {
		if strings.Contains(text, placeholder(slot)) {
			out = append(out, slot)
		}
	}
	return out
}

func placeholder(slot string) string {
	return "{{" + slot + "}}"
}
