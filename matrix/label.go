package matrix

import "strings"

// Label renders the words first through last as the text of a choice.
// Only the first prefixLen characters of the words are significant.
//
// Words that differ in their first letter render as "A-B". Otherwise the
// prefix is shown alone when first and last agree on its final letter,
// as two prefixes ("AB-AC") for short prefixes, and as the common stem
// followed by the range of final letters ("REA-M") for long ones.
func Label(first, last string, prefixLen int) string {
	p := prefixLen
	b := new(strings.Builder)
	switch {
	case first[0] != last[0]:
		b.WriteString(head(first, p))
		b.WriteByte('-')
		b.WriteString(head(last, 1))
	case at(last, p-1) == at(first, p-1):
		b.WriteString(head(first, p))
	case p < 3:
		b.WriteString(head(first, p))
		b.WriteByte('-')
		b.WriteString(head(last, p))
	default:
		// No space between stem and range: labels hold only letters
		// and '-'. Words shorter than the prefix end the stem early
		// ("CAN-D").
		b.WriteString(head(first, p-1))
		b.WriteString(at(first, p-1))
		b.WriteByte('-')
		b.WriteString(at(last, p-1))
	}
	return strings.ToUpper(b.String())
}

func head(s string, n int) string {
	return s[:min(n, len(s))]
}

func at(s string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i : i+1]
}
