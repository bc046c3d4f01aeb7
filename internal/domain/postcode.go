package domain

import (
	"regexp"
	"strings"
)

// postcodeRe matches a UK postcode anywhere in free text, e.g.
// "14 Acacia Ave, kt1 1aa" -> outward=kt1, inward=1aa.
var postcodeRe = regexp.MustCompile(`(?i)\b([A-Z]{1,2}[0-9][A-Z0-9]?)\s*([0-9][A-Z]{2})\b`)

// inwardLen is the length of the inward code (digit + two letters).
const inwardLen = 3

// ExtractPostcode returns the first UK postcode found in text, upper-cased with
// whitespace removed. The boolean is false when no postcode is recognized.
func ExtractPostcode(text string) (string, bool) {
	m := postcodeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1] + m[2]), true
}

// PostcodeArea strips the inward code and returns the outward code, e.g.
// "KT26QL" -> "KT2". Short inputs are returned normalized but otherwise intact.
func PostcodeArea(postcode string) string {
	pc := normalizePostcode(postcode)
	if len(pc) <= inwardLen+1 {
		return pc
	}
	return pc[:len(pc)-inwardLen]
}

// FormatPostcode renders a postcode in display form with a single space before
// the inward code, e.g. "KT11AA" -> "KT1 1AA".
func FormatPostcode(postcode string) string {
	pc := normalizePostcode(postcode)
	if len(pc) <= inwardLen+1 {
		return pc
	}
	return pc[:len(pc)-inwardLen] + " " + pc[len(pc)-inwardLen:]
}

func normalizePostcode(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
