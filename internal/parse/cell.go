package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numericRe    = regexp.MustCompile(`[^0-9.eE+\-]`)
	efficiencyRe = regexp.MustCompile(`IE\s*([1-5])`)
	headerStrip  = strings.NewReplacer(" ", "", "\u00a0", "", "_", "", "[", "", "]", "", "-", "")
)

// Header reduces a catalog column name to a compact lookup key.
func Header(raw string) string {
	return headerStrip.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// Missing reports whether a cell holds one of the "no data" markers.
func Missing(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "-", "\u2013", "\u2014", "n/a", "na", "none":
		return true
	}
	return false
}

// Float parses a numeric catalog cell. EU decimal commas are accepted and
// unit suffixes ("2,5 bar", "44 kW") are dropped. ok is false for missing
// or unparsable cells.
func Float(raw string) (v float64, ok bool) {
	if Missing(raw) {
		return 0, false
	}
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = numericRe.ReplaceAllString(s, "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Text trims a text cell and blanks "no data" markers.
func Text(raw string) string {
	if Missing(raw) {
		return ""
	}
	return strings.TrimSpace(raw)
}

// FlatBelt reports whether a drive description names a flat-belt drive.
func FlatBelt(drive string) bool {
	d := strings.ToLower(drive)
	return strings.Contains(d, "flat") && strings.Contains(d, "belt")
}

// EfficiencyClass maps a motor efficiency description such as "≥ IE3" or
// "IE2" to IE1, IE2, IE3 or IE3+. Classes above IE3, and IE3 marked as a
// lower bound, map to IE3+. Unrecognised text yields "".
func EfficiencyClass(raw string) string {
	s := strings.ToUpper(Text(raw))
	m := efficiencyRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	n, _ := strconv.Atoi(m[1])
	atLeast := strings.Contains(s, "≥") || strings.Contains(s, ">=") || strings.Contains(s, "+")
	switch {
	case n > 3, n == 3 && atLeast:
		return "IE3+"
	default:
		return "IE" + m[1]
	}
}
