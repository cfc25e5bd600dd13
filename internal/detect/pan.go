package detect

import (
	"regexp"
	"strings"
)

// PANDetectorName is the dhName for the PAN detector (spec.md §4.7).
const PANDetectorName = "pan"

// panBrandPatterns holds one boundary-anchored regex per card brand,
// translated from the original Python source (datahandlers/pan.py),
// which credits https://github.com/citypay/citypay-pan-search for the
// brand patterns. The boundary alternation (start-of-string or a
// character that is not a digit/dot/hyphen) reduces UUID false
// positives without excluding legitimately separated PANs. The PAN
// digits+separators are captured in group 1 so the boundary character
// itself never becomes part of the match.
var panBrandPatterns = map[string]*regexp.Regexp{
	"visa":     regexp.MustCompile(`(?:^|[^\d.-])(4[0-9]{3}[ -]?[0-9]{4}[ -]?[0-9]{4}[ -]?[0-9]{4})(?:$|[^\d.-])`),
	"mc":       regexp.MustCompile(`(?:^|[^\d.-])(5[1-5][0-9]{2}[ -]?[0-9]{4}[ -]?[0-9]{4}[ -]?[0-9]{4})(?:$|[^\d.-])`),
	"discover": regexp.MustCompile(`(?:^|[^\d.-])(6011[ -]?[0-9]{4}[ -]?[0-9]{4}[ -]?[0-9]{4})(?:$|[^\d.-])`),
	"jcb":      regexp.MustCompile(`(?:^|[^\d.-])((?:2131|1800|35[0-9]{3})[0-9]{11})(?:$|[^\d.-])`),
	"amex":     regexp.MustCompile(`(?:^|[^\d.-])(3[47][0-9]{2}[ -]?[0-9]{6}[ -]?[0-9]{5})(?:$|[^\d.-])`),
}

// panBrandOrder fixes iteration order so results are deterministic
// independent of Go's map iteration order.
var panBrandOrder = []string{"visa", "mc", "discover", "jcb", "amex"}

// PANDetector recognizes Visa, Mastercard, Amex, Discover, and JCB card
// numbers, validating each candidate with a Luhn check.
type PANDetector struct{}

// NewPANDetector constructs a PANDetector.
func NewPANDetector() *PANDetector { return &PANDetector{} }

func (d *PANDetector) Name() string { return PANDetectorName }

// FindMatch implements Detector.
func (d *PANDetector) FindMatch(chunk string) map[string][]string {
	results := make(map[string][]string)
	for _, brand := range panBrandOrder {
		re := panBrandPatterns[brand]
		for _, m := range re.FindAllStringSubmatch(chunk, -1) {
			candidate := strings.TrimSpace(m[1])
			if !isValidPAN(candidate) {
				continue
			}
			results[brand] = append(results[brand], redactPAN(candidate))
		}
	}
	return results
}

// isValidPAN strips non-digit separators and checks the Luhn checksum.
func isValidPAN(candidate string) bool {
	digits := stripNonDigits(candidate)
	if digits == "" {
		return false
	}
	return luhn(digits)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// redactPAN keeps the first 6 and last 4 digits, replaces the rest with
// '*', and restores original separators at their original character
// positions, per spec.md §4.7.
func redactPAN(candidate string) string {
	seps := make(map[int]byte)
	digits := make([]byte, 0, len(candidate))
	for i := 0; i < len(candidate); i++ {
		c := candidate[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		} else {
			seps[i] = c
		}
	}

	lastFourPos := len(digits) - 4
	var redacted strings.Builder
	redacted.Write(digits[:6])
	for i := 6; i < lastFourPos; i++ {
		redacted.WriteByte('*')
	}
	redacted.Write(digits[lastFourPos:])
	result := redacted.String()

	if len(seps) == 0 {
		return result
	}

	// Re-insert separators at their original character positions.
	out := make([]byte, 0, len(result)+len(seps))
	resultIdx := 0
	for i := 0; i < len(candidate); i++ {
		if sep, ok := seps[i]; ok {
			out = append(out, sep)
			continue
		}
		out = append(out, result[resultIdx])
		resultIdx++
	}
	return string(out)
}
