package detect

import (
	"regexp"
	"strings"
)

// EmailDetectorName is the dhName for the email detector (spec.md §4.7).
const EmailDetectorName = "email"

// emailPattern is an RFC5322-style regex translated from the original
// Python source (datahandlers/email.py).
var emailPattern = regexp.MustCompile(
	`[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?`,
)

// tldPattern enforces the top-level-domain shape required by spec.md §4.7.
var tldPattern = regexp.MustCompile(`\.[A-Za-z]{2,63}$`)

const (
	maxLocalLen  = 64
	maxDomainLen = 253
	maxLabelLen  = 63
)

// EmailDetector recognizes email addresses and redacts the local part,
// leaving the domain untouched.
type EmailDetector struct{}

// NewEmailDetector constructs an EmailDetector.
func NewEmailDetector() *EmailDetector { return &EmailDetector{} }

func (d *EmailDetector) Name() string { return EmailDetectorName }

// FindMatch implements Detector.
func (d *EmailDetector) FindMatch(chunk string) map[string][]string {
	results := make(map[string][]string)
	seen := make(map[string]struct{})
	for _, m := range emailPattern.FindAllString(chunk, -1) {
		candidate := strings.TrimSpace(m)
		local, domain, ok := splitEmail(candidate)
		if !ok || !isValidEmail(local, domain) {
			continue
		}
		redacted := redactEmail(local, domain)
		if _, dup := seen[redacted]; dup {
			continue
		}
		seen[redacted] = struct{}{}
		results[EmailDetectorName] = append(results[EmailDetectorName], redacted)
	}
	return results
}

func splitEmail(candidate string) (local, domain string, ok bool) {
	if strings.Count(candidate, "@") != 1 {
		return "", "", false
	}
	parts := strings.SplitN(candidate, "@", 2)
	return parts[0], parts[1], true
}

// isValidEmail applies the additional validity gates from spec.md §4.7:
// non-empty local/domain, local <= 64, domain <= 253, each domain label
// <= 63, and a trailing TLD of 2-63 letters.
func isValidEmail(local, domain string) bool {
	if local == "" || domain == "" {
		return false
	}
	if len(local) > maxLocalLen || len(domain) > maxDomainLen {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if len(label) > maxLabelLen {
			return false
		}
	}
	return tldPattern.MatchString(domain)
}

// redactEmail applies the positional redaction rules of spec.md §4.7 to
// the local part only; the domain is returned unchanged.
func redactEmail(local, domain string) string {
	n := len(local)
	var redactedLocal string
	switch {
	case n == 1:
		redactedLocal = "*"
	case n <= 5:
		redactedLocal = local[:1] + strings.Repeat("*", n-1)
	case n <= 9:
		redactedLocal = local[:1] + strings.Repeat("*", n-2) + local[n-1:]
	default:
		redactedLocal = local[:3] + strings.Repeat("*", n-4) + local[n-1:]
	}
	return redactedLocal + "@" + domain
}
