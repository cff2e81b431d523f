package usecases

import (
	"fmt"
	"strings"
)

// slugify lowers a name and collapses non-alphanumeric runs into single
// dashes
func slugify(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ReferralCode builds a user's referral code from their name and signup
// year. A non-zero counter disambiguates collisions: name-year-counter.
func ReferralCode(fullName string, year, counter int) string {
	slug := slugify(fullName)
	if slug == "" {
		slug = "user"
	}
	code := fmt.Sprintf("%s-%d", slug, year)
	if counter > 0 {
		code = fmt.Sprintf("%s-%d", code, counter)
	}
	return code
}
