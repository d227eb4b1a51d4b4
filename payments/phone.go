package payments

import (
	"regexp"
	"strings"
)

// Tanzanian mobile numbers: +255/255 prefix or local 0 prefix, followed by
// a 6 or 7 network code and eight digits.
var tzPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\+255|255)[67]\d{8}$`),
	regexp.MustCompile(`^0[67]\d{8}$`),
}

func cleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// ValidatePhone reports whether phone is a well-formed Tanzanian mobile
// number in local or international form.
func ValidatePhone(phone string) bool {
	clean := cleanPhone(phone)
	for _, pattern := range tzPhonePatterns {
		if pattern.MatchString(clean) {
			return true
		}
	}
	return false
}

// NormalizePhone converts a valid number to international +255 form.
// Numbers that match none of the known prefixes are returned cleaned but
// otherwise untouched.
func NormalizePhone(phone string) string {
	clean := cleanPhone(phone)
	switch {
	case strings.HasPrefix(clean, "0"):
		return "+255" + clean[1:]
	case strings.HasPrefix(clean, "255"):
		return "+" + clean
	case strings.HasPrefix(clean, "+255"):
		return clean
	}
	return clean
}
