package validators

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsEmailValid is a basic syntactic check; deliverability is not verified.
func IsEmailValid(email string) bool {
	return emailRe.MatchString(email)
}

// IsPhoneValid accepts exactly 10 digits.
func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}
