package validation

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// EmailMaxLength caps the accepted length of an email address.
const EmailMaxLength = 150

var validate = validator.New()

// FieldRules constrains a set of required text fields. A zero length bound
// means "unbounded"; both bounds are inclusive.
type FieldRules struct {
	MinLength int
	MaxLength int
	OnlyLatin bool
}

// InvalidTextFields reports whether any of the required fields is missing
// from data, empty, outside the length bounds, or violates the Latin-only
// constraint. Only set membership and per-field content matter; the order
// of required is irrelevant.
func InvalidTextFields(data map[string]string, required []string, rules FieldRules) bool {
	for _, name := range required {
		value, ok := data[name]
		if !ok || value == "" {
			return true
		}
		// Bounds are in characters, not bytes; multibyte values must not
		// be cut short.
		length := utf8.RuneCountInString(value)
		if rules.MinLength > 0 && length < rules.MinLength {
			return true
		}
		if rules.MaxLength > 0 && length > rules.MaxLength {
			return true
		}
		if rules.OnlyLatin && !IsLatin(value) {
			return true
		}
	}
	return false
}

// IsLatin reports whether every character of s belongs to the basic Latin
// alphabet, case-insensitive. The empty string is not Latin.
func IsLatin(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// CheckEmail reports whether value is a well-formed address no longer than
// EmailMaxLength.
func CheckEmail(value string) bool {
	if utf8.RuneCountInString(value) > EmailMaxLength {
		return false
	}
	return validate.Var(value, "required,email") == nil
}

// PasswordOK is the password policy predicate. The default only rejects the
// empty password; deployments can swap in a stricter policy.
var PasswordOK = func(value string) bool {
	return value != ""
}

// CheckPassword reports whether value satisfies the current password policy.
func CheckPassword(value string) bool {
	return PasswordOK(value)
}
