package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field validators: one pure function per user-supplied field. Each returns
// nil or a per-field validation error (422) with a human-readable reason.
// Optional fields (first name, phone number, postal code) are validated only
// when supplied; callers pass the dereferenced value.

// asciiPunct is the classic ASCII punctuation set.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// asciiPunctNoUnderscore is asciiPunct with underscore removed; underscores
// are the one punctuation mark allowed in usernames.
const asciiPunctNoUnderscore = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

var (
	validate = validator.New()

	phoneNumberRe = regexp.MustCompile(`^(?:\+38|0)?\(?0?\d{2}\)?\s?\d{3}-?\d{2}-?\d{2}$`)
	postalCodeRe  = regexp.MustCompile(`^\d{5}$`)
)

func isPunct(r rune) bool { return strings.ContainsRune(asciiPunct, r) }

func containsAny(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

// isTitleCase reports whether every run of letters starts with an uppercase
// letter followed only by lowercase ones, and at least one letter is present.
// "New York" and "Kyiv" pass; "new york", "kYIV" and "" do not.
func isTitleCase(s string) bool {
	cased := false
	prevLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			prevLetter = false
			continue
		}
		cased = true
		if prevLetter {
			if !unicode.IsLower(r) {
				return false
			}
		} else {
			if !unicode.IsUpper(r) {
				return false
			}
		}
		prevLetter = true
	}
	return cased
}

// isUpperCase reports whether s has at least one letter and no lowercase ones.
func isUpperCase(s string) bool {
	return containsAny(s, unicode.IsLetter) && !containsAny(s, unicode.IsLower)
}

// containsLetter rejects strings built purely from digits, whitespace and
// punctuation. The empty string counts as letterless.
func containsLetter(s string) bool {
	return containsAny(s, func(r rune) bool {
		return !unicode.IsDigit(r) && !unicode.IsSpace(r) && !isPunct(r)
	})
}

func ValidateEmail(value string) error {
	if value == "" {
		return ErrMissingField("email")
	}
	if utf8.RuneCountInString(value) > 50 {
		return ErrInvalidField("email", "must be at most 50 characters long")
	}
	if err := validate.Var(value, "email"); err != nil {
		return ErrInvalidField("email", "is not a valid email address")
	}
	return nil
}

func ValidateUsername(value string) error {
	if n := utf8.RuneCountInString(value); n < 5 || n > 30 {
		return ErrInvalidField("username", "length must be between 5 and 30 characters")
	}
	if containsAny(value, unicode.IsUpper) {
		return ErrInvalidField("username", "must not contain uppercase characters")
	}
	if containsAny(value, unicode.IsSpace) {
		return ErrInvalidField("username", "must not contain whitespaces")
	}
	if strings.ContainsAny(value, asciiPunctNoUnderscore) {
		return ErrInvalidField("username", "must not contain any punctuation marks other than underscores")
	}
	return nil
}

func ValidatePassword(value string) error {
	if utf8.RuneCountInString(value) < 8 {
		return ErrInvalidField("password", "must be at least 8 characters long")
	}
	if !containsAny(value, unicode.IsUpper) {
		return ErrInvalidField("password", "must contain at least one uppercase letter")
	}
	if !containsAny(value, unicode.IsLower) {
		return ErrInvalidField("password", "must contain at least one lowercase letter")
	}
	if !containsAny(value, unicode.IsDigit) {
		return ErrInvalidField("password", "must contain at least one digit")
	}
	if !strings.ContainsAny(value, asciiPunct) {
		return ErrInvalidField("password", "must contain at least one punctuation mark")
	}
	if containsAny(value, unicode.IsSpace) {
		return ErrInvalidField("password", "must not contain whitespaces")
	}
	return nil
}

// validateName backs both first and last name: single capitalized word,
// letters only.
func validateName(field, value string) error {
	if containsAny(value, unicode.IsSpace) {
		return ErrInvalidField(field, "must not contain whitespaces")
	}
	if containsAny(value, unicode.IsDigit) {
		return ErrInvalidField(field, "must not contain digits")
	}
	if strings.ContainsAny(value, asciiPunct) {
		return ErrInvalidField(field, "must not contain punctuation marks")
	}
	if !isTitleCase(value) {
		return ErrInvalidField(field, "must start with a capital letter")
	}
	return nil
}

func ValidateFirstName(value string) error { return validateName("first_name", value) }

func ValidateLastName(value string) error { return validateName("last_name", value) }

func ValidatePhoneNumber(value string) error {
	if !phoneNumberRe.MatchString(value) {
		return ErrInvalidField("phone_number", "is in the wrong format")
	}
	return nil
}

func ValidateTitle(value string) error {
	if utf8.RuneCountInString(value) > 30 {
		return ErrInvalidField("title", "must be at most 30 characters long")
	}
	if !containsLetter(value) {
		return ErrInvalidField("title", "must contain letters")
	}
	return nil
}

func ValidateDescription(value string) error {
	if utf8.RuneCountInString(value) > 200 {
		return ErrInvalidField("description", "must be at most 200 characters long")
	}
	if !containsLetter(value) {
		return ErrInvalidField("description", "must contain letters")
	}
	return nil
}

func ValidatePriority(value int) error {
	if value < PriorityMin || value > PriorityMax {
		return ErrInvalidField("priority", "must be between 1 and 5")
	}
	return nil
}

// validatePlace backs city and state: capitalized words, no digits or
// punctuation; inner spaces are fine ("New York").
func validatePlace(field, value string) error {
	if strings.ContainsAny(value, asciiPunct) {
		return ErrInvalidField(field, "must not contain punctuation marks")
	}
	if containsAny(value, unicode.IsDigit) {
		return ErrInvalidField(field, "must not contain digits")
	}
	if !isTitleCase(value) {
		return ErrInvalidField(field, "must start with a capital letter")
	}
	return nil
}

func ValidateCity(value string) error { return validatePlace("city", value) }

func ValidateState(value string) error { return validatePlace("state", value) }

// ValidateCountry allows either title case ("Ukraine") or a fully uppercase
// acronym ("USA").
func ValidateCountry(value string) error {
	if strings.ContainsAny(value, asciiPunct) {
		return ErrInvalidField("country", "must not contain punctuation marks")
	}
	if containsAny(value, unicode.IsDigit) {
		return ErrInvalidField("country", "must not contain digits")
	}
	if !isTitleCase(value) && !isUpperCase(value) {
		return ErrInvalidField("country", "must start with a capital letter or be fully uppercase")
	}
	return nil
}

func ValidatePostalCode(value string) error {
	if !postalCodeRe.MatchString(value) {
		return ErrInvalidField("postal_code", "must be exactly 5 digits")
	}
	return nil
}

func ValidateRole(value string) error {
	if !IsValidRole(value) {
		return ErrInvalidField("role", "must be either `admin` or `user`")
	}
	return nil
}
