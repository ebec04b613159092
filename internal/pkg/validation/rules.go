package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Subject mnemonic - 2 to 4 letters
	MnemonicPattern = `^[a-zA-Z]{2,4}$`

	// Course number - exactly 4 digits, kept as text to preserve leading zeros
	NumberPattern = `^\d{4}$`

	// Title length bounds, measured after trimming
	TitleMinLength = 1
	TitleMaxLength = 50

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Mnemonic *regexp.Regexp
	Number   *regexp.Regexp
}{
	Mnemonic: regexp.MustCompile(MnemonicPattern),
	Number:   regexp.MustCompile(NumberPattern),
}

// IsValidMnemonic reports whether the mnemonic is 2-4 alphabetic characters.
// The value is trimmed before matching; case is not significant because
// mnemonics are upper-cased on storage.
func IsValidMnemonic(mnemonic string) bool {
	return CompiledPatterns.Mnemonic.MatchString(strings.TrimSpace(mnemonic))
}

// IsValidNumber reports whether the course number is exactly 4 digits.
func IsValidNumber(number string) bool {
	return CompiledPatterns.Number.MatchString(strings.TrimSpace(number))
}

// IsValidTitle reports whether the trimmed title is 1-50 characters.
func IsValidTitle(title string) bool {
	n := len(strings.TrimSpace(title))
	return n >= TitleMinLength && n <= TitleMaxLength
}

// IsValidUsername reports whether the username is non-empty after trimming.
func IsValidUsername(username string) bool {
	return strings.TrimSpace(username) != ""
}

// IsValidPassword reports whether the password meets the minimum length.
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidRating reports whether the rating is in the inclusive 1-5 range.
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
