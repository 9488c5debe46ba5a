package utils

import (
	"strings"
	"unicode"

	"admission-portal/apperrors"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {}, "abc12345": {},
	"trustno1": {}, "superman": {}, "letmein1": {}, "passw0rd": {}, "11111111": {},
	"00000000": {}, "admin123": {}, "changeme": {}, "whatever": {}, "starwars": {},
}

// PasswordAttributes are the account values a password must not resemble.
type PasswordAttributes struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// ValidatePassword applies the standard password policy: minimum length,
// not entirely numeric, not a common password and not derived from the
// account's own attributes.
func ValidatePassword(password string, attrs PasswordAttributes) error {
	var problems []string

	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, "This password is too common.")
	}
	if similarTo(password, attrs) {
		problems = append(problems, "The password is too similar to the account details.")
	}

	if len(problems) > 0 {
		return apperrors.NewValidation(apperrors.ErrWeakPassword.Reason, strings.Join(problems, " "))
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func similarTo(password string, attrs PasswordAttributes) bool {
	pw := strings.ToLower(password)
	candidates := []string{attrs.Username, attrs.FirstName, attrs.LastName, attrs.Email}
	if local, _, ok := strings.Cut(attrs.Email, "@"); ok {
		candidates = append(candidates, local)
	}
	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if len(c) < 3 {
			continue
		}
		if strings.Contains(pw, c) || strings.Contains(c, pw) {
			return true
		}
	}
	return false
}

// HashPassword bcrypt-hashes password with the given cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
