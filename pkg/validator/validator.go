package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const DateLayout = "2006-01-02"

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	brPhoneRegex  = regexp.MustCompile(`^(55)?[1-9][0-9](9[0-9]{8}|[2-8][0-9]{7})$`)
	hexColorRegex = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// DigitsOnly strips everything but digits, e.g. "(71) 98833-5001" -> "71988335001".
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ValidatePhone accepts Brazilian landline and mobile numbers with area code,
// optionally prefixed with the country code 55.
func ValidatePhone(phone string) bool {
	return brPhoneRegex.MatchString(DigitsOnly(phone))
}

func ValidatePassword(password string) bool {
	return utf8.RuneCountInString(password) >= 6
}

func ValidateClientName(name string) bool {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 || utf8.RuneCountInString(name) > 100 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' && r != '.' {
			return false
		}
	}

	return true
}

func ValidateDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

func ValidateHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

func FormatName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		parts[i] = string(runes)
	}

	return strings.Join(parts, " ")
}

func SanitizeString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s))
}
