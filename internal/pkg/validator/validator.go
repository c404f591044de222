package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed rule of a request.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

// ToMap returns field -> message; the first message wins for repeated fields.
func (errs ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, exists := result[e.Field]; !exists {
			result[e.Field] = e.Message
		}
	}
	return result
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func IsInSlice(s string, slice []string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidDate checks the YYYY-MM-DD layout.
func IsValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func IsValidYear(year int) bool {
	return year >= 1900 && year <= 9999
}
