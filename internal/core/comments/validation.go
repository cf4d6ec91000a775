package comments

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinContentLength is the minimum length of trimmed content, in code points
	MinContentLength = 5

	// MaxContentLength is the maximum length of untrimmed content, in code points
	MaxContentLength = 500
)

// contentCheck inspects comment content and returns the violated rule, or nil
type contentCheck func(content string) *ValidationError

// contentChecks run in order; the first violation wins
var contentChecks = []contentCheck{
	checkNotBlank,
	checkMinLength,
	checkMaxLength,
}

// ValidateContent applies the comment content rules
func ValidateContent(content string) *ValidationError {
	for _, check := range contentChecks {
		if v := check(content); v != nil {
			return v
		}
	}
	return nil
}

func checkNotBlank(content string) *ValidationError {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{
			Field:   "content",
			Rule:    RuleNotBlank,
			Message: "Comment content cannot be empty.",
		}
	}
	return nil
}

func checkMinLength(content string) *ValidationError {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLength {
		return &ValidationError{
			Field:   "content",
			Rule:    RuleMinLength,
			Message: "Comment must be at least 5 characters long.",
		}
	}
	return nil
}

func checkMaxLength(content string) *ValidationError {
	if utf8.RuneCountInString(content) > MaxContentLength {
		return &ValidationError{
			Field:   "content",
			Rule:    RuleMaxLength,
			Message: "Comment cannot exceed 500 characters.",
		}
	}
	return nil
}
