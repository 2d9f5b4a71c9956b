package participant

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the visual tone of a status badge.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
)

// StatusClass is the badge presentation for a status.
type StatusClass struct {
	Label    string
	Category Category
}

// ClassifyStatus maps any status string onto a badge. Unknown statuses are
// neutral.
func ClassifyStatus(status Status) StatusClass {
	class := StatusClass{Label: capitalize(string(status)), Category: CategoryNeutral}
	switch Status(strings.ToLower(strings.TrimSpace(string(status)))) {
	case StatusApproved:
		class.Category = CategoryPositive
	case StatusRejected:
		class.Category = CategoryNegative
	}
	return class
}

// Removal is the destructive action offered for a participant.
type Removal string

const (
	RemovalRevoke Removal = "revoke"
	RemovalDelete Removal = "delete"
)

// RemovalAction returns revoke for approved participants and delete otherwise.
func RemovalAction(status Status) Removal {
	if Status(strings.ToLower(strings.TrimSpace(string(status)))) == StatusApproved {
		return RemovalRevoke
	}
	return RemovalDelete
}

func capitalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(r)) + value[size:]
}
