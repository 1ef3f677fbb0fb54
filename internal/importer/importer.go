// Package importer turns raw email text or extracted document text into a
// draft task. The heuristics are deliberately crude literal tests, not a
// classifier; changing them changes observable behavior.
package importer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// DefaultTitle is used when pasted text carries no Subject line.
const DefaultTitle = "New Task from Email"

// MaxFileDescription bounds how much extracted document text is stored.
const MaxFileDescription = 1000

// Draft is an unpersisted task proposal produced by the importer.
type Draft struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	Category    domain.TaskCategory
}

var subjectRe = regexp.MustCompile(`(?m)^Subject:[ \t]*(.*)$`)
var blankLineRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// ParseEmail applies the pasted-text heuristics:
//
//   - title: rest of the first "Subject:" line, else DefaultTitle
//   - description: everything after the first blank line, trimmed
//   - priority: "urgent" or "!" anywhere → high; "low priority" → low;
//     otherwise medium
//
// The category is always "email" for pasted text.
func ParseEmail(text string) Draft {
	d := Draft{
		Title:    DefaultTitle,
		Priority: inferPriority(text),
		Category: domain.CategoryEmail,
	}

	if m := subjectRe.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			d.Title = title
		}
	}

	if loc := blankLineRe.FindStringIndex(text); loc != nil {
		d.Description = strings.TrimSpace(text[loc[1]:])
	}

	return d
}

// FileDraft builds a draft from text extracted out of an uploaded document.
// No heuristics run on this path: priority is always medium and the category
// is general-inquiry.
func FileDraft(filename, text string) Draft {
	description := truncateRunes(text, MaxFileDescription)
	return Draft{
		Title:       "Imported from: " + filename,
		Description: description,
		Priority:    domain.PriorityMedium,
		Category:    domain.CategoryGeneralInquiry,
	}
}

// truncateRunes cuts s to at most n characters without splitting a rune, so
// the stored description stays valid UTF-8.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := 0
	for i := range s {
		if runes == n {
			return s[:i]
		}
		runes++
	}
	return s
}

func inferPriority(text string) domain.TaskPriority {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "urgent") || strings.Contains(text, "!"):
		return domain.PriorityHigh
	case strings.Contains(lower, "low priority"):
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}
