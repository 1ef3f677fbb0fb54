package importer

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

func TestParseEmail_SubjectAndUrgency(t *testing.T) {
	d := ParseEmail("Subject: Collab opportunity!\n\nPlease respond urgent.")

	if d.Title != "Collab opportunity!" {
		t.Fatalf("unexpected title: %q", d.Title)
	}
	if d.Priority != domain.PriorityHigh {
		t.Fatalf("expected high priority, got %q", d.Priority)
	}
	if d.Description != "Please respond urgent." {
		t.Fatalf("unexpected description: %q", d.Description)
	}
	if d.Category != domain.CategoryEmail {
		t.Fatalf("expected email category, got %q", d.Category)
	}
}

func TestParseEmail_NoSubjectNoBlankLine(t *testing.T) {
	d := ParseEmail("just one line of text")

	if d.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", d.Title)
	}
	if d.Description != "" {
		t.Fatalf("expected empty description, got %q", d.Description)
	}
	if d.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium priority, got %q", d.Priority)
	}
}

func TestParseEmail_ExclamationMarkAlone(t *testing.T) {
	d := ParseEmail("Subject: hello\n\nplease reply soon!")
	if d.Priority != domain.PriorityHigh {
		t.Fatalf("expected high priority for exclamation mark, got %q", d.Priority)
	}
}

func TestParseEmail_LowPriority(t *testing.T) {
	d := ParseEmail("Subject: cleanup\n\nthis is Low Priority, whenever you get to it")
	if d.Priority != domain.PriorityLow {
		t.Fatalf("expected low priority, got %q", d.Priority)
	}
}

func TestParseEmail_UrgentCaseInsensitive(t *testing.T) {
	d := ParseEmail("Subject: payment\n\nthis is URGENT")
	if d.Priority != domain.PriorityHigh {
		t.Fatalf("expected high priority, got %q", d.Priority)
	}
}

func TestParseEmail_SubjectNotOnFirstLine(t *testing.T) {
	d := ParseEmail("From: someone@example.com\nSubject: buried subject\n\nbody text")
	if d.Title != "buried subject" {
		t.Fatalf("unexpected title: %q", d.Title)
	}
	if d.Description != "body text" {
		t.Fatalf("unexpected description: %q", d.Description)
	}
}

func TestFileDraft_Truncation(t *testing.T) {
	long := strings.Repeat("a", MaxFileDescription+500)
	d := FileDraft("report.pdf", long)

	if d.Title != "Imported from: report.pdf" {
		t.Fatalf("unexpected title: %q", d.Title)
	}
	if len(d.Description) != MaxFileDescription {
		t.Fatalf("expected description truncated to %d, got %d", MaxFileDescription, len(d.Description))
	}
	if d.Priority != domain.PriorityMedium || d.Category != domain.CategoryGeneralInquiry {
		t.Fatalf("file drafts must be medium/general-inquiry, got %q/%q", d.Priority, d.Category)
	}
}

// Truncation counts characters, not bytes: a multi-byte rune sitting on the
// limit must not be split into invalid UTF-8.
func TestFileDraft_TruncationKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("é", MaxFileDescription+10)
	d := FileDraft("notes.pdf", long)

	if !utf8.ValidString(d.Description) {
		t.Fatalf("truncated description is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(d.Description); got != MaxFileDescription {
		t.Fatalf("expected %d characters, got %d", MaxFileDescription, got)
	}
	if strings.Contains(d.Description, "�") {
		t.Fatalf("description contains a replacement character")
	}
}

// The file path never runs the urgency heuristic, even when the extracted
// text would trigger it on the pasted-text path.
func TestFileDraft_NoHeuristics(t *testing.T) {
	d := FileDraft("memo.docx", "URGENT!!! drop everything")
	if d.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium priority on file path, got %q", d.Priority)
	}
}

func TestExtractText_UnsupportedType(t *testing.T) {
	if _, err := ExtractText("text/plain", []byte("hello")); err != domain.ErrUnsupportedFileType {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText(MimePDF, []byte("not a pdf at all"))
	if !errors.Is(err, domain.ErrFileProcessing) {
		t.Fatalf("expected ErrFileProcessing, got %v", err)
	}
}

func TestExtractText_CorruptDOCX(t *testing.T) {
	_, err := ExtractText(MimeDOCX, []byte("not a zip"))
	if err == nil {
		t.Fatalf("expected error for corrupt docx")
	}
}
