// Package export renders a single task snapshot into downloadable documents.
// Rendering is deterministic: the same task always produces the same bytes.
package export

import (
	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

const (
	heading            = "Task Details"
	descriptionHeading = "Description"
	emptyDescription   = "No description provided."
	createdAtLayout    = "1/2/2006, 3:04:05 PM"
)

// infoLines renders the fixed key/value block shared by both formats.
// The From line only appears when the task carries an originating address.
func infoLines(task *domain.Task) []string {
	status := "Pending"
	if task.Completed {
		status = "Completed"
	}

	lines := []string{
		"Title: " + task.Title,
		"Priority: " + string(task.Priority),
		"Category: " + string(task.Category),
		"Status: " + status,
		"Created At: " + task.CreatedAt.Format(createdAtLayout),
	}
	if task.EmailFrom != "" {
		lines = append(lines, "From: "+task.EmailFrom)
	}
	return lines
}

func description(task *domain.Task) string {
	if task.Description == "" {
		return emptyDescription
	}
	return task.Description
}
