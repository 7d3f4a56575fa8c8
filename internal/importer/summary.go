package importer

import (
	"fmt"
	"strings"

	"recall/internal/api"
)

// summaryLimit bounds how many failed item names a summary shows. The full
// list stays on the job for callers that need every record.
const summaryLimit = 5

// Summarize composes a short human-readable line for a job snapshot.
func Summarize(job api.ImportStatus) string {
	failed := failedNames(job)

	switch job.Status {
	case api.TaskFailed:
		line := fmt.Sprintf("import failed: %d words could not be processed", len(failed))
		if preview := previewList(failed); preview != "" {
			line += "; examples: " + preview
		}
		return line
	case api.TaskCompleted:
		if len(failed) > 0 {
			line := fmt.Sprintf("import completed with %d failed words", len(failed))
			if preview := previewList(failed); preview != "" {
				line += "; examples: " + preview
			}
			return line
		}
		if job.Total > 0 {
			return fmt.Sprintf("import completed: %d words", job.Total)
		}
		return "import completed"
	default:
		if job.Total > 0 {
			return fmt.Sprintf("importing: %d/%d words (%d%%)", job.Processed, job.Total, job.Progress)
		}
		return fmt.Sprintf("importing: %d%%", job.Progress)
	}
}

func failedNames(job api.ImportStatus) []string {
	if len(job.FailedWords) > 0 {
		return job.FailedWords
	}
	names := make([]string, 0, len(job.FailedDetails))
	for _, detail := range job.FailedDetails {
		names = append(names, detail.Word)
	}
	return names
}

func previewList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	if len(names) <= summaryLimit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:summaryLimit], ", ") + ", …"
}
