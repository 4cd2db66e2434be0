package tasks

import (
	"fmt"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	VerifyFiles Phase = iota
	GenerateContent
	UploadPost
	RecordHistory
)

func (p Phase) String() string {
	switch p {
	case VerifyFiles:
		return "verify_files"
	case GenerateContent:
		return "generate_content"
	case UploadPost:
		return "upload_post"
	case RecordHistory:
		return "record_history"
	default:
		return ""
	}
}

func verifyFileUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   VerifyFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Checking: %s...", step, total, name),
	}
}

func generatingContentUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateContent,
		Step:    1,
		Total:   1,
		Message: "Generating AI content...",
	}
}

func contentReadyUpdate(content *models.GeneratedContent) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateContent,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Content ready (viral score %d)", content.ViralScore),
		Data:    content,
	}
}

func uploadingUpdate(files, platforms int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadPost,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploading %d file(s) to %d platform(s)...", files, platforms),
	}
}

func uploadedUpdate(result *models.UploadResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadPost,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Upload complete: %s", result.Message),
		Data:    result,
	}
}

func recordedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecordHistory,
		Step:    1,
		Total:   1,
		Message: "Saved to local history",
	}
}
