package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Form validation errors, raised before any network call
	ErrMissingTitle    = fmt.Errorf("title is required")
	ErrNoPlatforms     = fmt.Errorf("at least one platform must be selected")
	ErrNoFiles         = fmt.Errorf("at least one video file must be selected")
	ErrFileRejected    = fmt.Errorf("file rejected")
	ErrFileTooLarge    = fmt.Errorf("file exceeds maximum size")
	ErrFileType        = fmt.Errorf("unsupported video format")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidSchedule = fmt.Errorf("invalid schedule time")

	// API and account errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServerRejected     = fmt.Errorf("server rejected request")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrUnknownPlatform    = fmt.Errorf("unknown platform")
	ErrOAuthTimeout       = fmt.Errorf("timed out waiting for authorization")
	ErrPostNotFound       = fmt.Errorf("post not found")
)
