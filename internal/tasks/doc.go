// Package tasks orchestrates the full post submission pipeline with real-time progress reporting.
//
// # Core Operation
//
// The [Engine] interface defines the submission flow:
//
//  1. [Engine.Publish] : Full validate → generate → upload pipeline
//     - Verifies each selected file against size and type limits
//     - Optionally requests AI-generated content before submitting
//     - Uploads a single multipart request with all files and fields
//     - Records the submission in the local history
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # History Recording
//
// The optional [HistoryRecorder] interface enables automatic local persistence of submissions.
// Records are written silently (errors ignored) so a broken local database never blocks an upload.
package tasks
