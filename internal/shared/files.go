// Video file verification for the upload flow.
package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// MaxVideoBytes is the default upload size limit (500 MiB), matching the server.
const MaxVideoBytes int64 = 500 * 1024 * 1024

// allowedVideoTypes mirrors the server's accepted MIME set.
var allowedVideoTypes = map[string]bool{
	"video/mp4":        true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/webm":       true,
	"video/x-matroska": true,
}

var extensionMIMEs = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".qt":   "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
}

// VideoInfo describes a verified local video file.
type VideoInfo struct {
	Name string
	Path string
	Size int64
	MIME string
}

// AllowedVideoMIME reports whether a MIME string is in the accepted set.
func AllowedVideoMIME(mime string) bool {
	return allowedVideoTypes[strings.ToLower(strings.TrimSpace(mime))]
}

// MIMEForExtension maps a filename extension to its video MIME type, or "" when unknown.
func MIMEForExtension(path string) string {
	return extensionMIMEs[strings.ToLower(filepath.Ext(path))]
}

// SniffVideoMIME uses magic-number matching on the file header to determine
// the real MIME type. filetype needs at least 262 bytes; callers should pass 512.
func SniffVideoMIME(header []byte) (string, error) {
	kind, err := filetype.Match(header)
	if err != nil {
		return "", fmt.Errorf("file type detection failed: %w", err)
	}
	if kind == filetype.Unknown {
		return "", nil
	}
	return kind.MIME.Value, nil
}

// VerifyVideoFile validates a local file against the upload rules: the MIME
// type (by extension, cross-checked against the file header when readable)
// must be in the accepted set and the size must not exceed maxBytes.
// A maxBytes of zero falls back to [MaxVideoBytes].
func VerifyVideoFile(path string, maxBytes int64) (*VideoInfo, error) {
	if maxBytes <= 0 {
		maxBytes = MaxVideoBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRejected, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileRejected, path)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, info.Name(), info.Size())
	}

	mime := MIMEForExtension(path)
	if !AllowedVideoMIME(mime) {
		return nil, fmt.Errorf("%w: %s", ErrFileType, info.Name())
	}

	// Cross-check the declared type against the file header. An unreadable or
	// unrecognized header keeps the extension-derived type; a recognized header
	// outside the accepted set rejects the file.
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		header := make([]byte, 512)
		if n, err := f.Read(header); err == nil || err == io.EOF {
			if sniffed, err := SniffVideoMIME(header[:n]); err == nil && sniffed != "" {
				if !AllowedVideoMIME(sniffed) {
					return nil, fmt.Errorf("%w: %s content is %s", ErrFileType, info.Name(), sniffed)
				}
				mime = sniffed
			}
		}
	}

	return &VideoInfo{
		Name: info.Name(),
		Path: path,
		Size: info.Size(),
		MIME: mime,
	}, nil
}
