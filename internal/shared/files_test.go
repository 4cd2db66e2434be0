package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeMP4Fixture(t *testing.T, dir, name string) string {
	t.Helper()
	header := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
		'm', 'p', '4', '2', 'i', 's', 'o', 'm',
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestMIMEForExtension(t *testing.T) {
	tc := []struct {
		path string
		want string
	}{
		{"clip.mp4", "video/mp4"},
		{"clip.MOV", "video/quicktime"},
		{"clip.avi", "video/x-msvideo"},
		{"clip.webm", "video/webm"},
		{"clip.mkv", "video/x-matroska"},
		{"clip.txt", ""},
		{"clip", ""},
	}

	for _, tt := range tc {
		t.Run(tt.path, func(t *testing.T) {
			if got := MIMEForExtension(tt.path); got != tt.want {
				t.Errorf("MIMEForExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestAllowedVideoMIME(t *testing.T) {
	if !AllowedVideoMIME("video/mp4") {
		t.Error("expected video/mp4 to be allowed")
	}
	if !AllowedVideoMIME(" VIDEO/WEBM ") {
		t.Error("expected case and whitespace to be normalized")
	}
	if AllowedVideoMIME("image/png") {
		t.Error("expected image/png to be rejected")
	}
}

func TestVerifyVideoFile(t *testing.T) {
	t.Run("accepts a valid mp4", func(t *testing.T) {
		path := writeMP4Fixture(t, t.TempDir(), "clip.mp4")

		info, err := VerifyVideoFile(path, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if info.MIME != "video/mp4" {
			t.Errorf("expected video/mp4, got %s", info.MIME)
		}
		if info.Name != "clip.mp4" {
			t.Errorf("unexpected name: %s", info.Name)
		}
		if info.Size == 0 {
			t.Error("expected a non-zero size")
		}
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		_, err := VerifyVideoFile(filepath.Join(t.TempDir(), "nope.mp4"), 0)
		if !errors.Is(err, ErrFileRejected) {
			t.Errorf("expected ErrFileRejected, got %v", err)
		}
	})

	t.Run("rejects a directory", func(t *testing.T) {
		_, err := VerifyVideoFile(t.TempDir(), 0)
		if !errors.Is(err, ErrFileRejected) {
			t.Errorf("expected ErrFileRejected, got %v", err)
		}
	})

	t.Run("rejects an unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		_, err := VerifyVideoFile(path, 0)
		if !errors.Is(err, ErrFileType) {
			t.Errorf("expected ErrFileType, got %v", err)
		}
	})

	t.Run("rejects a file over the limit", func(t *testing.T) {
		path := writeMP4Fixture(t, t.TempDir(), "clip.mp4")

		_, err := VerifyVideoFile(path, 8)
		if !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("rejects a renamed non-video", func(t *testing.T) {
		// PNG magic bytes with an .mp4 extension: the header check catches it.
		path := filepath.Join(t.TempDir(), "fake.mp4")
		png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
		if err := os.WriteFile(path, png, 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		_, err := VerifyVideoFile(path, 0)
		if !errors.Is(err, ErrFileType) {
			t.Errorf("expected ErrFileType, got %v", err)
		}
	})

	t.Run("keeps extension type when header is unrecognized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clip.webm")
		if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		info, err := VerifyVideoFile(path, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if info.MIME != "video/webm" {
			t.Errorf("expected video/webm, got %s", info.MIME)
		}
	})
}
