// Package attachment saves pasted images next to notes and returns the
// markdown link that references them.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/google/uuid"
)

// ErrNoImage means the clipboard does not reference an image.
var ErrNoImage = errors.New("clipboard does not contain an image")

// PasteEvent describes the paste that triggered an image save.
type PasteEvent struct {
	// NoteName is used as the alt text fallback.
	NoteName string
	// BaseDir is where the note lives; links are written relative to it.
	BaseDir string
	Time    time.Time
}

// Saver stores an image taken from the clipboard and returns a markdown
// fragment such as "![name](attachments/id.png)".
type Saver interface {
	SaveImageFromClipboard(ctx context.Context, ev PasteEvent) (string, error)
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".svg":  true,
}

// IsImagePath reports whether path has a known image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ClipboardSaver reads a file path from the clipboard and copies the file
// into Dir under a random name.
type ClipboardSaver struct {
	Dir   string
	read  func() (string, error)
	newID func() string
}

var _ Saver = (*ClipboardSaver)(nil)

// NewClipboardSaver creates a saver writing into dir and reading clipboard
// text with read.
func NewClipboardSaver(dir string, read func() (string, error)) *ClipboardSaver {
	return &ClipboardSaver{
		Dir:   dir,
		read:  read,
		newID: func() string { return uuid.New().String() },
	}
}

// SaveImageFromClipboard implements Saver. The buffer is never touched here;
// on any error the caller inserts nothing.
func (s *ClipboardSaver) SaveImageFromClipboard(ctx context.Context, ev PasteEvent) (string, error) {
	if s.read == nil {
		return "", fmt.Errorf("no clipboard reader configured")
	}
	raw, err := s.read()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	src, ok := clipboardPath(raw)
	if !ok || !IsImagePath(src) {
		return "", ErrNoImage
	}
	info, err := os.Stat(src)
	if err != nil || info.IsDir() {
		return "", ErrNoImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating attachments dir '%s': %w", s.Dir, err)
	}
	dst := filepath.Join(s.Dir, s.newID()+strings.ToLower(filepath.Ext(src)))
	if err := copyFile(ctx, src, dst); err != nil {
		return "", err
	}
	logger.InfoTagf("attachment", "Saved pasted image %s -> %s", src, dst)

	alt := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if alt == "" {
		alt = ev.NoteName
	}
	return fmt.Sprintf("![%s](%s)", alt, linkPath(ev.BaseDir, dst)), nil
}

// clipboardPath accepts a plain path or a file:// URL on the first line.
func clipboardPath(raw string) (string, bool) {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(raw), "\n", 2)[0])
	if line == "" {
		return "", false
	}
	if strings.HasPrefix(line, "file://") {
		u, err := url.Parse(line)
		if err != nil {
			return "", false
		}
		line = u.Path
	}
	return line, true
}

func linkPath(baseDir, dst string) string {
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, dst); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(dst)
}

func copyFile(ctx context.Context, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening '%s': %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating '%s': %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying image: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing '%s': %w", dst, err)
	}
	// A cancelled paste leaves nothing behind.
	if err := ctx.Err(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
