package application

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Source identifies the entry point a resume candidate arrived through.
type Source string

const (
	// SourcePicker is a file-input change event.
	SourcePicker Source = "picker"
	// SourceDrop is a drop event on the resume drop zone.
	SourceDrop Source = "drop"
)

// Candidate describes a file offered as a resume. Name, MediaType and Size
// are what the client declared; Open is only called once the declared values
// pass the intake rules.
type Candidate struct {
	Name      string
	MediaType string
	Size      int64
	Open      func() (io.ReadCloser, error)
}

// IsZero reports whether no file was offered, as with a picker change that
// selected nothing.
func (c Candidate) IsZero() bool {
	return c.Name == "" && c.MediaType == "" && c.Size == 0 && c.Open == nil
}

// CandidateFromBytes wraps an in-memory file.
func CandidateFromBytes(name, mediaType string, data []byte) Candidate {
	return Candidate{
		Name:      filepath.Base(name),
		MediaType: normalizeMediaType(mediaType),
		Size:      int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// CandidateFromFileHeader builds a candidate from a multipart upload. The
// declared Content-Type is used as-is; when it is missing or generic the
// content is sniffed instead.
func CandidateFromFileHeader(header *multipart.FileHeader) (Candidate, error) {
	if header == nil {
		return Candidate{}, nil
	}

	candidate := Candidate{
		Name:      filepath.Base(header.Filename),
		MediaType: normalizeMediaType(header.Header.Get("Content-Type")),
		Size:      header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}

	if candidate.MediaType == "" || candidate.MediaType == contentTypeOctet {
		file, err := header.Open()
		if err != nil {
			return Candidate{}, fmt.Errorf("application: open upload %q: %w", header.Filename, err)
		}
		defer file.Close()

		detected, err := mimetype.DetectReader(file)
		if err != nil {
			return Candidate{}, fmt.Errorf("application: detect upload type %q: %w", header.Filename, err)
		}
		candidate.MediaType = detectedMediaType(detected)
	}

	return candidate, nil
}

// CandidateFromPath builds a candidate from a file on disk. Files carry no
// declared type, so it is sniffed from content.
func CandidateFromPath(path string) (Candidate, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Candidate{}, nil
	}

	info, err := os.Stat(trimmed)
	if err != nil {
		return Candidate{}, fmt.Errorf("application: stat %q: %w", trimmed, err)
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("application: %q is a directory", trimmed)
	}

	detected, err := mimetype.DetectFile(trimmed)
	if err != nil {
		return Candidate{}, fmt.Errorf("application: detect type %q: %w", trimmed, err)
	}

	return Candidate{
		Name:      filepath.Base(trimmed),
		MediaType: detectedMediaType(detected),
		Size:      info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(trimmed)
		},
	}, nil
}

// rejection returns the message for a candidate that breaks the intake
// rules, or "" when it is acceptable.
func (c Candidate) rejection() string {
	if c.MediaType != ContentTypePDF {
		return MsgResumeNotPDF
	}
	if c.Size > MaxResumeSizeBytes {
		return MsgResumeTooLarge
	}
	return ""
}

var errContentTooLarge = errors.New("application: resume content exceeds limit")

func (c Candidate) read() ([]byte, error) {
	if c.Open == nil {
		return nil, errors.New("application: candidate has no content")
	}
	rc, err := c.Open()
	if err != nil {
		return nil, fmt.Errorf("application: open %q: %w", c.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxResumeSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("application: read %q: %w", c.Name, err)
	}
	if int64(len(data)) > MaxResumeSizeBytes {
		return nil, errContentTooLarge
	}
	return data, nil
}

func normalizeMediaType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(trimmed)
	if err != nil {
		return strings.ToLower(trimmed)
	}
	return parsed
}

func detectedMediaType(detected *mimetype.MIME) string {
	if detected == nil {
		return contentTypeOctet
	}
	if detected.Is(ContentTypePDF) {
		return ContentTypePDF
	}
	return normalizeMediaType(detected.String())
}
