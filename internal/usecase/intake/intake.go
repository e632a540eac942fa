package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"feedbackdesk/internal/bootstrap/logging"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/ports"
)

// MaxFileSize is the per-file cap (5 MiB).
const MaxFileSize int64 = 5 * 1024 * 1024

var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var ErrAttachmentIndexOutOfRange = errors.New("attachment index out of range")

// AllowedTypes returns the accepted MIME types.
func AllowedTypes() []string {
	return slices.Clone(allowedTypes)
}

func IsAllowedType(mimeType string) bool {
	return slices.Contains(allowedTypes, baseType(mimeType))
}

// File is one dropped or selected file. Open is only called for files that
// pass the type and size checks.
type File struct {
	Name string
	Type string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromBytes wraps in-memory content.
func FileFromBytes(name string, mimeType string, content []byte) File {
	return File{
		Name: name,
		Type: mimeType,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// FileFromPath stats path and detects its MIME type from content, falling
// back to the extension when the content is not recognized.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, errs.Wrapf(err, "stat attachment %q", path)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("attachment %q is a directory", path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, errs.Wrapf(err, "detect mime type of %q", path)
	}
	mimeType := baseType(detected.String())
	if mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			mimeType = baseType(byExt)
		}
	}

	return File{
		Name: filepath.Base(path),
		Type: mimeType,
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

type RejectReason string

const (
	ReasonUnsupportedType RejectReason = "unsupported type"
	ReasonTooLarge        RejectReason = "too large"
	ReasonUnreadable      RejectReason = "unreadable"
)

// Rejection reports one file skipped by AddFiles.
type Rejection struct {
	Name   string
	Reason RejectReason
	Err    error
}

func (r Rejection) Message() string {
	switch r.Reason {
	case ReasonUnsupportedType:
		return "File type not supported: " + r.Name
	case ReasonTooLarge:
		return "File too large (max 5MB): " + r.Name
	default:
		return fmt.Sprintf("File could not be read: %s", r.Name)
	}
}

// Draft is an accepted, not yet submitted attachment.
type Draft struct {
	Name string
	Type string
	URL  string
	File File
}

// Pending is the attachment list of one form. It owns the ephemeral
// references it mints and is not safe for concurrent use.
type Pending struct {
	refs   ports.BlobRefs
	drafts []Draft
}

func NewPending(refs ports.BlobRefs) *Pending {
	return &Pending{refs: refs}
}

// AddFiles checks every file independently and appends all accepted drafts
// in one update. Rejections never fail the batch.
func (p *Pending) AddFiles(ctx context.Context, files []File) ([]Draft, []Rejection) {
	logCtx := logging.WithComponent(ctx, "usecase.intake")

	accepted := make([]Draft, 0, len(files))
	var rejected []Rejection

	for _, file := range files {
		if !IsAllowedType(file.Type) {
			rejected = append(rejected, Rejection{Name: file.Name, Reason: ReasonUnsupportedType})
			logging.Info(logCtx, "attachment rejected", slog.String("file", file.Name), slog.String("type", file.Type), slog.String("reason", string(ReasonUnsupportedType)))
			continue
		}
		if file.Size > MaxFileSize {
			rejected = append(rejected, Rejection{Name: file.Name, Reason: ReasonTooLarge})
			logging.Info(logCtx, "attachment rejected", slog.String("file", file.Name), slog.Int64("size", file.Size), slog.String("reason", string(ReasonTooLarge)))
			continue
		}

		ref, err := p.mint(file)
		if err != nil {
			rejected = append(rejected, Rejection{Name: file.Name, Reason: ReasonUnreadable, Err: err})
			logging.Warn(logCtx, "attachment unreadable", slog.String("file", file.Name), slog.Any("err", errs.Loggable(err)))
			continue
		}

		accepted = append(accepted, Draft{Name: file.Name, Type: baseType(file.Type), URL: ref, File: file})
	}

	if len(accepted) > 0 {
		p.drafts = append(p.drafts, accepted...)
	}
	return accepted, rejected
}

func (p *Pending) mint(file File) (string, error) {
	if p.refs == nil {
		return "", errors.New("blob registry is required")
	}
	if file.Open == nil {
		return "", errors.New("file has no content")
	}

	rc, err := file.Open()
	if err != nil {
		return "", errs.Wrap(err, "open attachment")
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
	if err != nil {
		return "", errs.Wrap(err, "read attachment")
	}
	if int64(len(content)) > MaxFileSize {
		return "", fmt.Errorf("attachment grew past %d bytes while reading", MaxFileSize)
	}

	return p.refs.Mint(file.Name, baseType(file.Type), content)
}

// Remove releases the draft's reference, then drops it from the list.
func (p *Pending) Remove(index int) error {
	if index < 0 || index >= len(p.drafts) {
		return fmt.Errorf("%w: %d (have %d)", ErrAttachmentIndexOutOfRange, index, len(p.drafts))
	}
	if p.refs != nil {
		p.refs.Release(p.drafts[index].URL)
	}
	p.drafts = slices.Delete(p.drafts, index, index+1)
	return nil
}

// ReleaseAll releases every pending reference, for an abandoned form.
func (p *Pending) ReleaseAll() {
	if p.refs == nil {
		p.drafts = nil
		return
	}
	for _, draft := range p.drafts {
		p.refs.Release(draft.URL)
	}
	p.drafts = nil
}

// Detach empties the list without releasing references; the submitted
// record now owns them.
func (p *Pending) Detach() []domainfeedback.Attachment {
	out := p.Snapshot()
	p.drafts = nil
	return out
}

func (p *Pending) Drafts() []Draft {
	return slices.Clone(p.drafts)
}

func (p *Pending) Len() int { return len(p.drafts) }

// Snapshot drops the file handles, keeping {name, type, url}.
func (p *Pending) Snapshot() []domainfeedback.Attachment {
	if len(p.drafts) == 0 {
		return nil
	}
	out := make([]domainfeedback.Attachment, 0, len(p.drafts))
	for _, draft := range p.drafts {
		out = append(out, domainfeedback.Attachment{Name: draft.Name, Type: draft.Type, URL: draft.URL})
	}
	return out
}

// Kind groups a MIME type for display: image, pdf, document or file.
func Kind(mimeType string) string {
	t := baseType(mimeType)
	switch {
	case strings.HasPrefix(t, "image/"):
		return "image"
	case t == "application/pdf":
		return "pdf"
	case strings.Contains(t, "word"):
		return "document"
	default:
		return "file"
	}
}

func baseType(mimeType string) string {
	t, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
