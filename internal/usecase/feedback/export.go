package feedback

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"feedbackdesk/internal/bootstrap/logging"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/errs"
)

var csvHeader = []string{"Name", "Email", "Rating", "Category", "Message", "Timestamp"}

// ExportFileName is feedback_export_<YYYY-MM-DD>.csv for the UTC date of now.
func ExportFileName(now time.Time) string {
	return "feedback_export_" + now.UTC().Format("2006-01-02") + ".csv"
}

// WriteCSV writes records in the given order under a fixed header. Every
// cell is double-quoted with embedded quotes doubled; an empty name is
// written as "Anonymous".
func WriteCSV(w io.Writer, records []domainfeedback.Record) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(csvHeader, ",")); err != nil {
		return errs.Wrap(err, "write csv header")
	}
	for _, r := range records {
		row := []string{
			quoteCell(r.DisplayName()),
			quoteCell(r.Email),
			quoteCell(strconv.Itoa(r.Rating)),
			quoteCell(string(r.Category)),
			quoteCell(r.Message),
			quoteCell(r.Timestamp),
		}
		if _, err := bw.WriteString("\n" + strings.Join(row, ",")); err != nil {
			return errs.Wrapf(err, "write csv row %s", r.ID)
		}
	}

	if err := bw.Flush(); err != nil {
		return errs.Wrap(err, "flush csv")
	}
	return nil
}

func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// ExportCSV writes the whole, unfiltered record set to w.
func (s *Service) ExportCSV(w io.Writer) (int, error) {
	records := s.Feedbacks()
	if len(records) == 0 {
		return 0, ErrNothingToExport
	}
	if err := WriteCSV(w, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ExportToDir writes the export file into dir and returns its path.
func (s *Service) ExportToDir(ctx context.Context, dir string) (string, error) {
	logCtx := logging.WithComponent(ctx, "usecase.feedback")

	if len(s.Feedbacks()) == 0 {
		return "", ErrNothingToExport
	}

	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrapf(err, "create export directory %q", dir)
	}

	path := filepath.Join(dir, ExportFileName(s.now()))
	file, err := os.Create(path)
	if err != nil {
		return "", errs.Wrapf(err, "create export file %q", path)
	}

	count, err := s.ExportCSV(file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = errs.Wrap(closeErr, "close export file")
	}
	if err != nil {
		return "", err
	}

	logging.Info(logCtx, "feedback exported", slog.String("path", path), slog.Int("records", count))
	return path, nil
}
