package feedback

import (
	"strings"
	"time"

	"feedbackdesk/internal/domain/customfield"
)

// TimestampLayout matches ISO-8601 with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	MinRating = 1
	MaxRating = 5
)

// Record is one submitted piece of feedback. Records are immutable once
// stored; they are only ever removed as a whole.
type Record struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Rating       int                    `json:"rating"`
	Message      string                 `json:"message"`
	Category     Category               `json:"category"`
	Timestamp    string                 `json:"timestamp"`
	Attachments  []Attachment           `json:"attachments,omitempty"`
	CustomFields []customfield.Snapshot `json:"customFields,omitempty"`
}

// Attachment is the persisted part of an attachment draft.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (r Record) DisplayName() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Anonymous"
	}
	return r.Name
}

// Time parses Timestamp; records with a malformed timestamp yield the zero time.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatTimestamp renders a record time like "Mar 4, 2025 3:07 PM".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// Stars renders a rating as five filled or hollow stars.
func Stars(rating int) string {
	rating = max(0, min(rating, MaxRating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxRating-rating)
}
