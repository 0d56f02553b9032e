package datetime

import (
	"errors"
	"time"
)

// Formatter normalizes the publication dates found in article metadata,
// which arrive in whatever format the publisher felt like using.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

var publishedDateFormats = []string{
	time.RFC3339,     // "2006-01-02T15:04:05Z07:00"
	time.RFC3339Nano, // "2006-01-02T15:04:05.999999999Z07:00"
	time.RFC1123Z,    // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,     // "Mon, 02 Jan 2006 15:04:05 MST"
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"Mon, 02 Jan 2006 15:04:05 UTC",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

var ErrUnknownDateFormat = errors.New("unrecognized date format")

// ParsePublishedDate tries the known publisher date formats in order.
func (f *Formatter) ParsePublishedDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, ErrUnknownDateFormat
	}

	for _, format := range publishedDateFormats {
		if parsedTime, err := time.Parse(format, dateStr); err == nil {
			return parsedTime.UTC(), nil
		}
	}

	return time.Time{}, ErrUnknownDateFormat
}

// NormalizePublishedDate maps a raw metadata date to a canonical RFC 3339
// UTC string, or "" when the raw value cannot be understood.
func (f *Formatter) NormalizePublishedDate(dateStr string) string {
	t, err := f.ParsePublishedDate(dateStr)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
