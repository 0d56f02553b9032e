package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_NormalizePublishedDate(t *testing.T) {
	formatter := NewFormatter()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rfc3339", "2024-03-05T09:30:00Z", "2024-03-05T09:30:00Z"},
		{"rfc3339 with offset", "2024-03-05T09:30:00+02:00", "2024-03-05T07:30:00Z"},
		{"rfc1123", "Tue, 05 Mar 2024 09:30:00 GMT", "2024-03-05T09:30:00Z"},
		{"date only", "2024-03-05", "2024-03-05T00:00:00Z"},
		{"unparseable", "last Tuesday-ish", ""},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, formatter.NormalizePublishedDate(test.in))
		})
	}
}
