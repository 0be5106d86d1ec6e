package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "file"},
		{"..", "file"},
		{"Report Final.PDF", "report-final.pdf"},
		{`C:\Users\jane\notes.txt`, "notes.txt"},
		{"../../etc/passwd", "passwd"},
		{"Crème brûlée.jpg", "creme-brulee.jpg"},
		{"con.txt", "_con.txt"},
		{"日本語.png", "file.png"},
		{"a___b...c.md", "a-b-c.md"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_Truncates(t *testing.T) {
	got := sanitizeFileName(strings.Repeat("a", 300) + ".txt")
	assert.Len(t, got, maxBaseNameLen)
	assert.True(t, strings.HasSuffix(got, ".txt"))
}
