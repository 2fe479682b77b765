package blob

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFileName_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name passes through lowercased", "Report.PDF", "report.pdf"},
		{"diacritics stripped", "Résumé.pdf", "resume.pdf"},
		{"path components dropped", "../../etc/passwd", "passwd"},
		{"backslash paths dropped", `C:\Users\me\doc.txt`, "doc.txt"},
		{"spaces and punctuation collapse to dashes", "My Photo (1).JPG", "my-photo-1.jpg"},
		{"windows reserved base escaped", "CON.txt", "_con.txt"},
		{"empty input", "", "file"},
		{"dot-only input", "..", "file"},
		{"all-symbol base falls back", "!!!.png", "file.png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFileName(tt.in))
		})
	}
}

func TestSafeFileName_LengthCapped(t *testing.T) {
	long := strings.Repeat("a", 500) + ".txt"

	got := SafeFileName(long)
	assert.LessOrEqual(t, len(got), maxBaseNameLen)
	assert.True(t, strings.HasSuffix(got, ".txt"))
}

func TestEnsureExt(t *testing.T) {
	assert.Equal(t, "photo.png", EnsureExt("photo.png", "image/jpeg"), "existing extension wins")
	assert.Equal(t, "blob.bin", EnsureExt("blob", "application/x-unknown-subtype"))

	got := EnsureExt("pic", "image/png")
	assert.True(t, strings.HasPrefix(got, "pic."), "an extension is appended from the mime type")
	assert.NotEqual(t, "pic.bin", got)
}
