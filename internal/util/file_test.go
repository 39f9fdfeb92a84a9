package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.DOCX", AttachmentDoc},
		{"notes.md", AttachmentDoc},
		{"deck.pptx", AttachmentPPT},
		{"deck.key", AttachmentSlide},
		{"scores.csv", AttachmentSheet},
		{"paper.pdf", AttachmentPDF},
		{"photo.png", AttachmentFile},
		{"README", AttachmentFile},
	}

	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.want, AttachmentType(tc.filename))
		})
	}
}

func TestValidateMimeType(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{name: "pdf", content: []byte("%PDF-1.7\n")},
		{name: "text", content: []byte("hello")},
		{name: "png", content: []byte("\x89PNG\r\n\x1a\n")},
		{name: "html", content: []byte("<html><body>x</body></html>"), wantErr: ErrInvalidFileType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateMimeType(bytes.NewReader(tc.content), []string{MimeImage, MimePDF, "text/plain"})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
