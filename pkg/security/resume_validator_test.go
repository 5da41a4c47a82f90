package security

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestResumeValidator_AcceptsPDF(t *testing.T) {
	v := NewResumeValidator(1024)
	encoded := base64.StdEncoding.EncodeToString(samplePDF)

	assert.NoError(t, v.Validate("cv.pdf", encoded))
	assert.NoError(t, v.Validate("CV.PDF", "data:application/pdf;base64,"+encoded))
}

func TestResumeValidator_Rejections(t *testing.T) {
	v := NewResumeValidator(64)
	pdf := base64.StdEncoding.EncodeToString(samplePDF[:40])

	tests := []struct {
		name     string
		filename string
		encoded  string
		want     error
	}{
		{"bad extension", "cv.exe", pdf, ErrResumeFilename},
		{"no extension", "cv", pdf, ErrResumeFilename},
		{"not base64", "cv.pdf", "%%%not-base64%%%", ErrResumeEncoding},
		{"data url without base64", "cv.pdf", "data:application/pdf," + pdf, ErrResumeEncoding},
		{"too large", "cv.pdf", base64.StdEncoding.EncodeToString([]byte("%PDF" + strings.Repeat("x", 200))), ErrResumeTooLarge},
		{"spoofed docx", "cv.docx", pdf, ErrResumeSpoofed},
		{"plain text as pdf", "cv.pdf", base64.StdEncoding.EncodeToString([]byte("hello world")), ErrResumeSpoofed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.filename, tt.encoded)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
}
