package security

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultMaxResumeBytes = 5 << 20

var (
	ErrResumeFilename = errors.New("resume filename must end in .pdf, .doc or .docx")
	ErrResumeEncoding = errors.New("resume must be base64 encoded")
	ErrResumeTooLarge = errors.New("resume exceeds the maximum allowed size")
	ErrResumeSpoofed  = errors.New("resume content does not match its extension")
	ErrResumeMIMEType = errors.New("resume type is not allowed")
)

// Magic byte signatures per allowed extension
var resumeMagicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE compound document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// Sniffed MIME types accepted per extension. Never application/octet-stream.
var resumeMIMETypes = map[string][]string{
	".pdf": {"application/pdf"},
	".doc": {"application/msword", "application/x-ole-storage"},
	".docx": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/zip",
	},
}

// ResumeValidator checks an inline resume attachment in three layers:
// extension allowlist, magic bytes, then the MIME type sniffed by mimetype.
type ResumeValidator struct {
	maxBytes int
}

func NewResumeValidator(maxBytes int) *ResumeValidator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResumeBytes
	}
	return &ResumeValidator{maxBytes: maxBytes}
}

// Validate accepts raw base64 or a data URL ("data:<mime>;base64,<payload>").
func (v *ResumeValidator) Validate(filename, encoded string) error {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if _, ok := resumeMagicBytes[ext]; !ok {
		return ErrResumeFilename
	}

	payload := encoded
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 || !strings.Contains(payload[:idx], ";base64") {
			return ErrResumeEncoding
		}
		payload = payload[idx+1:]
	}
	payload = strings.TrimSpace(payload)

	// reject before allocating the decoded buffer
	if base64.StdEncoding.DecodedLen(len(payload)) > v.maxBytes+2 {
		return fmt.Errorf("%w (%d bytes)", ErrResumeTooLarge, v.maxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return ErrResumeEncoding
		}
	}
	if len(data) > v.maxBytes {
		return fmt.Errorf("%w (%d bytes)", ErrResumeTooLarge, v.maxBytes)
	}

	if !hasMagicPrefix(ext, data) {
		return ErrResumeSpoofed
	}

	detected := mimetype.Detect(data)
	for _, allowed := range resumeMIMETypes[ext] {
		if detected.Is(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrResumeMIMEType, detected.String())
}

func hasMagicPrefix(ext string, data []byte) bool {
	for _, sig := range resumeMagicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
