package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"strips tags", "<b>Go</b> developer<script>alert(1)</script>", "Go developer"},
		{"trims", "  Remote  ", "Remote"},
		{"ampersand stays literal", "R&D <3 Go", "R&D <3 Go"},
		{"apostrophe stays literal", "Tom's R&D lab", "Tom's R&D lab"},
		{"entities in input are decoded once", "Fish &amp; Chips", "Fish & Chips"},
		{"markup inside text is still removed", "Q&A <img src=x onerror=alert(1)>session", "Q&A session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}

func TestTextSanitizer_Stable(t *testing.T) {
	s := NewTextSanitizer()

	once := s.Sanitize("Tom's R&D lab")
	assert.Equal(t, once, s.Sanitize(once))
}
