package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MaxDocumentBytes is the size cap for imported build documents.
const MaxDocumentBytes = 1 << 20 // 1MB

// DecodeDocument parses an exported build document. Fields absent from the
// document keep their default values, and the result is sanitized, so any
// well-formed JSON object decodes into a usable build. Only syntactically
// invalid JSON (or an oversized document) is an error.
func DecodeDocument(raw []byte) (*Build, error) {
	if len(raw) > MaxDocumentBytes {
		return nil, fmt.Errorf("build document too large: %d bytes (max %d)", len(raw), MaxDocumentBytes)
	}
	b := Defaults()
	if err := json.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("decoding build document: %w", err)
	}
	b.Sanitize()
	return b, nil
}

// EncodeDocument serializes a build to the exported document shape.
func (b *Build) EncodeDocument() ([]byte, error) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding build document: %w", err)
	}
	return out, nil
}

var (
	unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9 _\-]+`)
	fileSpaces      = regexp.MustCompile(`\s+`)
)

// SafeFileName turns a build name into a safe export file name (without
// extension): strips everything outside [a-zA-Z0-9 _-], collapses spaces to
// underscores, caps the length at 60, and falls back to "zzz_build".
func SafeFileName(name string) string {
	s := unsafeFileChars.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	s = fileSpaces.ReplaceAllString(s, "_")
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		return "zzz_build"
	}
	return s
}
