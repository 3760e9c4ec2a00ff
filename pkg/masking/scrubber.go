package masking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
)

// PIILevel controls how free text is scrubbed before it reaches logs or traces.
type PIILevel string

const (
	// PIILevelNone redacts the whole text
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected identifiers with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no scrubbing
	PIILevelFull PIILevel = "full"
)

// Scrubber detects personal identifiers in free text.
type Scrubber struct {
	level PIILevel
	salt  string

	emailPattern    *regexp.Regexp
	phonePattern    *regexp.Regexp
	residentPattern *regexp.Regexp
}

// NewScrubber creates a scrubber; salt keeps hashes stable per deployment.
func NewScrubber(level PIILevel, salt string) *Scrubber {
	return &Scrubber{
		level:           level,
		salt:            salt,
		emailPattern:    regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern:    regexp.MustCompile(`\b01[016789][-.\s]?\d{3,4}[-.\s]?\d{4}\b`),
		residentPattern: regexp.MustCompile(`\b\d{6}-?[1-4]\d{6}\b`),
	}
}

// Scrub applies the configured level to text.
func (s *Scrubber) Scrub(text string) string {
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return text
	default:
		return s.hashPII(text)
	}
}

// Preview scrubs text and caps it to max runes for log lines.
func (s *Scrubber) Preview(text string, max int) string {
	scrubbed := []rune(s.Scrub(text))
	if max > 0 && len(scrubbed) > max {
		return string(scrubbed[:max]) + "..."
	}
	return string(scrubbed)
}

func (s *Scrubber) hashPII(input string) string {
	result := s.residentPattern.ReplaceAllString(input, "[RRN:REDACTED]")

	result = s.emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})

	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})

	return result
}

func (s *Scrubber) hash(data string) string {
	h := sha256.New()
	h.Write([]byte(data + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:8]
}
