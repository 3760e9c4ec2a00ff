package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrub_None(t *testing.T) {
	s := NewScrubber(PIILevelNone, "salt")
	assert.Equal(t, "[REDACTED]", s.Scrub("010-1234-5678 연락주세요"))
}

func TestScrub_Full(t *testing.T) {
	s := NewScrubber(PIILevelFull, "salt")
	input := "hong@example.com 으로 견적 보내주세요"
	assert.Equal(t, input, s.Scrub(input))
}

func TestScrub_Hashed(t *testing.T) {
	s := NewScrubber(PIILevelHashed, "salt")

	tests := []struct {
		name     string
		input    string
		leaked   string
		expected string
	}{
		{"email", "hong@example.com 으로 보내주세요", "hong@example.com", "[EMAIL:"},
		{"phone dashes", "고객 010-1234-5678 팔로업", "1234-5678", "[PHONE:"},
		{"phone plain", "고객 01012345678 팔로업", "01012345678", "[PHONE:"},
		{"resident number", "주민번호 900101-1234567 확인", "1234567", "[RRN:REDACTED]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Scrub(tt.input)
			assert.NotContains(t, result, tt.leaked)
			assert.Contains(t, result, tt.expected)
		})
	}
}

func TestScrub_HashIsStable(t *testing.T) {
	s := NewScrubber(PIILevelHashed, "salt")
	assert.Equal(t, s.Scrub("010-1234-5678"), s.Scrub("010-1234-5678"))

	other := NewScrubber(PIILevelHashed, "other")
	assert.NotEqual(t, s.Scrub("010-1234-5678"), other.Scrub("010-1234-5678"))
}

func TestPreviewTruncatesRunes(t *testing.T) {
	s := NewScrubber(PIILevelFull, "")
	assert.Equal(t, "무사고...", s.Preview("무사고 SUV 추천", 3))
	assert.Equal(t, "짧음", s.Preview("짧음", 10))
}
