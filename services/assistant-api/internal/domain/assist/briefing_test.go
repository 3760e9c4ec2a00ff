package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

func TestExtractPlate(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"12가3456 리스크 고지 멘트 만들어줘", "12가3456"},
		{"차량 123허4567 확인", "123허4567"},
		{"번호판 없음", FallbackPlate},
		{"1가3456", FallbackPlate},
		{"12가3456호 리스크", FallbackPlate},
		{"차량12가3456 리스크", FallbackPlate},
		{"(12가3456) 리스크", "12가3456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractPlate(tt.message), tt.message)
	}
}

func TestRiskBriefing(t *testing.T) {
	car := toolvalue.Pairs("plate", "12가3456", "model", "K5", "year", 2020, "km", 51000)

	tests := []struct {
		name        string
		registry    toolvalue.Value
		maintenance toolvalue.Value
		want        string
	}{
		{
			name:        "all points",
			registry:    toolvalue.Pairs("owner_changes", 3, "lien", true),
			maintenance: toolvalue.Pairs("total_records", 11),
			want:        "소유자 변경: 3회 / " + lienPoint + " / 정비 이력: 11건",
		},
		{
			name:        "zero owner changes still reported",
			registry:    toolvalue.Pairs("owner_changes", 0, "lien", false),
			maintenance: toolvalue.Object(nil),
			want:        "소유자 변경: 0회",
		},
		{
			name:        "maintenance only",
			registry:    toolvalue.Null(),
			maintenance: toolvalue.Pairs("total_records", 4),
			want:        "정비 이력: 4건",
		},
		{
			name:        "nothing known",
			registry:    toolvalue.Object(nil),
			maintenance: toolvalue.Null(),
			want:        briefingFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := RiskBriefing(car, tt.registry, tt.maintenance)
			assert.Equal(t, tt.want, b.Get("summary").Text())
			assert.Equal(t, disclosureScript, b.Get("disclosure_script").Text())
			assert.Equal(t, len(nextActions), b.Get("next_actions").Len())
			assert.Equal(t, []string{"plate", "model", "year", "km"}, b.Get("car_snapshot").Keys())
		})
	}
}

func TestRiskBriefing_MissingCarFields(t *testing.T) {
	b := RiskBriefing(toolvalue.Object(nil), toolvalue.Null(), toolvalue.Null())
	assert.True(t, b.Get("car_snapshot").Get("plate").IsNull())
}
