package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{"recommend sample", "무사고 SUV 2000만원 이하 추천해줘", Recommend},
		{"risk sample", "12가3456 리스크 고지 멘트 만들어줘", Risk},
		{"pricing sample", "쏘렌토 시세 요약해줘", Pricing},
		{"compare sample", "비교표 만들어줘", Compare},
		{"followup sample", "팔로업 카톡 문구", Followup},
		{"negotiation", "고객이 200만원 깎아달래요", Negotiation},
		{"kpi", "이번달 판매현황 보여줘", KPI},
		{"kpi english", "show me the KPI", KPI},
		{"out of scope", "오늘 날씨 어때", OutOfScope},
		{"out of scope wins over recommend", "점심 먹고 SUV 추천해줘", OutOfScope},
		{"recommend wins over compare", "추천 매물 비교해줘", Recommend},
		{"compare wins over risk", "사고 이력 차이", Compare},
		{"risk wins over pricing", "침수차 가격", Risk},
		{"pricing wins over negotiation", "할인 가격", Pricing},
		{"uppercase normalized", "  SEDAN 보여줘 ", Recommend},
		{"top 3 with spacing", "top   3 골라줘", Recommend},
		{"default", "안녕하세요", Recommend},
		{"empty", "", Recommend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	msg := "12가3456 리스크 고지 멘트 만들어줘"
	first := Classify(msg)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(msg))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("kpi"))
	assert.True(t, Valid("out_of_scope"))
	assert.False(t, Valid("smalltalk"))
}
