// Package intent classifies a free-text dealer message into a closed set of
// intents using ordered keyword patterns.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a message.
type Intent string

const (
	Recommend   Intent = "recommend"
	Compare     Intent = "compare"
	Risk        Intent = "risk"
	Pricing     Intent = "pricing"
	Negotiation Intent = "negotiation"
	Followup    Intent = "followup"
	KPI         Intent = "kpi"
	OutOfScope  Intent = "out_of_scope"
)

// All lists every intent in classification priority order.
var All = []Intent{OutOfScope, Recommend, Compare, Risk, Pricing, Negotiation, Followup, KPI}

type rule struct {
	pattern *regexp.Regexp
	intent  Intent
}

// outOfScope is matched against the raw message before anything else.
var outOfScope = regexp.MustCompile(`(배고파|날씨|주식|연애|농담|게임|점심|저녁)`)

// Order matters: the first matching rule wins.
var rules = []rule{
	{regexp.MustCompile(`(추천|매물|조건|suv|sedan|top\s*3|3대)`), Recommend},
	{regexp.MustCompile(`(비교|vs|차이|표)`), Compare},
	{regexp.MustCompile(`(리스크|사고|성능|정비|원부|침수|교환)`), Risk},
	{regexp.MustCompile(`(시세|가격|포지션|얼마|market|price)`), Pricing},
	{regexp.MustCompile(`(협상|할인|깎|양보|방어가|제시가)`), Negotiation},
	{regexp.MustCompile(`(팔로업|카톡|문자|메시지|follow)`), Followup},
	{regexp.MustCompile(`(판매현황|kpi|장기재고|에이징|지표)`), KPI},
}

// Classify maps message to an intent. It never fails; unmatched messages
// default to Recommend.
func Classify(message string) Intent {
	if outOfScope.MatchString(message) {
		return OutOfScope
	}

	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, r := range rules {
		if r.pattern.MatchString(normalized) {
			return r.intent
		}
	}
	return Recommend
}

// Valid reports whether s names a known intent.
func Valid(s string) bool {
	for _, i := range All {
		if string(i) == s {
			return true
		}
	}
	return false
}
