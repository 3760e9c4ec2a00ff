package assist

// Canned texts returned to dealers.
const (
	OutOfScopeMessage = "딜러메이트는 차량 상담·추천·비교·리스크·가격/협상·팔로업 등 업무 질문만 도와드립니다.\n" +
		"차량번호 또는 고객 조건(예산/차종/금기사항)을 입력해 주세요."

	recommendSummary = "조건에 맞는 매물을 3개로 정제해 추천했습니다."
	pricingSummary   = "최근 3개월 시세 범위와 현재 포지션을 요약했습니다."
	compareSummary   = "핵심 차이점과 비교표를 생성했습니다."
	kpiSummary       = "최근 판매 현황과 KPI 요약을 가져왔습니다."

	followupKakao   = "안녕하세요! 문의주신 차량 관련해서 추가로 궁금하신 점 있으실까요? 원하시면 조건에 맞는 추천 3대도 바로 보내드릴게요."
	followupSMS     = "안녕하세요. 차량 상담 관련해 추가 문의 있으시면 편하게 답장 주세요. 조건 맞는 매물 3대 추천도 가능합니다."
	followupSummary = "팔로업 메시지 템플릿을 생성했습니다."

	negotiationGuardrail = "시세 하단을 방어가로 두고, 감가 사유(주행/옵션/사고/재고기간)를 근거로 단계적 양보폭을 설정하세요."
	negotiationScript    = "가격은 시세 기준으로 이미 합리적으로 맞춰드린 상태입니다. 대신 고객님 상황에 맞춰 추가 혜택(정비/보증/탁송) 쪽으로 조정해드릴 수 있어요."
	negotiationSummary   = "협상 가이드와 멘트 초안을 제안했습니다."

	briefingFallback   = "추가 조회 데이터가 제한적입니다. 원부/정비/성능을 확인해 고지 포인트를 정리하세요."
	disclosureScript   = "확인된 이력 기준으로 투명하게 안내드리고, 성능기록부/정비이력 기준으로 상태를 함께 확인해드리겠습니다."
	briefingPointSep   = " / "
	lienPoint          = "저당/압류 이력: 있음 (추가 확인 필요)"
	ownerChangesFormat = "소유자 변경: %s회"
	maintenanceFormat  = "정비 이력: %s건"
)

var nextActions = []string{"성능기록부 확인", "정비이력 주요 항목 체크", "시세 대비 가격 포지션 확인"}
