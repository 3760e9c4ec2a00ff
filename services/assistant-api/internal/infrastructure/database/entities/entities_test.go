package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
)

func TestArtifactContentKeepsKeyOrder(t *testing.T) {
	content := toolvalue.Pairs("deal_id", 4, "customer_token", "CST-1-77", "summary", "요약")
	e := NewArtifact(&artifact.Artifact{DealID: 4, Type: artifact.TypeBriefing, Content: content})

	assert.JSONEq(t, `{"deal_id":4,"customer_token":"CST-1-77","summary":"요약"}`, string(e.Content))
	assert.Equal(t, []string{"deal_id", "customer_token", "summary"}, e.EtoD().Content.Keys())
}

func TestDealNullPreferenceStoredAsObject(t *testing.T) {
	e := NewDeal(&deal.Deal{OwnerUserID: "1", Status: deal.StatusNew})
	assert.Equal(t, "{}", string(e.Preference))

	d := e.EtoD()
	require.Equal(t, toolvalue.KindMap, d.Preference.Kind())
	assert.Equal(t, deal.StatusNew, d.Status)
}

func TestFromJSONToleratesGarbage(t *testing.T) {
	assert.Equal(t, toolvalue.KindMap, fromJSON([]byte("not json")).Kind())
	assert.Equal(t, toolvalue.KindMap, fromJSON(nil).Kind())
}
