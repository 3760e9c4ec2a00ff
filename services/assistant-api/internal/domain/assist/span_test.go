package assist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/dealermate/dealermate-server/pkg/masking"
	"github.com/dealermate/dealermate-server/pkg/observability"
)

func TestAssist_SpanCarriesScrubbedMessage(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	f := newFixture(t, Options{Scrubber: masking.NewScrubber(masking.PIILevelHashed, "salt")})
	_, err := f.svc.Assist(context.Background(), Request{Principal: dealer, Message: "쏘렌토 시세 010-1234-5678로 알려줘"})
	require.NoError(t, err)

	var attrs map[string]string
	for _, span := range recorder.Ended() {
		if span.Name() != "assist.execute" {
			continue
		}
		attrs = map[string]string{}
		for _, kv := range span.Attributes() {
			attrs[string(kv.Key)] = kv.Value.Emit()
		}
	}
	require.NotNil(t, attrs, "assist span not recorded")
	assert.Equal(t, "pricing", attrs[observability.AttrIntent])
	assert.Equal(t, dealer.UserID, attrs[observability.AttrUserID])

	message := attrs[observability.AttrMessage]
	assert.NotContains(t, message, "010-1234-5678")
	assert.True(t, strings.Contains(message, "[PHONE:"), message)
}
