package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/internal/graph"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New("wa-token", "105551234", "v21.0", nil, graph.WithBaseURL(ts.URL))
}

func TestSendMessage_CloudAPIPayload(t *testing.T) {
	var gotBody map[string]interface{}
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/105551234/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.abc"}]}`))
	})

	result, err := adapter.SendMessage(context.Background(), &core.SendRequest{
		Platform:    core.PlatformWhatsApp,
		RecipientID: "+15550001111",
		Content:     "order shipped",
	})

	require.NoError(t, err)
	assert.Equal(t, "wamid.abc", result.MessageID)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "+15550001111", gotBody["to"])
	assert.Equal(t, "text", gotBody["type"])
	text := gotBody["text"].(map[string]interface{})
	assert.Equal(t, "order shipped", text["body"])
}

func TestSendMessage_ImageReplacesText(t *testing.T) {
	var gotBody map[string]interface{}
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.img"}]}`))
	})

	_, err := adapter.SendMessage(context.Background(), &core.SendRequest{
		Platform:    core.PlatformWhatsApp,
		RecipientID: "+15550001111",
		Content:     "see attached",
		MediaURL:    "https://example.com/receipt.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "image", gotBody["type"])
	assert.NotContains(t, gotBody, "text")
	image := gotBody["image"].(map[string]interface{})
	assert.Equal(t, "https://example.com/receipt.png", image["link"])
}

func TestSendMessage_MissingIDFallsBack(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messages":[]}`))
	})

	result, err := adapter.SendMessage(context.Background(), &core.SendRequest{
		Platform:    core.PlatformWhatsApp,
		RecipientID: "+15550001111",
		Content:     "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, "unknown", result.MessageID)
}

func TestUnsupportedOperations(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	ctx := context.Background()

	_, err := adapter.GetMessages(ctx, &core.GetMessagesRequest{Platform: core.PlatformWhatsApp, ConversationID: "c"})
	assert.Equal(t, errors.CodeUnsupportedOperation, errors.CodeOf(err))

	_, err = adapter.PostContent(ctx, &core.PostRequest{Platform: core.PlatformWhatsApp, Content: "x"})
	assert.Equal(t, errors.CodeUnsupportedOperation, errors.CodeOf(err))

	_, err = adapter.GetAnalytics(ctx, &core.AnalyticsRequest{Platform: core.PlatformWhatsApp, Metrics: []core.Metric{core.MetricReach}})
	assert.Equal(t, errors.CodeUnsupportedOperation, errors.CodeOf(err))
}
