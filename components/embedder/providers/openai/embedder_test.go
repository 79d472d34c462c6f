package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
)

func testEmbedder(t *testing.T, promptTokens int) *Embedder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := openai.EmbeddingResponse{
			Data:  []openai.Embedding{{Index: 0, Embedding: []float32{1, 0}}},
			Usage: openai.Usage{PromptTokens: promptTokens},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	return New(openai.NewClientWithConfig(cfg))
}

func TestBatchEmbedAccumulatesUsage(t *testing.T) {
	emb := testEmbedder(t, 10)
	usage := new(components.LLMUsage)
	for i := 0; i < 2; i++ {
		if _, err := emb.BatchEmbed(context.Background(), []string{"caribbean cruise"}, usage); err != nil {
			t.Fatal(err)
		}
	}
	if usage.InputTokens != 20 {
		t.Errorf("expect 20 prompt tokens after two batches, got %d", usage.InputTokens)
	}
}

func TestEmbedAccumulatesUsage(t *testing.T) {
	emb := testEmbedder(t, 7)
	usage := new(components.LLMUsage)
	for i := 0; i < 3; i++ {
		var e embedder.Embedding
		if err := emb.Embed(context.Background(), "alaska expedition", &e, usage); err != nil {
			t.Fatal(err)
		}
	}
	if usage.InputTokens != 21 {
		t.Errorf("expect 21 prompt tokens after three calls, got %d", usage.InputTokens)
	}
}
