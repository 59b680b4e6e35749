package brain

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const groundedBody = `{
  "candidates": [{
    "content": {"parts": [{"text": "**12 Octubre 2023**\n"}, {"text": "Resumen X"}]},
    "finishReason": "STOP",
    "groundingMetadata": {
      "groundingChunks": [
        {"web": {"uri": "https://a.example/1", "title": "A"}},
        {"retrievedContext": {"uri": "ignored"}},
        {"web": {"uri": "https://a.example/1", "title": "A"}},
        {"web": {"uri": "https://b.example/2"}}
      ]
    }
  }],
  "modelVersion": "gemini-2.5-flash-001"
}`

func TestParseGeminiResponseGrounded(t *testing.T) {
	resp, err := parseGeminiResponse([]byte(groundedBody))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if resp.Content != "**12 Octubre 2023**\nResumen X" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Model != "gemini-2.5-flash-001" {
		t.Errorf("unexpected model %q", resp.Model)
	}
	// The parser reports raw citations; dedupe is the gateway's job.
	want := []Citation{
		{Title: "A", URI: "https://a.example/1"},
		{Title: "A", URI: "https://a.example/1"},
		{Title: "", URI: "https://b.example/2"},
	}
	if len(resp.Citations) != len(want) {
		t.Fatalf("expected %d citations, got %d: %+v", len(want), len(resp.Citations), resp.Citations)
	}
	for i := range want {
		if resp.Citations[i] != want[i] {
			t.Errorf("citation %d: expected %+v, got %+v", i, want[i], resp.Citations[i])
		}
	}
}

func TestParseGeminiResponseEmpty(t *testing.T) {
	resp, err := parseGeminiResponse([]byte(`{"candidates": []}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resp.Content != "" || len(resp.Citations) != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}
}

func TestParseGeminiResponseMalformed(t *testing.T) {
	if _, err := parseGeminiResponse([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestBuildGeminiBodyGroundingTool(t *testing.T) {
	cfg := GeminiConfig("k", "")

	with := buildGeminiBody(cfg, Request{UserPrompt: "hola", Grounding: true})
	if _, ok := with["tools"]; !ok {
		t.Error("grounded request should carry the google_search tool")
	}

	without := buildGeminiBody(cfg, Request{UserPrompt: "hola"})
	if _, ok := without["tools"]; ok {
		t.Error("ungrounded request should not carry tools")
	}
	if _, ok := without["generationConfig"]; ok {
		t.Error("zero MaxTokens should leave generationConfig unset")
	}
}

func TestBuildGeminiBodyMaxTokens(t *testing.T) {
	body := buildGeminiBody(GeminiConfig("k", ""), Request{UserPrompt: "hola", MaxTokens: 512})

	gen, ok := body["generationConfig"].(map[string]any)
	if !ok {
		t.Fatalf("expected generationConfig, got %+v", body)
	}
	if gen["maxOutputTokens"] != 512 {
		t.Errorf("expected maxOutputTokens 512, got %v", gen["maxOutputTokens"])
	}
}

func TestGeminiConfigDefaults(t *testing.T) {
	cfg := GeminiConfig("key", "")
	if cfg.Model != DefaultGeminiModel {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if !strings.HasSuffix(cfg.Endpoint, DefaultGeminiModel+":generateContent") {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
}

func TestGeminiProviderGenerate(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, groundedBody)
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "", WithEndpoint(srv.URL))
	resp, err := p.Generate(context.Background(), Request{UserPrompt: "Tecnología", Grounding: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
	if _, ok := gotBody["tools"]; !ok {
		t.Error("request body should include tools")
	}
	if resp.Content == "" || len(resp.Citations) != 3 {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.RawResponse == "" {
		t.Error("raw response should be kept")
	}
}

func TestGeminiProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "", WithEndpoint(srv.URL))
	_, err := p.Generate(context.Background(), Request{UserPrompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should mention status, got %v", err)
	}
}

func TestGeminiProviderNotConfigured(t *testing.T) {
	p := NewGeminiProvider("", "")
	if p.Available() {
		t.Fatal("provider without key should be unavailable")
	}
	if _, err := p.Generate(context.Background(), Request{UserPrompt: "x"}); err == nil {
		t.Error("expected error from unconfigured provider")
	}
}

func TestGeminiProviderContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewGeminiProvider("secret", "", WithEndpoint(srv.URL))
	if _, err := p.Generate(ctx, Request{UserPrompt: "x"}); err == nil {
		t.Error("expected error for canceled context")
	}
}
