package brain

import (
	"encoding/json"
	"strings"

	"github.com/abelbrown/briefing/internal/logging"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/"

// GeminiConfig returns the provider config for Google's Gemini API.
func GeminiConfig(apiKey, model string) *ProviderConfig {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &ProviderConfig{
		Name:     "gemini",
		Endpoint: geminiBaseURL + model + ":generateContent",
		APIKey:   apiKey,
		Model:    model,
		// Header auth keeps the key out of URLs and logs.
		AuthHeader:    "x-goog-api-key",
		BuildBody:     buildGeminiBody,
		ParseResponse: parseGeminiResponse,
	}
}

// NewGeminiProvider creates a Gemini-backed HTTPProvider.
func NewGeminiProvider(apiKey, model string, opts ...Option) *HTTPProvider {
	return NewHTTPProvider(GeminiConfig(apiKey, model), opts...)
}

func buildGeminiBody(cfg *ProviderConfig, req Request) map[string]any {
	body := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": req.UserPrompt}}},
		},
	}

	if req.MaxTokens > 0 {
		body["generationConfig"] = map[string]any{"maxOutputTokens": req.MaxTokens}
	}

	// Structured output modes are rejected by the API when search is on,
	// so grounded requests stay plain text.
	if req.Grounding {
		body["tools"] = []map[string]any{{"google_search": map[string]any{}}}
	}

	return body
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason      string `json:"finishReason"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

func parseGeminiResponse(body []byte) (Response, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Response{}, err
	}

	out := Response{Model: resp.ModelVersion}
	if len(resp.Candidates) == 0 {
		return out, nil
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}
	out.Content = text.String()

	if cand.FinishReason == "MAX_TOKENS" {
		logging.Warn("Gemini response truncated due to max tokens", "content_length", len(out.Content))
	}

	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			out.Citations = append(out.Citations, Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}

	return out, nil
}
