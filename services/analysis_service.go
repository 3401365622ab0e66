package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"safebaby/utils"
)

// IngredientAnalysis is the structured output of the AI collaborator: a
// plain-language summary, flagged concerns, estimated heavy-metal levels in
// ppb and the derived safety score.
type IngredientAnalysis struct {
	Summary        string             `json:"summary"`
	Concerns       []string           `json:"concerns"`
	EstimatedMetals map[string]float64 `json:"estimated_metals_ppb"`
	SafetyScore    float64            `json:"safety_score"`
}

// IngredientAnalyzer infers a safety analysis from product metadata.
type IngredientAnalyzer interface {
	Analyze(p *ExternalProduct) (*IngredientAnalysis, error)
}

type AnalysisService struct {
	client *http.Client
	token  string
	model  string
}

func NewAnalysisService() *AnalysisService {
	model := os.Getenv("ANALYSIS_MODEL")
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}
	return &AnalysisService{
		client: &http.Client{Timeout: 20 * time.Second}, // cold models are slow
		token:  os.Getenv("HUGGINGFACE_TOKEN"),
		model:  model,
	}
}

// Analyze asks the hosted model for a JSON safety assessment of the product's
// ingredient list. AI-estimated levels are strictly lower trust than lab data;
// the waterfall only reaches here when no lab-tested row exists.
func (a *AnalysisService) Analyze(p *ExternalProduct) (*IngredientAnalysis, error) {
	if a.token == "" {
		return nil, fmt.Errorf("HUGGINGFACE_TOKEN not set")
	}

	var sb bytes.Buffer
	sb.WriteString("You assess baby food for heavy-metal contamination risk.\n")
	fmt.Fprintf(&sb, "Product: %s\nBrand: %s\nCategory: %s\n", p.Name, p.Brand, p.Category)
	if p.Ingredients != "" {
		fmt.Fprintf(&sb, "Ingredients: %s\n", p.Ingredients)
	} else {
		sb.WriteString("Ingredients: (not available)\n")
	}
	sb.WriteString("\nReturn a single JSON object with keys: summary (string), concerns (array of strings), estimated_metals_ppb (object with Lead, Arsenic, Cadmium, Mercury as numbers). No other text.")

	body := map[string]any{
		"inputs": sb.String(),
		"parameters": map[string]any{
			"max_new_tokens": 384,
			"temperature":    0.2,
		},
	}
	b, _ := json.Marshal(body)

	req, _ := http.NewRequest(
		"POST",
		fmt.Sprintf("https://api-inference.huggingface.co/models/%s", a.model),
		bytes.NewReader(b),
	)
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-wait-for-model", "true")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analysis response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("analysis api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("analysis api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		preview := string(respBytes)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("decode analysis response error: %v | body: %s", err, preview)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return nil, fmt.Errorf("empty analysis from model")
	}

	analysis, err := parseAnalysisJSON(out[0].GeneratedText)
	if err != nil {
		return nil, err
	}

	// The score is always computed locally so one formula governs both the
	// importer and the AI path.
	analysis.SafetyScore = utils.SafetyScore(analysis.EstimatedMetals, utils.DefaultLimits)
	return analysis, nil
}

// parseAnalysisJSON pulls the first JSON object out of the generated text;
// models wrap their answer in prose often enough that a plain Unmarshal fails.
func parseAnalysisJSON(text string) (*IngredientAnalysis, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var analysis IngredientAnalysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis JSON: %w", err)
	}
	if analysis.EstimatedMetals == nil {
		analysis.EstimatedMetals = map[string]float64{}
	}
	return &analysis, nil
}
