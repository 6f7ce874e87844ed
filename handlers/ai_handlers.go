package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"posinsights/config"
	"posinsights/forecast"
	"posinsights/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleForecastNarrative builds a fresh forecast report and asks Gemini for
// a human-readable reading of it.
// POST /api/v1/insights/forecast/narrative
func HandleForecastNarrative(c *fiber.Ctx) error {
	var req models.NarrativeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request"})
	}
	if req.Horizon == 0 {
		req.Horizon = 3
	}
	if req.Horizon < 1 || req.Horizon > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "horizon must be between 1 and 24 months"})
	}

	method, err := forecast.ParseMethod(req.Method)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	report, err := buildForecastReport(c.Context(), req.Horizon, method)
	if err != nil {
		log.Printf("❌ [AI] Failed to build report for narrative: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}

	analysis, err := generateNarrative(c.Context(), report)
	if err != nil {
		log.Printf("❌ [AI] Narrative generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": analysis})
}

// generateNarrative prompts Gemini with the report and parses the JSON answer.
func generateNarrative(ctx context.Context, report forecast.Report) (*models.NarrativeAnalysis, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(constructNarrativePrompt(report)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate narrative: %w", err)
	}

	return parseNarrativeResponse(resp)
}

// constructNarrativePrompt flattens the report into a prompt. Only the top
// results go in to keep the context small.
func constructNarrativePrompt(report forecast.Report) string {
	topResults := report.Results
	if len(topResults) > 15 {
		topResults = topResults[:15]
	}
	resultsJSON, _ := json.Marshal(topResults)
	summaryJSON, _ := json.Marshal(report.Summary)

	jsonFormat := `{"summary":"string","opportunities":["string",...],"risks":["string",...]}`

	return fmt.Sprintf(`
        You are an expert retail data analyst advising a small shop owner.
        Below is a demand forecast report (method: %s, horizon: %d months).

        Portfolio summary: %s

        Top products by forecast quantity: %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, report.Method, report.Horizon, summaryJSON, resultsJSON, jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseNarrativeResponse pulls the JSON object out of the model's answer.
func parseNarrativeResponse(resp *genai.GenerateContentResponse) (*models.NarrativeAnalysis, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content received from AI")
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from AI response: %s", text)
		return nil, fmt.Errorf("failed to parse AI response format")
	}

	var analysis models.NarrativeAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		log.Printf("Error parsing AI JSON: %v\nRaw JSON: %s", err, jsonStr)
		return nil, fmt.Errorf("failed to parse AI analysis data")
	}

	return &analysis, nil
}
