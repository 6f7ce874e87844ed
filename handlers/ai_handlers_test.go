package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHandleForecastNarrativeRejectsBadHorizon(t *testing.T) {
	app := fiber.New()
	app.Post("/api/v1/insights/forecast/narrative", HandleForecastNarrative)

	for _, body := range []string{
		`{"horizon":25}`,
		`{"horizon":-1}`,
	} {
		req := httptest.NewRequest("POST", "/api/v1/insights/forecast/narrative", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestHandleForecastNarrativeRejectsUnknownMethod(t *testing.T) {
	app := fiber.New()
	app.Post("/api/v1/insights/forecast/narrative", HandleForecastNarrative)

	req := httptest.NewRequest("POST", "/api/v1/insights/forecast/narrative",
		strings.NewReader(`{"horizon":3,"method":"crystal_ball"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
