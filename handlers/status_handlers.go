package handlers

import (
	"log"

	"posinsights/posapi"

	"github.com/gofiber/fiber/v2"
)

// HandleGetExchangeRates returns the rates published by the POS backend.
// GET /api/v1/rates
func HandleGetExchangeRates(c *fiber.Ctx) error {
	rates, err := posapi.GetClient().FetchExchangeRates(c.Context())
	if err != nil {
		log.Printf("❌ [RATES] Failed to fetch exchange rates: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch exchange rates"})
	}
	return c.JSON(fiber.Map{"success": true, "data": rates})
}

// HandleGetLicenseStatus returns the shop's subscription state.
// GET /api/v1/license
func HandleGetLicenseStatus(c *fiber.Ctx) error {
	license, err := posapi.GetClient().FetchLicense(c.Context())
	if err != nil {
		log.Printf("❌ [LICENSE] Failed to fetch license status: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch license status"})
	}
	return c.JSON(fiber.Map{"success": true, "data": license})
}
