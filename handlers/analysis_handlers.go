package handlers

import (
	"log"
	"time"

	"posinsights/analysis"
	"posinsights/models"
	"posinsights/posapi"

	"github.com/gofiber/fiber/v2"
)

// parseDate tries the formats the mobile clients send.
func parseDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// HandleGetProfitReport crosses sales with catalog costs over a date range.
// GET /api/v1/insights/profit?startDate=...&endDate=...
func HandleGetProfitReport(c *fiber.Ctx) error {
	startDateStr := c.Query("startDate", time.Now().AddDate(0, -1, 0).Format(time.RFC3339))
	endDateStr := c.Query("endDate", time.Now().Format(time.RFC3339))

	startDate, err := parseDate(startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid startDate format"})
	}
	endDate, err := parseDate(endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid endDate format"})
	}

	client := posapi.GetClient()
	sales, err := client.FetchSales(c.Context())
	if err != nil {
		log.Printf("❌ [PROFIT] Failed to fetch sales: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}
	products, err := client.FetchProducts(c.Context())
	if err != nil {
		log.Printf("❌ [PROFIT] Failed to fetch products: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}

	filtered := make([]models.SaleRecord, 0, len(sales))
	for _, sale := range sales {
		if sale.SaleDate.Before(startDate) || sale.SaleDate.After(endDate) {
			continue
		}
		filtered = append(filtered, sale)
	}

	report := analysis.BuildProfitReport(filtered, products)
	log.Printf("📊 [PROFIT] %d products, revenue %.2f", len(report.Products), report.TotalRevenue)

	return c.JSON(fiber.Map{"success": true, "data": report})
}

// StockTakeVarianceInput is the counted lines submitted by the owner screen.
type StockTakeVarianceInput struct {
	Lines []models.StockTakeLine `json:"lines"`
}

// HandleStockTakeVariance computes counted-vs-expected variance for a count.
// POST /api/v1/insights/stock-take/variance
func HandleStockTakeVariance(c *fiber.Ctx) error {
	var input StockTakeVarianceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	report := analysis.BuildStockTakeReport(input.Lines)
	return c.JSON(fiber.Map{"success": true, "data": report})
}

// HandleListStockTakes returns past counting sessions from the POS backend.
// GET /api/v1/insights/stock-takes
func HandleListStockTakes(c *fiber.Ctx) error {
	takes, err := posapi.GetClient().FetchStockTakes(c.Context())
	if err != nil {
		log.Printf("❌ [STOCK TAKE] Failed to fetch stock takes: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}
	return c.JSON(fiber.Map{"success": true, "data": takes})
}

// HandleGetPriceComparison compares supplier offers against catalog costs.
// GET /api/v1/insights/price-comparison
func HandleGetPriceComparison(c *fiber.Ctx) error {
	client := posapi.GetClient()

	suppliers, err := client.FetchSuppliers(c.Context())
	if err != nil {
		log.Printf("❌ [PRICE COMPARISON] Failed to fetch suppliers: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}
	products, err := client.FetchProducts(c.Context())
	if err != nil {
		log.Printf("❌ [PRICE COMPARISON] Failed to fetch products: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}

	comparisons := analysis.ComparePrices(suppliers, products)
	return c.JSON(fiber.Map{"success": true, "data": comparisons})
}

// HandleListSuppliers proxies the supplier directory for the management screens.
// GET /api/v1/suppliers
func HandleListSuppliers(c *fiber.Ctx) error {
	suppliers, err := posapi.GetClient().FetchSuppliers(c.Context())
	if err != nil {
		log.Printf("❌ [SUPPLIERS] Failed to fetch suppliers: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}
	return c.JSON(fiber.Map{"success": true, "data": suppliers})
}
