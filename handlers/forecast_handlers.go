package handlers

import (
	"context"
	"encoding/json"
	"log"

	"posinsights/database"
	"posinsights/forecast"
	"posinsights/models"
	"posinsights/posapi"

	"github.com/gofiber/fiber/v2"
)

// buildForecastReport fetches the ledger and catalog and runs the pipeline.
// Every request recomputes from scratch; there is no cached partial state.
func buildForecastReport(ctx context.Context, horizon int, method forecast.Method) (forecast.Report, error) {
	client := posapi.GetClient()

	sales, err := client.FetchSales(ctx)
	if err != nil {
		return forecast.Report{}, err
	}
	products, err := client.FetchProducts(ctx)
	if err != nil {
		return forecast.Report{}, err
	}

	return forecast.BuildReport(sales, products, horizon, method), nil
}

// HandleGetForecastReport runs a demand forecast over the shop's sales history.
// GET /api/v1/insights/forecast?horizon=3&method=moving_average
func HandleGetForecastReport(c *fiber.Ctx) error {
	horizon := c.QueryInt("horizon", 3)
	if horizon < 1 || horizon > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "horizon must be between 1 and 24 months"})
	}

	method, err := forecast.ParseMethod(c.Query("method"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	report, err := buildForecastReport(c.Context(), horizon, method)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to build report: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}

	log.Printf("📊 [FORECAST] Built report: %d products, method=%s, horizon=%d",
		report.Summary.TotalProducts, method, horizon)

	return c.JSON(fiber.Map{"success": true, "data": report})
}

// HandleSaveForecastSnapshot runs a forecast and persists the result.
// POST /api/v1/insights/forecast/snapshots
func HandleSaveForecastSnapshot(c *fiber.Ctx) error {
	horizon := c.QueryInt("horizon", 3)
	if horizon < 1 || horizon > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "horizon must be between 1 and 24 months"})
	}

	method, err := forecast.ParseMethod(c.Query("method"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	report, err := buildForecastReport(c.Context(), horizon, method)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to build report for snapshot: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch data from POS backend"})
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to serialize report"})
	}

	var snapshot models.ForecastSnapshotInfo
	query := `
		INSERT INTO forecast_snapshots (method, horizon, payload)
		VALUES ($1, $2, $3)
		RETURNING id, method, horizon, generated_at
	`
	err = database.GetDB().QueryRow(context.Background(), query, string(method), horizon, payload).Scan(
		&snapshot.ID, &snapshot.Method, &snapshot.Horizon, &snapshot.GeneratedAt,
	)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to save snapshot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save snapshot"})
	}

	log.Printf("✅ [FORECAST] Saved snapshot %s (method=%s, horizon=%d)", snapshot.ID, method, horizon)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": snapshot})
}

// HandleListForecastSnapshots lists saved report runs, newest first.
// GET /api/v1/insights/forecast/snapshots
func HandleListForecastSnapshots(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(context.Background(), `
		SELECT id, method, horizon, generated_at
		FROM forecast_snapshots
		ORDER BY generated_at DESC
		LIMIT 50
	`)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to list snapshots: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list snapshots"})
	}
	defer rows.Close()

	snapshots := make([]models.ForecastSnapshotInfo, 0)
	for rows.Next() {
		var s models.ForecastSnapshotInfo
		if err := rows.Scan(&s.ID, &s.Method, &s.Horizon, &s.GeneratedAt); err != nil {
			log.Printf("⚠️  [FORECAST] Failed to scan snapshot: %v", err)
			continue
		}
		snapshots = append(snapshots, s)
	}

	return c.JSON(fiber.Map{"success": true, "data": snapshots})
}

// HandleGetForecastSnapshot returns one stored report payload.
// GET /api/v1/insights/forecast/snapshots/:snapshotId
func HandleGetForecastSnapshot(c *fiber.Ctx) error {
	snapshotID := c.Params("snapshotId")

	var payload []byte
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT payload FROM forecast_snapshots WHERE id = $1`, snapshotID).Scan(&payload)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Snapshot not found"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(`{"success": true, "data": ` + string(payload) + `}`)
}
