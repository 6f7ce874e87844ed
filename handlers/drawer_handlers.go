package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"posinsights/database"
	"posinsights/middleware"
	"posinsights/models"
	"posinsights/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// OpenDrawerInput is the body for opening a new till session.
type OpenDrawerInput struct {
	OpeningFloat float64 `json:"openingFloat"`
	Notes        *string `json:"notes,omitempty"`
}

// HandleOpenDrawer opens a new drawer session for the authenticated user.
// POST /api/v1/drawer/open
func HandleOpenDrawer(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	var input OpenDrawerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.OpeningFloat < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Opening float cannot be negative"})
	}

	db := database.GetDB()
	ctx := context.Background()

	// One open session per user at a time.
	var openCount int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM drawer_sessions WHERE user_id = $1 AND status = 'open'`, userID).Scan(&openCount); err != nil {
		log.Printf("Error checking open drawer sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to check open sessions"})
	}
	if openCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "A drawer session is already open for this user"})
	}

	var session models.DrawerSession
	query := `
		INSERT INTO drawer_sessions (user_id, opening_float, notes)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, status, opening_float, notes, opened_at
	`
	if err := db.QueryRow(ctx, query, userID, input.OpeningFloat, input.Notes).Scan(
		&session.ID, &session.UserID, &session.Status, &session.OpeningFloat, &session.Notes, &session.OpenedAt,
	); err != nil {
		log.Printf("Error opening drawer session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to open drawer session"})
	}

	log.Printf("💵 [DRAWER] Opened session %s for user %s with float %.2f", session.ID, userID, input.OpeningFloat)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": session})
}

// DrawerMovementInput is the body for a cash in/out.
type DrawerMovementInput struct {
	Direction string  `json:"direction"`
	Amount    float64 `json:"amount"`
	Reason    *string `json:"reason,omitempty"`
}

// HandleAddDrawerMovement records a cash in/out against an open session.
// POST /api/v1/drawer/:sessionId/movements
func HandleAddDrawerMovement(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var input DrawerMovementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.Direction != "in" && input.Direction != "out" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Direction must be 'in' or 'out'"})
	}
	if input.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Amount must be positive"})
	}

	db := database.GetDB()
	ctx := context.Background()

	// The open-status check and the insert must be one statement: a
	// concurrent close between them would orphan the movement on a closed
	// session and it would never be counted in the reconciliation.
	var movement models.DrawerMovement
	query := `
		INSERT INTO drawer_movements (session_id, direction, amount, reason)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM drawer_sessions WHERE id = $1 AND status = 'open')
		RETURNING id, session_id, direction, amount, reason, created_at
	`
	err := db.QueryRow(ctx, query, sessionID, input.Direction, input.Amount, input.Reason).Scan(
		&movement.ID, &movement.SessionID, &movement.Direction, &movement.Amount, &movement.Reason, &movement.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		var status string
		if err := db.QueryRow(ctx, `SELECT status FROM drawer_sessions WHERE id = $1`, sessionID).Scan(&status); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Drawer session not found"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Drawer session is already closed"})
	}
	if err != nil {
		log.Printf("Error recording drawer movement: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to record movement"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": movement})
}

// movementNet totals a session's cash movements: ins add, outs subtract.
func movementNet(movements []models.DrawerMovement) float64 {
	var net float64
	for _, m := range movements {
		if m.Direction == "out" {
			net -= m.Amount
		} else {
			net += m.Amount
		}
	}
	return net
}

// reconcileDrawer computes the close figures: expected cash is the opening
// float plus net movements; over/short is counted minus expected.
func reconcileDrawer(openingFloat, counted float64, movements []models.DrawerMovement) (expected, overShort float64) {
	expected = openingFloat + movementNet(movements)
	overShort = counted - expected
	return expected, overShort
}

// CloseDrawerInput is the body for closing a session.
type CloseDrawerInput struct {
	CountedAmount float64 `json:"countedAmount"`
	Notes         *string `json:"notes,omitempty"`
}

// HandleCloseDrawer closes a session: expected cash is the opening float plus
// all ins minus all outs; over/short is counted minus expected.
// POST /api/v1/drawer/:sessionId/close
func HandleCloseDrawer(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var input CloseDrawerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	db := database.GetDB()
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var openingFloat float64
	var status string
	if err := tx.QueryRow(ctx,
		`SELECT opening_float, status FROM drawer_sessions WHERE id = $1 FOR UPDATE`, sessionID).Scan(&openingFloat, &status); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Drawer session not found"})
	}
	if status != "open" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Drawer session is already closed"})
	}

	rows, err := tx.Query(ctx,
		`SELECT direction, amount FROM drawer_movements WHERE session_id = $1`, sessionID)
	if err != nil {
		log.Printf("Error loading drawer movements: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load movements"})
	}
	movements := make([]models.DrawerMovement, 0)
	for rows.Next() {
		var m models.DrawerMovement
		if err := rows.Scan(&m.Direction, &m.Amount); err != nil {
			rows.Close()
			log.Printf("Error scanning drawer movement: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load movements"})
		}
		movements = append(movements, m)
	}
	rows.Close()

	expected, overShort := reconcileDrawer(openingFloat, input.CountedAmount, movements)

	var session models.DrawerSession
	query := `
		UPDATE drawer_sessions
		SET status = 'closed', expected_amount = $2, counted_amount = $3, over_short = $4,
		    notes = COALESCE($5, notes), closed_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, status, opening_float, expected_amount, counted_amount, over_short, notes, opened_at, closed_at
	`
	if err := tx.QueryRow(ctx, query, sessionID, expected, input.CountedAmount, overShort, input.Notes).Scan(
		&session.ID, &session.UserID, &session.Status, &session.OpeningFloat,
		&session.ExpectedAmount, &session.CountedAmount, &session.OverShort,
		&session.Notes, &session.OpenedAt, &session.ClosedAt,
	); err != nil {
		log.Printf("Error closing drawer session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to close drawer session"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	log.Printf("💵 [DRAWER] Closed session %s: expected %.2f, counted %.2f, over/short %.2f",
		session.ID, expected, input.CountedAmount, overShort)
	return c.JSON(fiber.Map{"status": "success", "data": session})
}

// HandleListDrawerSessions lists the authenticated user's sessions, newest first.
// GET /api/v1/drawer/sessions
func HandleListDrawerSessions(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = utils.DefaultPage
	}
	if pageSize < 1 {
		pageSize = utils.DefaultPageSize
	}
	offset := (page - 1) * pageSize

	db := database.GetDB()
	ctx := context.Background()

	rows, err := db.Query(ctx, `
		SELECT id, user_id, status, opening_float, expected_amount, counted_amount, over_short, notes, opened_at, closed_at
		FROM drawer_sessions
		WHERE user_id = $1
		ORDER BY opened_at DESC
		LIMIT $2 OFFSET $3
	`, userID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing drawer sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list drawer sessions"})
	}
	defer rows.Close()

	sessions := make([]models.DrawerSession, 0)
	for rows.Next() {
		var s models.DrawerSession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Status, &s.OpeningFloat,
			&s.ExpectedAmount, &s.CountedAmount, &s.OverShort,
			&s.Notes, &s.OpenedAt, &s.ClosedAt,
		); err != nil {
			log.Printf("Error scanning drawer session: %v", err)
			continue
		}
		sessions = append(sessions, s)
	}

	var totalItems int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM drawer_sessions WHERE user_id = $1`, userID).Scan(&totalItems); err != nil {
		log.Printf("Error counting drawer sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count drawer sessions"})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"sessions":   sessions,
			"pagination": utils.CreatePagination(totalItems, page, pageSize),
		},
	})
}
