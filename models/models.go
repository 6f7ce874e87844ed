package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest defines the body for creating a new user.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// User represents a user of this service (owner or cashier).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Upstream POS data (normalized at the posapi boundary) ---

// SaleLineItem is a single line of a sale as recorded by the POS ledger.
// Quantity and UnitPrice are already coerced: bad upstream values arrive as 0.
type SaleLineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// SaleRecord is one transaction fetched from the POS API.
type SaleRecord struct {
	ID       string         `json:"id"`
	SaleDate time.Time      `json:"sale_date"`
	Items    []SaleLineItem `json:"items"`
}

// Product is a catalog entry from the POS API.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	SellingPrice float64 `json:"selling_price"`
	CostPrice    float64 `json:"cost_price"`
}

// Supplier with its current price list, from the POS API.
type Supplier struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Phone  *string         `json:"phone,omitempty"`
	Email  *string         `json:"email,omitempty"`
	Offers []SupplierOffer `json:"offers,omitempty"`
}

// SupplierOffer is one supplier's unit cost for one product.
type SupplierOffer struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	UnitCost     float64 `json:"unit_cost"`
}

// ExchangeRate as published by the POS API.
type ExchangeRate struct {
	BaseCurrency  string    `json:"base_currency"`
	QuoteCurrency string    `json:"quote_currency"`
	Rate          float64   `json:"rate"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LicenseStatus describes the shop's subscription with the POS provider.
type LicenseStatus struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	Seats     int        `json:"seats"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// StockTakeLine is one counted product during a stock take.
type StockTakeLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Expected    float64 `json:"expected"`
	Counted     float64 `json:"counted"`
	UnitCost    float64 `json:"unit_cost"`
}

// StockTake is a full count session fetched from the POS API.
type StockTake struct {
	ID        string          `json:"id"`
	TakenAt   time.Time       `json:"taken_at"`
	Lines     []StockTakeLine `json:"lines"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// --- Drawer / cash management ---

// DrawerSession tracks cash in a till between opening and closing.
type DrawerSession struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Status         string     `json:"status"`
	OpeningFloat   float64    `json:"opening_float"`
	ExpectedAmount *float64   `json:"expected_amount,omitempty"`
	CountedAmount  *float64   `json:"counted_amount,omitempty"`
	OverShort      *float64   `json:"over_short,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

// DrawerMovement is a single cash in/out against an open session.
type DrawerMovement struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Direction string    `json:"direction"`
	Amount    float64   `json:"amount"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Forecast snapshots ---

// ForecastSnapshotInfo describes a persisted forecast report run.
type ForecastSnapshotInfo struct {
	ID          string    `json:"id"`
	Method      string    `json:"method"`
	Horizon     int       `json:"horizon"`
	GeneratedAt time.Time `json:"generated_at"`
}

// --- AI ---

// NarrativeRequest asks for an AI reading of the current forecast report.
type NarrativeRequest struct {
	Horizon int    `json:"horizon"`
	Method  string `json:"method"`
}

// NarrativeAnalysis is the structured answer parsed out of the model response.
type NarrativeAnalysis struct {
	Summary       string   `json:"summary"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
}
