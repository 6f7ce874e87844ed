package analysis

import (
	"sort"

	"posinsights/models"
)

// ProductProfit is the margin breakdown for one product.
type ProductProfit struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Category     string  `json:"category"`
	QuantitySold float64 `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	GrossProfit  float64 `json:"grossProfit"`
	MarginPct    float64 `json:"marginPct"`
}

// ProfitReport is the portfolio-level margin view.
type ProfitReport struct {
	Products      []ProductProfit `json:"products"`
	TotalRevenue  float64         `json:"totalRevenue"`
	TotalCost     float64         `json:"totalCost"`
	TotalProfit   float64         `json:"totalProfit"`
	OverallMargin float64         `json:"overallMargin"`
}

// BuildProfitReport crosses the sales ledger with catalog cost prices.
// Products missing from the catalog keep a zero cost, which overstate their
// margin rather than failing the report.
func BuildProfitReport(sales []models.SaleRecord, products []models.Product) ProfitReport {
	costs := make(map[string]models.Product, len(products))
	for _, p := range products {
		costs[p.ID] = p
	}

	perProduct := make(map[string]*ProductProfit)
	order := make([]string, 0)

	for _, sale := range sales {
		for _, item := range sale.Items {
			if item.ProductID == "" {
				continue
			}
			pp, ok := perProduct[item.ProductID]
			if !ok {
				name := item.ProductName
				if name == "" {
					name = "Unknown Product"
				}
				pp = &ProductProfit{
					ProductID:   item.ProductID,
					ProductName: name,
					Category:    item.Category,
				}
				perProduct[item.ProductID] = pp
				order = append(order, item.ProductID)
			}

			pp.QuantitySold += item.Quantity
			pp.Revenue += item.Quantity * item.UnitPrice
			if p, ok := costs[item.ProductID]; ok {
				pp.Cost += item.Quantity * p.CostPrice
				if pp.Category == "" {
					pp.Category = p.Category
				}
			}
		}
	}

	report := ProfitReport{Products: make([]ProductProfit, 0, len(order))}
	for _, id := range order {
		pp := perProduct[id]
		pp.GrossProfit = pp.Revenue - pp.Cost
		if pp.Revenue != 0 {
			pp.MarginPct = pp.GrossProfit / pp.Revenue * 100
		}
		report.TotalRevenue += pp.Revenue
		report.TotalCost += pp.Cost
		report.Products = append(report.Products, *pp)
	}

	report.TotalProfit = report.TotalRevenue - report.TotalCost
	if report.TotalRevenue != 0 {
		report.OverallMargin = report.TotalProfit / report.TotalRevenue * 100
	}

	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].GrossProfit > report.Products[j].GrossProfit
	})

	return report
}
