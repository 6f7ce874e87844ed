package analysis

import (
	"sort"

	"posinsights/models"
)

// ProductComparison lists every supplier's price for one product.
type ProductComparison struct {
	ProductID        string                 `json:"productId"`
	ProductName      string                 `json:"productName"`
	Offers           []models.SupplierOffer `json:"offers"`
	CheapestSupplier string                 `json:"cheapestSupplier"`
	CheapestCost     float64                `json:"cheapestCost"`
	Spread           float64                `json:"spread"`
	CurrentCost      float64                `json:"currentCost"`
	PotentialSaving  float64                `json:"potentialSaving"`
}

// ComparePrices groups supplier offers by product and picks the cheapest
// source for each. CurrentCost comes from the catalog; PotentialSaving is
// how much per unit switching to the cheapest supplier would save (never
// negative).
func ComparePrices(suppliers []models.Supplier, products []models.Product) []ProductComparison {
	catalog := make(map[string]models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	grouped := make(map[string]*ProductComparison)
	order := make([]string, 0)

	for _, supplier := range suppliers {
		for _, offer := range supplier.Offers {
			if offer.ProductID == "" {
				continue
			}
			if offer.SupplierName == "" {
				offer.SupplierName = supplier.Name
			}
			if offer.SupplierID == "" {
				offer.SupplierID = supplier.ID
			}

			pc, ok := grouped[offer.ProductID]
			if !ok {
				name := offer.ProductName
				if p, found := catalog[offer.ProductID]; found && name == "" {
					name = p.Name
				}
				pc = &ProductComparison{
					ProductID:   offer.ProductID,
					ProductName: name,
				}
				if p, found := catalog[offer.ProductID]; found {
					pc.CurrentCost = p.CostPrice
				}
				grouped[offer.ProductID] = pc
				order = append(order, offer.ProductID)
			}
			pc.Offers = append(pc.Offers, offer)
		}
	}

	comparisons := make([]ProductComparison, 0, len(order))
	for _, id := range order {
		pc := grouped[id]
		sort.SliceStable(pc.Offers, func(i, j int) bool {
			return pc.Offers[i].UnitCost < pc.Offers[j].UnitCost
		})

		cheapest := pc.Offers[0]
		dearest := pc.Offers[len(pc.Offers)-1]
		pc.CheapestSupplier = cheapest.SupplierName
		pc.CheapestCost = cheapest.UnitCost
		pc.Spread = dearest.UnitCost - cheapest.UnitCost
		if pc.CurrentCost > cheapest.UnitCost {
			pc.PotentialSaving = pc.CurrentCost - cheapest.UnitCost
		}

		comparisons = append(comparisons, *pc)
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].PotentialSaving > comparisons[j].PotentialSaving
	})

	return comparisons
}
