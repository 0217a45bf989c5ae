// Package procurement regroups a batch requirements analysis into a
// per-supplier purchasing view.
package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// Service builds supplier-grouped procurement summaries
type Service struct{}

// New creates a procurement service
func New() *Service {
	return &Service{}
}

// Summarize regroups the requirement ledgers of an analysis by
// supplier. Suppliers appear in order of their first requirement item;
// within a supplier the ledger order is preserved.
func (s *Service) Summarize(analysis *dto.BatchRequirementsAnalysis) *dto.ProcurementSummary {
	var order []string
	groups := make(map[string]*entities.SupplierRequirement)

	group := func(item entities.RequirementItem) *entities.SupplierRequirement {
		if g, ok := groups[item.SupplierID]; ok {
			return g
		}
		g := &entities.SupplierRequirement{
			SupplierID:   item.SupplierID,
			SupplierName: item.SupplierName,
			TotalCost:    decimal.Zero,
		}
		groups[item.SupplierID] = g
		order = append(order, item.SupplierID)
		return g
	}

	for _, item := range analysis.Materials {
		g := group(item)
		g.Materials = append(g.Materials, item)
		g.TotalCost = g.TotalCost.Add(item.TotalCost)
	}
	for _, item := range analysis.Packaging {
		g := group(item)
		g.Packaging = append(g.Packaging, item)
		g.TotalCost = g.TotalCost.Add(item.TotalCost)
	}
	for _, item := range analysis.Labels {
		g := group(item)
		g.Labels = append(g.Labels, item)
		g.TotalCost = g.TotalCost.Add(item.TotalCost)
	}

	summary := &dto.ProcurementSummary{
		BatchID:       analysis.BatchID,
		TotalCost:     analysis.TotalCost,
		CriticalCount: len(analysis.CriticalShortages),
	}
	for _, supplierID := range order {
		summary.Suppliers = append(summary.Suppliers, *groups[supplierID])
	}
	return summary
}
