// Package output renders costing and batch analysis results as text
// or JSON reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// Format selects the rendering of a report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Report bundles everything one CLI run produced. Nil sections are
// skipped.
type Report struct {
	Recipe       *dto.RecipeDetail              `json:"recipe,omitempty"`
	Variants     []dto.RecipeVariantWithMetrics `json:"variants,omitempty"`
	Requirements *dto.BatchRequirementsAnalysis `json:"requirements,omitempty"`
	Costs        *dto.BatchCostAnalysis         `json:"costs,omitempty"`
	Procurement  *dto.ProcurementSummary        `json:"procurement,omitempty"`
}

// Write renders the report in the requested format
func Write(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatText, "":
		writeText(w, report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, report *Report) {
	if report.Recipe != nil {
		writeRecipe(w, report.Recipe)
	}
	for i := range report.Variants {
		v := &report.Variants[i]
		fmt.Fprintf(w, "\nVariant: %s (%s)\n", v.Name, v.VariantID)
		fmt.Fprintf(w, "  Savings: %s/kg (%s%%)\n", v.SavingsPerKg, v.SavingsPercent.StringFixed(2))
		writeRecipe(w, &v.Detail)
	}
	if report.Requirements != nil {
		writeRequirements(w, report.Requirements)
	}
	if report.Costs != nil {
		writeCosts(w, report.Costs)
	}
	if report.Procurement != nil {
		writeProcurement(w, report.Procurement)
	}
}

func writeRecipe(w io.Writer, detail *dto.RecipeDetail) {
	fmt.Fprintf(w, "Recipe: %s (%s) [%s]\n", detail.Name, detail.RecipeID, detail.Status)
	fmt.Fprintf(w, "%-24s %-20s %10s %6s %12s %8s\n", "Material", "Supplier", "Qty (kg)", "Unit", "Taxed Cost", "Share %")
	fmt.Fprintln(w, strings.Repeat("-", 86))
	for _, ing := range detail.Ingredients {
		lock := ""
		if ing.PriceLocked {
			lock = " [locked]"
		}
		fmt.Fprintf(w, "%-24s %-20s %10s %6s %12s %8s%s\n",
			ing.MaterialName, ing.SupplierName, ing.QuantityKg.StringFixed(3), ing.Unit,
			ing.TaxedCost.StringFixed(2), ing.PriceSharePercent.StringFixed(1), lock)
	}
	fmt.Fprintln(w, strings.Repeat("-", 86))
	fmt.Fprintf(w, "Total weight: %s kg\n", detail.TotalWeightKg.StringFixed(3))
	fmt.Fprintf(w, "Total cost:   %s (taxed %s)\n", detail.TotalCost.StringFixed(2), detail.TaxedTotalCost.StringFixed(2))
	fmt.Fprintf(w, "Cost per kg:  %s (taxed %s)\n", detail.CostPerKg.StringFixed(2), detail.TaxedCostPerKg.StringFixed(2))
	if detail.TargetCostPerKg != nil && detail.VarianceFromTarget != nil {
		direction := "below"
		if detail.IsAboveTarget {
			direction = "above"
		}
		fmt.Fprintf(w, "Target:       %s/kg (%s %s by %s)\n",
			detail.TargetCostPerKg.StringFixed(2), direction, "target", detail.VarianceFromTarget.Abs().StringFixed(2))
	}
	writeWarnings(w, detail.Warnings)
}

func writeRequirements(w io.Writer, analysis *dto.BatchRequirementsAnalysis) {
	fmt.Fprintf(w, "\nBatch requirements: %s\n", analysis.BatchID)
	writeLedger(w, "Materials", analysis.Materials)
	writeLedger(w, "Packaging", analysis.Packaging)
	writeLedger(w, "Labels", analysis.Labels)

	fmt.Fprintf(w, "\nMaterial cost:  %s\n", analysis.TotalMaterialCost.StringFixed(2))
	fmt.Fprintf(w, "Packaging cost: %s\n", analysis.TotalPackagingCost.StringFixed(2))
	fmt.Fprintf(w, "Label cost:     %s\n", analysis.TotalLabelCost.StringFixed(2))
	fmt.Fprintf(w, "Total cost:     %s\n", analysis.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "Items to order: %d\n", analysis.TotalItemsToOrder)

	if len(analysis.CriticalShortages) > 0 {
		fmt.Fprintf(w, "\nCritical shortages (%d):\n", len(analysis.CriticalShortages))
		for _, item := range analysis.CriticalShortages {
			fmt.Fprintf(w, "  %-24s %-20s short %s %s\n",
				item.ItemName, item.SupplierName, item.Shortage.StringFixed(3), item.Unit)
		}
	}
	writeWarnings(w, analysis.Warnings)
}

func writeLedger(w io.Writer, title string, items []entities.RequirementItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintf(w, "  %-24s %-20s %10s %10s %10s %12s\n", "Item", "Supplier", "Required", "On hand", "Shortage", "Cost")
	for _, item := range items {
		moq := ""
		if item.BelowMOQ {
			moq = " [below MOQ]"
		}
		fmt.Fprintf(w, "  %-24s %-20s %10s %10s %10s %12s%s\n",
			item.ItemName, item.SupplierName,
			item.Required.StringFixed(3), item.Available.StringFixed(3),
			item.Shortage.StringFixed(3), item.TotalCost.StringFixed(2), moq)
	}
}

func writeCosts(w io.Writer, analysis *dto.BatchCostAnalysis) {
	fmt.Fprintf(w, "\nBatch costs: %s\n", analysis.BatchID)
	fmt.Fprintf(w, "  %-24s %-12s %10s %12s %12s %12s %12s\n",
		"Product", "Variant", "Units", "Recipe", "Packaging", "Labels", "Total")
	for _, item := range analysis.Items {
		fmt.Fprintf(w, "  %-24s %-12s %10s %12s %12s %12s %12s\n",
			item.ProductName, item.VariantName, item.Units.StringFixed(0),
			item.RecipeCost.StringFixed(2), item.PackagingCost.StringFixed(2),
			item.LabelCost.StringFixed(2), item.TotalCost.StringFixed(2))
	}
	fmt.Fprintf(w, "  Total: %s\n", analysis.TotalCost.StringFixed(2))
	writeWarnings(w, analysis.Warnings)
}

func writeProcurement(w io.Writer, summary *dto.ProcurementSummary) {
	fmt.Fprintf(w, "\nProcurement by supplier (%d critical shortages):\n", summary.CriticalCount)
	for _, supplier := range summary.Suppliers {
		fmt.Fprintf(w, "\n  %s (%s): %s\n", supplier.SupplierName, supplier.SupplierID, supplier.TotalCost.StringFixed(2))
		writeSupplierBucket(w, "materials", supplier.Materials)
		writeSupplierBucket(w, "packaging", supplier.Packaging)
		writeSupplierBucket(w, "labels", supplier.Labels)
	}
	fmt.Fprintf(w, "\nGrand total: %s\n", summary.TotalCost.StringFixed(2))
}

func writeSupplierBucket(w io.Writer, title string, items []entities.RequirementItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "    %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "      %-24s order %10s %-4s  %12s\n",
			item.ItemName, item.Required.StringFixed(3), item.Unit, item.TotalCost.StringFixed(2))
	}
}

func writeWarnings(w io.Writer, warnings []dto.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWarnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  [%s] %s\n", warning.Code, warning.Detail)
	}
}
