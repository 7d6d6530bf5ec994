package split

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/receiptbot/bill-splitter/internal/common"
	"github.com/receiptbot/bill-splitter/internal/entity"
)

// TolerancePerPerson is the permitted deviation between the summed rounded
// per-person totals and the receipt's stated total, scaled by participant
// count. Small deviations are expected from extraction noise and rounding.
const TolerancePerPerson = 0.01

// Calculate distributes assigned item costs, the shared pool, service charge,
// and tax across participants. Shared items split equally; service charge is
// apportioned by each person's share of the distribution base (all item
// costs); tax is apportioned on items plus service, matching real receipts.
// When a base is zero the charge falls back to an equal 1/n split. Results
// are rounded to cents and sorted by person name.
func Calculate(
	assignments []entity.Assignment,
	sharedItems []entity.ReceiptItem,
	participants []string,
	totalAmount, serviceCharge, taxAmount float64,
	logger *slog.Logger,
) ([]entity.BillSplitResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	people := uniqueSorted(participants)
	if len(people) == 0 && len(sharedItems) > 0 {
		return nil, common.NewCalculationError("shared items exist but no participants to split amongst")
	}
	if len(people) == 0 && len(assignments) > 0 {
		for _, a := range assignments {
			people = append(people, a.Person)
		}
		people = uniqueSorted(people)
		logger.Warn("split.calculate.participants_inferred", "participants", people)
	}
	if len(people) == 0 {
		return nil, common.NewCalculationError("no participants to split the bill")
	}

	n := float64(len(people))
	subtotals := make(map[string]float64, len(people))
	summaries := make(map[string][]string, len(people))
	for _, p := range people {
		subtotals[p] = 0
	}

	// 1. Direct costs from uniquely assigned items.
	distributionBase := 0.0
	for _, a := range assignments {
		for _, it := range a.Items {
			subtotals[a.Person] += it.TotalPrice
			distributionBase += it.TotalPrice
			summaries[a.Person] = append(summaries[a.Person], fmt.Sprintf("%s ($%.2f)", it.Name, it.TotalPrice))
		}
	}

	// 2. Shared items split equally across every participant.
	sharedTotal := 0.0
	for _, it := range sharedItems {
		sharedTotal += it.TotalPrice
	}
	distributionBase += sharedTotal
	if sharedTotal > 0 {
		perPerson := sharedTotal / n
		for _, p := range people {
			subtotals[p] += perPerson
			summaries[p] = append(summaries[p], fmt.Sprintf("Shared Items ($%.2f each)", perPerson))
		}
	}

	// 3. Service charge, proportional to each person's share of the
	// distribution base.
	afterService := make(map[string]float64, len(people))
	if serviceCharge > 0 {
		for _, p := range people {
			share := serviceCharge / n
			if distributionBase > 0 {
				share = subtotals[p] / distributionBase * serviceCharge
			}
			afterService[p] = subtotals[p] + share
			summaries[p] = append(summaries[p], fmt.Sprintf("Service Charge Share ($%.2f)", share))
		}
	} else {
		for _, p := range people {
			afterService[p] = subtotals[p]
		}
	}

	// 4. Tax, levied on items plus service.
	taxBase := distributionBase + serviceCharge
	afterTax := make(map[string]float64, len(people))
	if taxAmount > 0 {
		for _, p := range people {
			share := taxAmount / n
			if taxBase > 0 {
				share = afterService[p] / taxBase * taxAmount
			}
			afterTax[p] = afterService[p] + share
			summaries[p] = append(summaries[p], fmt.Sprintf("Tax Share ($%.2f)", share))
		}
	} else {
		for _, p := range people {
			afterTax[p] = afterService[p]
		}
	}

	// 5–7. Round, reconcile against the stated total, emit in name order.
	results := make([]entity.BillSplitResult, 0, len(people))
	calculatedTotal := 0.0
	for _, p := range people {
		owes := round2(afterTax[p])
		calculatedTotal += owes
		results = append(results, entity.BillSplitResult{
			Person: p,
			Owes:   owes,
			Items:  summaries[p],
		})
	}

	tolerance := TolerancePerPerson * n
	if math.Abs(calculatedTotal-totalAmount) > tolerance {
		logger.Warn("split.calculate.total_mismatch",
			"calculated_total", fmt.Sprintf("%.2f", calculatedTotal),
			"receipt_total", fmt.Sprintf("%.2f", totalAmount),
			"tolerance", fmt.Sprintf("%.2f", tolerance),
		)
	}

	return results, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func uniqueSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
