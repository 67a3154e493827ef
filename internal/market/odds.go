package market

import (
	"fmt"

	"dashboard-service/internal/user"
)

// Odds are the derived pool figures for one market.
type Odds struct {
	TotalPool     string
	YesPercentage string
	NoPercentage  string
}

// ComputeOdds derives pool totals and side percentages from a market's
// predictions. Each percentage is computed from its own side's sum, so the
// two need not add up to exactly 100 after rounding. An empty pool reads as
// an even 50.00/50.00 split.
func ComputeOdds(predictions []*Prediction) Odds {
	var total, yes, no float64
	for _, p := range predictions {
		amount, err := user.ParseAmount(p.Amount)
		if err != nil {
			continue
		}
		total += amount
		if p.Prediction {
			yes += amount
		} else {
			no += amount
		}
	}

	if total == 0 {
		return Odds{
			TotalPool:     "0",
			YesPercentage: "50.00",
			NoPercentage:  "50.00",
		}
	}

	return Odds{
		TotalPool:     user.FormatAmount(total),
		YesPercentage: fmt.Sprintf("%.2f", 100*yes/total),
		NoPercentage:  fmt.Sprintf("%.2f", 100*no/total),
	}
}
