package document

import (
	"github.com/shopspring/decimal"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// Summary holds the aggregated totals of a transaction list.
type Summary struct {
	TotalReceived       decimal.Decimal `json:"totalEurosReceived"`
	TotalDelivered      decimal.Decimal `json:"totalBsDelivered"`
	TotalProfit         decimal.Decimal `json:"totalProfit"`
	AvgProfitPercentage decimal.Decimal `json:"avgProfitPercentage"`
	Count               int             `json:"transactionCount"`
}

// Summarize reduces a transaction list into its totals. Missing profit
// figures count as zero. The average profit percentage of an empty list is
// zero; the division is guarded explicitly. Input order does not affect the
// result.
func Summarize(transactions []domain.Transaction) Summary {
	s := Summary{
		TotalReceived:       decimal.Zero,
		TotalDelivered:      decimal.Zero,
		TotalProfit:         decimal.Zero,
		AvgProfitPercentage: decimal.Zero,
		Count:               len(transactions),
	}

	pctSum := decimal.Zero
	for _, t := range transactions {
		s.TotalReceived = s.TotalReceived.Add(t.AmountReceived)
		s.TotalDelivered = s.TotalDelivered.Add(t.AmountDelivered)
		s.TotalProfit = s.TotalProfit.Add(t.Profit)
		pctSum = pctSum.Add(t.ProfitPercentage)
	}

	if s.Count > 0 {
		s.AvgProfitPercentage = pctSum.Div(decimal.NewFromInt(int64(s.Count)))
	}
	return s
}
