package dto

import (
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/SscSPs/btc_tracker/internal/utils"
)

// PortfolioSummaryParams defines the query parameters for the summary.
type PortfolioSummaryParams struct {
	Currency string `form:"currency" binding:"omitempty,currency"`
}

// PortfolioSummaryResponse is a summary with amounts pre-formatted for display.
type PortfolioSummaryResponse struct {
	domain.PortfolioSummary
	Formatted map[string]string `json:"formatted"`
}

// ToPortfolioSummaryResponse formats the money fields of s in its currency.
func ToPortfolioSummaryResponse(s *domain.PortfolioSummary) PortfolioSummaryResponse {
	money := map[string]float64{
		"totalInvested":   s.TotalInvested,
		"totalProceeds":   s.TotalProceeds,
		"totalFees":       s.TotalFees,
		"averageBuyPrice": s.AverageBuyPrice,
		"currentPrice":    s.CurrentPrice,
		"currentValue":    s.CurrentValue,
		"unrealizedPnl":   s.UnrealizedPnL,
	}
	formatted := make(map[string]string, len(money)+1)
	for k, v := range money {
		formatted[k] = utils.FormatFloatWithCurrency(v, s.Currency)
	}
	formatted["unrealizedPnlPct"] = utils.FormatWithPrecision(s.UnrealizedPnLPct, 2) + "%"
	return PortfolioSummaryResponse{PortfolioSummary: *s, Formatted: formatted}
}
