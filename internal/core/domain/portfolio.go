package domain

import "time"

// PortfolioSummary aggregates every stored transaction in one currency.
// CostBasis follows the weighted average cost method: a sell removes its share
// of the basis and the difference to its net proceeds is realized.
type PortfolioSummary struct {
	Currency         Currency  `json:"currency"`
	TotalBTC         float64   `json:"totalBtc"`
	BTCBought        float64   `json:"btcBought"`
	BTCSold          float64   `json:"btcSold"`
	TotalInvested    float64   `json:"totalInvested"`
	TotalProceeds    float64   `json:"totalProceeds"`
	TotalFees        float64   `json:"totalFees"`
	CostBasis        float64   `json:"costBasis"`
	AverageBuyPrice  float64   `json:"averageBuyPrice"`
	CurrentPrice     float64   `json:"currentPrice"`
	CurrentValue     float64   `json:"currentValue"`
	UnrealizedPnL    float64   `json:"unrealizedPnl"`
	UnrealizedPnLPct float64   `json:"unrealizedPnlPct"`
	RealizedPnL      float64   `json:"realizedPnl"`
	TransactionCount int       `json:"transactionCount"`
	AsOf             time.Time `json:"asOf"`
}
