package models

import "time"

// Values is the JSONB shape of one price/cost/fee/rate bundle.
type Values struct {
	Price float64 `json:"price"`
	Cost  float64 `json:"cost"`
	Fee   float64 `json:"fee"`
	Rate  float64 `json:"rate"`
}

// CurrencyValues is a bundle tagged with the currency it is expressed in.
type CurrencyValues struct {
	Currency string `json:"currency"`
	Values
}

// BaseValues is the JSONB shape of the EUR and USD bundles.
type BaseValues struct {
	EUR Values `json:"eur"`
	USD Values `json:"usd"`
}

// Transaction is one row of the transactions table. The value bundles are
// stored as JSONB exactly as computed and are never recomputed on load.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	TxnType       string          `json:"txnType"`       // buy or sell
	BTCAmount     float64         `json:"btcAmount"`
	TxnDate       time.Time       `json:"txnDate"`
	Exchange      string          `json:"exchange"`
	TxKind        string          `json:"txKind"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	Original      CurrencyValues  `json:"original"`  // JSONB
	Base          BaseValues      `json:"base"`      // JSONB
	Secondary     *CurrencyValues `json:"secondary"` // JSONB, nullable
	AuditFields
}
