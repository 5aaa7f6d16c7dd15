package dto

import "github.com/SscSPs/btc_tracker/internal/core/domain"

// ConvertRequest converts a single amount. A missing amount converts to 0.
type ConvertRequest struct {
	Amount *float64 `json:"amount"`
	From   string   `json:"from" binding:"required,currency"`
	To     string   `json:"to" binding:"required,currency"`
}

// ConvertQuery is the query-string form of ConvertRequest. Amount is parsed
// leniently, so "30,000" and " 0.5 " are accepted.
type ConvertQuery struct {
	Amount string `form:"amount"`
	From   string `form:"from" binding:"required,currency"`
	To     string `form:"to" binding:"required,currency"`
}

// ConvertResponse is the result of a scalar conversion.
type ConvertResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Result    float64 `json:"result"`
	Rounded   float64 `json:"rounded"`
	Formatted string  `json:"formatted"`
}

// ConvertValuesRequest converts a price/cost/fee bundle with one rate.
type ConvertValuesRequest struct {
	Values domain.TransactionValues `json:"values"`
	From   string                   `json:"from" binding:"required,currency"`
	To     string                   `json:"to" binding:"required,currency"`
}

// ConvertValuesResponse is the converted bundle.
type ConvertValuesResponse struct {
	From   string                   `json:"from"`
	To     string                   `json:"to"`
	Values domain.TransactionValues `json:"values"`
}
