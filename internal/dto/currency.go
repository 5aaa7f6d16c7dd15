package dto

import "github.com/SscSPs/btc_tracker/internal/core/domain"

// CurrencyResponse defines the data returned for a supported currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	IsBase       bool   `json:"isBase"`
}

// ToCurrencyResponse converts domain currency metadata to its DTO.
func ToCurrencyResponse(info domain.CurrencyInfo) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: string(info.CurrencyCode),
		Symbol:       info.Symbol,
		Name:         info.Name,
		Precision:    info.Precision,
		IsBase:       info.CurrencyCode.IsBase(),
	}
}

// ToListCurrencyResponse converts a slice of currency metadata to DTOs.
func ToListCurrencyResponse(infos []domain.CurrencyInfo) []CurrencyResponse {
	res := make([]CurrencyResponse, len(infos))
	for i, info := range infos {
		res[i] = ToCurrencyResponse(info)
	}
	return res
}
