package dto

import (
	"time"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is a new BTC buy or sell as entered by the user.
// Amounts accept JSON numbers or numeric strings.
type CreateTransactionRequest struct {
	Type      string             `json:"type" binding:"required,oneof=buy sell"`
	BTCAmount decimal.Decimal    `json:"btcAmount"`
	Date      string             `json:"date" binding:"required"`
	Exchange  string             `json:"exchange" binding:"max=100"`
	TxType    string             `json:"txType" binding:"omitempty,oneof=spot fiat_payment deposit withdrawal"`
	Status    string             `json:"status" binding:"max=50"`
	Notes     string             `json:"notes" binding:"max=1000"`
	Currency  string             `json:"currency" binding:"required,currency"`
	Price     decimal.Decimal    `json:"price"`
	Cost      decimal.Decimal    `json:"cost"`
	Fee       decimal.Decimal    `json:"fee"`
	Base      *domain.BaseValues `json:"base,omitempty"`
}

// ToTransactionInput converts the request into raw domain input.
func (r CreateTransactionRequest) ToTransactionInput(creatorUserID string) domain.TransactionInput {
	return domain.TransactionInput{
		Type:      r.Type,
		BTCAmount: r.BTCAmount.InexactFloat64(),
		Date:      r.Date,
		Exchange:  r.Exchange,
		TxType:    r.TxType,
		Status:    r.Status,
		Notes:     r.Notes,
		Currency:  r.Currency,
		Price:     r.Price.InexactFloat64(),
		Cost:      r.Cost.InexactFloat64(),
		Fee:       r.Fee.InexactFloat64(),
		Base:      r.Base,
		CreatedBy: creatorUserID,
	}
}

// ListTransactionsParams defines the query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
	Currency  string `form:"currency" binding:"omitempty,currency"`
}

// TransactionResponse is a transaction with its values in the requested currency.
type TransactionResponse struct {
	ID            string                    `json:"id"`
	Type          string                    `json:"type"`
	BTCAmount     float64                   `json:"btcAmount"`
	Date          time.Time                 `json:"date"`
	Exchange      string                    `json:"exchange"`
	TxType        string                    `json:"txType"`
	Status        string                    `json:"status"`
	Notes         string                    `json:"notes,omitempty"`
	Original      domain.OriginalValues     `json:"original"`
	Base          domain.BaseValues         `json:"base"`
	Secondary     *domain.SecondaryValues   `json:"secondary,omitempty"`
	CurrencyCode  string                    `json:"currencyCode,omitempty"`
	Values        *domain.TransactionValues `json:"values,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	CreatedBy     string                    `json:"createdBy"`
	LastUpdatedAt time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy string                    `json:"lastUpdatedBy"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its DTO. values may be
// nil when no display currency was requested.
func ToTransactionResponse(tx *domain.Transaction, currency string, values *domain.TransactionValues) TransactionResponse {
	resp := TransactionResponse{
		ID:            tx.ID,
		Type:          string(tx.Type),
		BTCAmount:     tx.BTCAmount,
		Date:          tx.Date,
		Exchange:      tx.Exchange,
		TxType:        string(tx.TxType),
		Status:        tx.Status,
		Notes:         tx.Notes,
		Original:      tx.Original,
		Base:          tx.Base,
		Secondary:     tx.Secondary,
		CreatedAt:     tx.CreatedAt,
		CreatedBy:     tx.CreatedBy,
		LastUpdatedAt: tx.LastUpdatedAt,
		LastUpdatedBy: tx.LastUpdatedBy,
	}
	if values != nil {
		v := *values
		resp.CurrencyCode = currency
		resp.Values = &v
	}
	return resp
}

// ToListTransactionResponse converts a page of transactions, resolving each
// one's cached values in currency when it has them.
func ToListTransactionResponse(txs []domain.Transaction, currency string, nextToken *string) ListTransactionsResponse {
	resp := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, len(txs)),
		NextToken:    nextToken,
	}
	for i := range txs {
		var values *domain.TransactionValues
		if currency != "" {
			if v, err := txs[i].GetValuesInCurrency(currency); err == nil {
				values = &v
			}
		}
		resp.Transactions[i] = ToTransactionResponse(&txs[i], currency, values)
	}
	return resp
}
