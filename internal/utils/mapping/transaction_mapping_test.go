package mapping

import (
	"testing"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionMapping_RoundTrip(t *testing.T) {
	tx := domain.NewTransaction(domain.TransactionInput{
		Type:      "sell",
		BTCAmount: 0.25,
		Date:      "2024-05-10T12:00:00Z",
		Exchange:  "Bitstamp",
		Currency:  "GBP",
		Price:     50000,
		Cost:      12500,
		Fee:       5,
		CreatedBy: "alice",
	})
	require.NoError(t, tx.SetBaseValues(domain.BaseEUR, domain.TransactionValues{Price: 58000, Cost: 14500, Fee: 5.8, Rate: 1.16}))
	require.NoError(t, tx.SetBaseValues(domain.BaseUSD, domain.TransactionValues{Price: 63000, Cost: 15750, Fee: 6.3, Rate: 1.26}))
	tx.ConvertTo(domain.JPY, 190)

	row := ToModelTransaction(tx)
	assert.Equal(t, "GBP", row.Original.Currency)
	assert.Equal(t, "sell", row.TxnType)
	require.NotNil(t, row.Secondary)
	assert.Equal(t, "JPY", row.Secondary.Currency)

	back := ToDomainTransaction(row)
	assert.Equal(t, tx.ID, back.ID)
	assert.Equal(t, tx.Type, back.Type)
	assert.Equal(t, tx.Original, back.Original)
	assert.Equal(t, tx.Base, back.Base)
	assert.Equal(t, tx.Secondary, back.Secondary)
	assert.Equal(t, tx.AuditFields, back.AuditFields)
	assert.True(t, back.IsValid())
}

func TestTransactionMapping_NoSecondary(t *testing.T) {
	tx := domain.NewTransaction(domain.TransactionInput{Type: "buy", BTCAmount: 1, Date: "2024-01-01", Currency: "EUR", Price: 40000, Cost: 40000})

	row := ToModelTransaction(tx)
	assert.Nil(t, row.Secondary)
	assert.Nil(t, ToDomainTransaction(row).Secondary)
	assert.Len(t, ToDomainTransactions(nil), 0)
}
