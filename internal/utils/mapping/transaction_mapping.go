package mapping

import (
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/SscSPs/btc_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a table row via its snapshot.
func ToModelTransaction(d *domain.Transaction) models.Transaction {
	s := d.ToSnapshot()
	m := models.Transaction{
		TransactionID: s.ID,
		TxnType:       s.Type,
		BTCAmount:     s.BTCAmount,
		TxnDate:       s.Date,
		Exchange:      s.Exchange,
		TxKind:        s.TxType,
		Status:        s.Status,
		Notes:         s.Notes,
		Original: models.CurrencyValues{
			Currency: string(s.Original.Currency),
			Values:   toModelValues(s.Original.TransactionValues),
		},
		Base: models.BaseValues{
			EUR: toModelValues(s.Base.EUR),
			USD: toModelValues(s.Base.USD),
		},
		Secondary:   ToModelSecondary(s.Secondary),
		AuditFields: ToModelAuditFields(s.AuditFields),
	}
	return m
}

// ToModelSecondary converts an optional secondary bundle.
func ToModelSecondary(d *domain.SecondaryValues) *models.CurrencyValues {
	if d == nil {
		return nil
	}
	return &models.CurrencyValues{
		Currency: string(d.Currency),
		Values:   toModelValues(d.TransactionValues),
	}
}

// ToDomainTransaction rebuilds a domain Transaction from a table row.
func ToDomainTransaction(m models.Transaction) *domain.Transaction {
	s := domain.TransactionSnapshot{
		ID:        m.TransactionID,
		Type:      m.TxnType,
		BTCAmount: m.BTCAmount,
		Date:      m.TxnDate,
		Exchange:  m.Exchange,
		TxType:    m.TxKind,
		Status:    m.Status,
		Notes:     m.Notes,
		Original: domain.OriginalValues{
			Currency:          domain.Currency(m.Original.Currency),
			TransactionValues: toDomainValues(m.Original.Values),
		},
		Base: domain.BaseValues{
			EUR: toDomainValues(m.Base.EUR),
			USD: toDomainValues(m.Base.USD),
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Secondary != nil {
		s.Secondary = &domain.SecondaryValues{
			Currency:          domain.Currency(m.Secondary.Currency),
			TransactionValues: toDomainValues(m.Secondary.Values),
		}
	}
	return domain.FromSnapshot(s)
}

// ToDomainTransactions converts a slice of rows.
func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = *ToDomainTransaction(m)
	}
	return out
}

func toModelValues(v domain.TransactionValues) models.Values {
	return models.Values{Price: v.Price, Cost: v.Cost, Fee: v.Fee, Rate: v.Rate}
}

func toDomainValues(v models.Values) domain.TransactionValues {
	return domain.TransactionValues{Price: v.Price, Cost: v.Cost, Fee: v.Fee, Rate: v.Rate}
}
