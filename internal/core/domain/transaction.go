package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/google/uuid"
)

// TransactionType indicates whether BTC was bought or sold.
type TransactionType string

const (
	Buy  TransactionType = "buy"
	Sell TransactionType = "sell"
)

// TxKind describes how the BTC moved.
type TxKind string

const (
	TxSpot        TxKind = "spot"
	TxFiatPayment TxKind = "fiat_payment"
	TxDeposit     TxKind = "deposit"
	TxWithdrawal  TxKind = "withdrawal"
)

// StatusCompleted is the status given to transactions entered without one.
const StatusCompleted = "completed"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TransactionInput is raw user or import input. Nothing in it is trusted.
type TransactionInput struct {
	ID        string
	Type      string
	BTCAmount float64
	Date      string
	Exchange  string
	TxType    string
	Status    string
	Notes     string
	Currency  string // Entry currency of Price/Cost/Fee
	Price     float64
	Cost      float64
	Fee       float64
	Base      *BaseValues // Pre-computed base values, e.g. from an import
	CreatedBy string
}

// Transaction is a BTC buy or sell together with its value in the entry
// currency, both base currencies and optionally one secondary currency.
type Transaction struct {
	ID        string           `json:"id"`
	Type      TransactionType  `json:"type"`
	BTCAmount float64          `json:"btcAmount"`
	Date      time.Time        `json:"date"`
	Exchange  string           `json:"exchange"`
	TxType    TxKind           `json:"txType"`
	Status    string           `json:"status"`
	Notes     string           `json:"notes"`
	Original  OriginalValues   `json:"original"`
	Base      BaseValues       `json:"base"`
	Secondary *SecondaryValues `json:"secondary,omitempty"`
	AuditFields
}

// NewTransaction builds a transaction from raw input. It never fails: bad amounts
// become 0 and bad dates the zero time, which IsValid then rejects.
func NewTransaction(in TransactionInput) *Transaction {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	txKind := TxKind(strings.ToLower(strings.TrimSpace(in.TxType)))
	if txKind == "" {
		txKind = TxSpot
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusCompleted
	}

	now := time.Now().UTC()
	tx := &Transaction{
		ID:        id,
		Type:      TransactionType(strings.ToLower(strings.TrimSpace(in.Type))),
		BTCAmount: sanitizeQuantity(in.BTCAmount),
		Date:      parseDate(in.Date),
		Exchange:  strings.TrimSpace(in.Exchange),
		TxType:    txKind,
		Status:    status,
		Notes:     in.Notes,
		Original: OriginalValues{
			Currency: normalizeCode(in.Currency),
			TransactionValues: TransactionValues{
				Price: SanitizeAmount(in.Price),
				Cost:  SanitizeAmount(in.Cost),
				Fee:   SanitizeAmount(in.Fee),
				Rate:  1,
			},
		},
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     in.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: in.CreatedBy,
		},
	}

	if in.Base != nil {
		// Keys are literal, so these cannot fail.
		_ = tx.SetBaseValues(BaseEUR, in.Base.EUR)
		_ = tx.SetBaseValues(BaseUSD, in.Base.USD)
	}
	return tx
}

// sanitizeQuantity is SanitizeAmount that also maps negative quantities to 0.
func sanitizeQuantity(f float64) float64 {
	f = SanitizeAmount(f)
	if f < 0 {
		return 0
	}
	return f
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// SetBaseValues overwrites the bundle stored under key.
func (t *Transaction) SetBaseValues(key BaseKey, values TransactionValues) error {
	switch key {
	case BaseEUR:
		t.Base.EUR = values.Normalize()
	case BaseUSD:
		t.Base.USD = values.Normalize()
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidBaseCurrency, string(key))
	}
	return nil
}

// SetSecondaryCurrency attaches or replaces the secondary bundle. The currency is
// not checked against the supported set; callers validate upstream.
func (t *Transaction) SetSecondaryCurrency(currency Currency, values TransactionValues) {
	t.Secondary = &SecondaryValues{
		Currency:          normalizeCode(string(currency)),
		TransactionValues: values.Normalize(),
	}
}

// ConvertTo computes a secondary bundle from the original values using rate.
// Base currencies are ignored, they are filled through SetBaseValues. A
// non-positive or non-finite rate leaves the transaction untouched.
func (t *Transaction) ConvertTo(target Currency, rate float64) {
	target = normalizeCode(string(target))
	if target.IsBase() {
		return
	}
	if !isFinite(rate) || rate <= 0 {
		return
	}
	t.SetSecondaryCurrency(target, t.Original.TransactionValues.Scale(rate))
}

// GetValuesInCurrency returns the cached bundle for code. It never converts:
// if no bundle was computed for code it fails with ErrNoValuesAvailable.
func (t *Transaction) GetValuesInCurrency(code string) (TransactionValues, error) {
	c := normalizeCode(code)

	if key, ok := BaseKeyFor(c); ok {
		base := t.baseFor(key)
		if base.Rate != 0 {
			return base, nil
		}
	}
	if t.Secondary != nil && t.Secondary.Currency == c {
		return t.Secondary.TransactionValues, nil
	}
	if t.Original.Currency == c {
		v := t.Original.TransactionValues
		v.Rate = 1
		return v, nil
	}
	return TransactionValues{}, fmt.Errorf("%w: %s (transaction %s)", apperrors.ErrNoValuesAvailable, code, t.ID)
}

func (t *Transaction) baseFor(key BaseKey) TransactionValues {
	if key == BaseUSD {
		return t.Base.USD
	}
	return t.Base.EUR
}

// HasBaseValues reports whether at least one base price has been populated.
func (t *Transaction) HasBaseValues() bool {
	return t.Base.EUR.Price != 0 || t.Base.USD.Price != 0
}

// IsValid reports whether the transaction may be persisted.
func (t *Transaction) IsValid() bool {
	return t.Validate() == nil
}

// Validate returns an ErrValidation describing every failed rule, or nil.
func (t *Transaction) Validate() error {
	var problems []string

	if t.BTCAmount <= 0 {
		problems = append(problems, "amount must be positive")
	}
	if t.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if t.Type != Buy && t.Type != Sell {
		problems = append(problems, fmt.Sprintf("invalid type: %q", string(t.Type)))
	}
	if t.Original.Price == 0 {
		problems = append(problems, "original price is required")
	}
	if t.Original.Currency == "" {
		problems = append(problems, "original currency is required")
	} else if !IsSupportedCurrency(string(t.Original.Currency)) {
		problems = append(problems, fmt.Sprintf("original currency %s is not supported", t.Original.Currency))
	}
	if !t.HasBaseValues() {
		problems = append(problems, "base currency values have not been computed")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
