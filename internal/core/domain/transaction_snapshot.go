package domain

import "time"

// TransactionSnapshot is the plain-data projection of a Transaction handed to
// storage. Every field is stored as computed; nothing is re-derived on load.
type TransactionSnapshot struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	BTCAmount float64          `json:"btcAmount"`
	Date      time.Time        `json:"date"`
	Exchange  string           `json:"exchange"`
	TxType    string           `json:"txType"`
	Status    string           `json:"status"`
	Notes     string           `json:"notes"`
	Original  OriginalValues   `json:"original"`
	Base      BaseValues       `json:"base"`
	Secondary *SecondaryValues `json:"secondary,omitempty"`
	AuditFields
}

// ToSnapshot projects t into plain data. The secondary bundle is copied.
func (t *Transaction) ToSnapshot() TransactionSnapshot {
	s := TransactionSnapshot{
		ID:          t.ID,
		Type:        string(t.Type),
		BTCAmount:   t.BTCAmount,
		Date:        t.Date,
		Exchange:    t.Exchange,
		TxType:      string(t.TxType),
		Status:      t.Status,
		Notes:       t.Notes,
		Original:    t.Original,
		Base:        t.Base,
		AuditFields: t.AuditFields,
	}
	if t.Secondary != nil {
		sec := *t.Secondary
		s.Secondary = &sec
	}
	return s
}

// FromSnapshot rebuilds a Transaction from its projection, field for field.
func FromSnapshot(s TransactionSnapshot) *Transaction {
	t := &Transaction{
		ID:          s.ID,
		Type:        TransactionType(s.Type),
		BTCAmount:   s.BTCAmount,
		Date:        s.Date,
		Exchange:    s.Exchange,
		TxType:      TxKind(s.TxType),
		Status:      s.Status,
		Notes:       s.Notes,
		Original:    s.Original,
		Base:        s.Base,
		AuditFields: s.AuditFields,
	}
	if s.Secondary != nil {
		sec := *s.Secondary
		t.Secondary = &sec
	}
	return t
}
