package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals accumulates the BTC and money flows of a set of transactions, all
// money expressed in a single currency.
type Totals struct {
	BTCBought   decimal.Decimal
	BTCSold     decimal.Decimal
	Invested    decimal.Decimal // buy cost + buy fees
	Proceeds    decimal.Decimal // sell cost - sell fees
	Fees        decimal.Decimal
	CostBasis   decimal.Decimal // basis of the BTC still held
	RealizedPnL decimal.Decimal
	Count       int
}

// HeldBTC is bought minus sold.
func (t Totals) HeldBTC() decimal.Decimal {
	return t.BTCBought.Sub(t.BTCSold)
}

// AverageBuyPrice is the cost basis per BTC still held, or zero when nothing is held.
func (t Totals) AverageBuyPrice() decimal.Decimal {
	held := t.HeldBTC()
	if !held.IsPositive() {
		return decimal.Zero
	}
	return t.CostBasis.Div(held)
}

// CalculateSignedBTCAmount returns the BTC amount of tx, negative for sells.
func CalculateSignedBTCAmount(tx domain.Transaction) (decimal.Decimal, error) {
	amount := decimal.NewFromFloat(tx.BTCAmount)
	switch tx.Type {
	case domain.Buy:
		return amount, nil
	case domain.Sell:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s' encountered for transaction ID %s", tx.Type, tx.ID)
	}
}

// AccumulateTotals walks transactions oldest first and sums them in currency.
// Every transaction must carry cached values for currency; the first one that
// does not aborts the walk with its ErrNoValuesAvailable.
func AccumulateTotals(transactions []domain.Transaction, currency string) (Totals, error) {
	ordered := make([]domain.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	t := Totals{}
	for _, tx := range ordered {
		signed, err := CalculateSignedBTCAmount(tx)
		if err != nil {
			return Totals{}, err
		}
		values, err := tx.GetValuesInCurrency(currency)
		if err != nil {
			return Totals{}, err
		}

		cost := decimal.NewFromFloat(values.Cost)
		fee := decimal.NewFromFloat(values.Fee)
		t.Fees = t.Fees.Add(fee)
		t.Count++

		if signed.IsPositive() || signed.IsZero() {
			t.BTCBought = t.BTCBought.Add(signed)
			t.Invested = t.Invested.Add(cost).Add(fee)
			t.CostBasis = t.CostBasis.Add(cost).Add(fee)
			continue
		}

		sold := signed.Neg()
		heldBefore := t.HeldBTC()
		removed := decimal.Zero
		if heldBefore.IsPositive() {
			share := decimal.Min(sold, heldBefore).Div(heldBefore)
			removed = t.CostBasis.Mul(share)
		}
		net := cost.Sub(fee)
		t.BTCSold = t.BTCSold.Add(sold)
		t.Proceeds = t.Proceeds.Add(net)
		t.CostBasis = t.CostBasis.Sub(removed)
		t.RealizedPnL = t.RealizedPnL.Add(net.Sub(removed))
	}

	if !t.HeldBTC().IsPositive() {
		t.CostBasis = decimal.Zero
	}
	return t, nil
}
