package domain

import "github.com/shopspring/decimal"

// PaymentClassification is the outcome of comparing a declared payment's USD
// value against the outstanding due amount.
type PaymentClassification string

const (
	PaymentExact   PaymentClassification = "EXACT"
	PaymentPartial PaymentClassification = "PARTIAL"
	PaymentOver    PaymentClassification = "OVER"
)

// classificationEpsilon absorbs rounding drift when a local-currency amount
// converts back to USD: within one cent of the due amount counts as exact.
var classificationEpsilon = decimal.NewFromFloat(0.01)

// ClassifyPayment compares a USD-equivalent paid amount to the amount due.
func ClassifyPayment(paidUSD, amountDue decimal.Decimal) PaymentClassification {
	diff := paidUSD.Sub(amountDue)
	if diff.Abs().LessThanOrEqual(classificationEpsilon) {
		return PaymentExact
	}
	if diff.IsNegative() {
		return PaymentPartial
	}
	return PaymentOver
}

// ConvertToUSD converts a declared local-currency amount to USD at the given
// rate (local units per 1 USD), banker's rounding to cents.
func ConvertToUSD(declaredLocal, rate decimal.Decimal) decimal.Decimal {
	return declaredLocal.Div(rate).RoundBank(2)
}

// ReconciliationResult reports what a declared-payment submission did.
type ReconciliationResult struct {
	DueID          string                `json:"dueID"`
	Classification PaymentClassification `json:"classification"`
	PaidUSD        decimal.Decimal       `json:"paidUSD"`
	// RemainderUSD is the unpaid part for PARTIAL, the excess for OVER,
	// and zero for EXACT.
	RemainderUSD decimal.Decimal `json:"remainderUSD"`
}

// BulkPaymentItem is the per-due outcome of a bulk payment submission. A due
// left unfunded by the greedy allocation carries neither result nor error.
type BulkPaymentItem struct {
	DueID  string                `json:"dueID"`
	Funded bool                  `json:"funded"`
	Result *ReconciliationResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// BalanceSummary is an owner's derived position. LegacyCredit is the stored
// pre-migration credit; it is surfaced separately and never folded into NetUSD.
type BalanceSummary struct {
	OwnerID          string          `json:"ownerID"`
	NetUSD           decimal.Decimal `json:"netUSD"`
	TotalPaidUSD     decimal.Decimal `json:"totalPaidUSD"`
	TotalExpectedUSD decimal.Decimal `json:"totalExpectedUSD"`
	PaidCount        int             `json:"paidCount"`
	LegacyCredit     decimal.Decimal `json:"legacyCredit"`
}
