package service

import "context"

// TransactionVerifier checks a customer-submitted transaction id. The fixed
// token implementation below stands in for a real payment-gateway lookup.
type TransactionVerifier interface {
	Verify(ctx context.Context, txnID string) (bool, error)
}

// FixedTokenVerifier accepts exactly one configured transaction id.
type FixedTokenVerifier struct {
	expected string
}

func NewFixedTokenVerifier(expected string) *FixedTokenVerifier {
	return &FixedTokenVerifier{expected: expected}
}

func (v *FixedTokenVerifier) Verify(_ context.Context, txnID string) (bool, error) {
	return txnID != "" && txnID == v.expected, nil
}
