package service_test

import (
	"context"
	"testing"

	"github.com/mathanmathan27/aarvel-store/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFixedTokenVerifier(t *testing.T) {
	verifier := service.NewFixedTokenVerifier("ABC123XYZ")
	ctx := context.Background()

	tests := []struct {
		name  string
		txnID string
		want  bool
	}{
		{"exact match", "ABC123XYZ", true},
		{"wrong token", "XYZ321CBA", false},
		{"case mismatch", "abc123xyz", false},
		{"empty token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := verifier.Verify(ctx, tt.txnID)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFixedTokenVerifier_EmptyExpected(t *testing.T) {
	// an unset expected token must not accept an empty submission
	verifier := service.NewFixedTokenVerifier("")
	got, err := verifier.Verify(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, got)
}
