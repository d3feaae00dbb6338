package services

import (
	"testing"
	"time"

	"operations-api/internal/models"
	"operations-api/internal/predicate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildTransferPredicate_NoFilters(t *testing.T) {
	assert.Nil(t, BuildTransferPredicate(models.TransferFilters{}))
	assert.Nil(t, BuildTransactionRequestPredicate(models.TransactionRequestFilters{}))
}

func TestBuildTransferPredicate_SingleFilter(t *testing.T) {
	p := BuildTransferPredicate(models.TransferFilters{Currency: "USD"})
	assert.Equal(t, predicate.Eq(models.ColumnCurrency, "USD"), p)
}

func TestBuildTransferPredicate_AllFilters(t *testing.T) {
	amount := decimal.NewFromInt(10)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	p := BuildTransferPredicate(models.TransferFilters{
		PayerPartyID:  "p1",
		PayeePartyID:  "p2",
		PayerDfspID:   "d1",
		PayeeDfspID:   "d2",
		TransactionID: "t1",
		Status:        models.TransferStatusFailed,
		Amount:        &amount,
		Currency:      "USD",
		Direction:     models.DirectionIncoming,
		PartyID:       "p3",
		PartyIDType:   "MSISDN",
		StartFrom:     &from,
		StartTo:       &to,
	})

	assert.Equal(t, 12, predicate.Len(p))

	description := predicate.Describe(p)
	assert.Contains(t, description, "status = FAILED")
	assert.Contains(t, description, "(payer_party_id = p3 OR payee_party_id = p3)")
	assert.Contains(t, description, "(payer_party_id_type = MSISDN OR payee_party_id_type = MSISDN)")
	assert.Contains(t, description, "started_at >= 2024-01-01T00:00:00Z AND started_at <= 2024-01-02T00:00:00Z")
}

func TestBuildTransactionRequestPredicate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p := BuildTransactionRequestPredicate(models.TransactionRequestFilters{
		PayerPartyID: "p1",
		State:        models.TransactionRequestStateSuccess,
		StartFrom:    &from,
	})

	assert.Equal(t, 3, predicate.Len(p))
	assert.Equal(t, "payer_party_id = p1 AND state = SUCCESS AND started_at >= 2024-01-01T00:00:00Z", predicate.Describe(p))
}

func TestBuildPredicate_Deterministic(t *testing.T) {
	filters := models.TransferFilters{PayerPartyID: "a", Currency: "USD", Direction: models.DirectionOutgoing}

	assert.Equal(t, predicate.Describe(BuildTransferPredicate(filters)), predicate.Describe(BuildTransferPredicate(filters)))
}
