package services

import (
	"testing"
	"time"

	"operations-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationsGenerator_GenerateTransfers(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	transfers := NewOperationsGenerator(7).GenerateTransfers(200, from, to)
	require.Len(t, transfers, 200)

	for _, transfer := range transfers {
		assert.NoError(t, transfer.Validate())
		assert.False(t, transfer.StartedAt.Before(from))
		assert.True(t, transfer.StartedAt.Before(to))
		assert.NotEmpty(t, transfer.TransactionID)
		assert.NotEmpty(t, transfer.PayerPartyID)
		assert.Contains(t, []string{models.DirectionIncoming, models.DirectionOutgoing}, transfer.Direction)

		if transfer.Status == models.TransferStatusInProgress {
			assert.Nil(t, transfer.CompletedAt)
		} else {
			require.NotNil(t, transfer.CompletedAt)
			assert.True(t, transfer.CompletedAt.After(transfer.StartedAt))
		}
		if transfer.Status == models.TransferStatusFailed {
			assert.NotNil(t, transfer.ErrorInformation)
		}
	}
}

func TestOperationsGenerator_GenerateTransactionRequests(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	requests := NewOperationsGenerator(11).GenerateTransactionRequests(300, from, to)
	require.Len(t, requests, 300)

	states := make(map[models.TransactionRequestState]int)
	for _, request := range requests {
		assert.NoError(t, request.Validate())
		assert.False(t, request.StartedAt.Before(from))
		assert.True(t, request.StartedAt.Before(to))
		states[request.State]++

		failed := request.State == models.TransactionRequestStateFailed || request.State == models.TransactionRequestStateRejected
		assert.Equal(t, failed, request.ErrorDescription != nil)
	}

	assert.Greater(t, states[models.TransactionRequestStateSuccess], states[models.TransactionRequestStateRejected])
}

func TestOperationsGenerator_SameSeedSameRows(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)

	first := NewOperationsGenerator(42).GenerateTransactionRequests(5, from, to)
	second := NewOperationsGenerator(42).GenerateTransactionRequests(5, from, to)

	for i := range first {
		assert.Equal(t, first[i].TransactionID, second[i].TransactionID)
		assert.Equal(t, first[i].State, second[i].State)
		assert.True(t, first[i].StartedAt.Equal(second[i].StartedAt))
	}
}
