package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequestFilters contains the typed filter criteria for
// transaction request queries
type TransactionRequestFilters struct {
	PayerPartyID  string
	PayeePartyID  string
	PayerDfspID   string
	PayeeDfspID   string
	TransactionID string
	State         TransactionRequestState
	Amount        *decimal.Decimal
	Currency      string
	Direction     string
	StartFrom     *time.Time
	StartTo       *time.Time
}
