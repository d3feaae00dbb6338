package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferFilters contains the typed, already-parsed filter criteria for
// transfer queries. Zero values mean the filter is absent.
type TransferFilters struct {
	PayerPartyID  string
	PayeePartyID  string
	PayerDfspID   string
	PayeeDfspID   string
	TransactionID string
	Status        TransferStatus
	Amount        *decimal.Decimal
	Currency      string
	Direction     string
	PartyID       string
	PartyIDType   string
	StartFrom     *time.Time
	StartTo       *time.Time
}
