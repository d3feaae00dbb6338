package models

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidTransactionRequestState = errors.New("invalid transaction request state")

// TransactionRequest represents a request to initiate a transfer, before settlement
type TransactionRequest struct {
	ID                  uint                    `gorm:"primaryKey" json:"id"`
	WorkflowInstanceKey string                  `gorm:"type:varchar(64);index:idx_txn_request_workflow_instance_key" json:"workflowInstanceKey"`
	TransactionID       string                  `gorm:"type:varchar(64);index:idx_txn_request_transaction_id" json:"transactionId"`
	StartedAt           time.Time               `gorm:"not null;index:idx_txn_request_started_at" json:"startedAt"`
	CompletedAt         *time.Time              `json:"completedAt,omitempty"`
	State               TransactionRequestState `gorm:"type:varchar(20);not null;index:idx_txn_request_state" json:"state"`
	PayeeDfspID         string                  `gorm:"type:varchar(64)" json:"payeeDfspId"`
	PayeePartyID        string                  `gorm:"type:varchar(128);index:idx_txn_request_payee_party_id" json:"payeePartyId"`
	PayeePartyIDType    string                  `gorm:"type:varchar(32)" json:"payeePartyIdType"`
	PayerDfspID         string                  `gorm:"type:varchar(64)" json:"payerDfspId"`
	PayerPartyID        string                  `gorm:"type:varchar(128);index:idx_txn_request_payer_party_id" json:"payerPartyId"`
	PayerPartyIDType    string                  `gorm:"type:varchar(32)" json:"payerPartyIdType"`
	Amount              decimal.Decimal         `gorm:"type:decimal(19,2);not null" json:"amount"`
	Currency            string                  `gorm:"type:varchar(3)" json:"currency"`
	Direction           string                  `gorm:"type:varchar(16)" json:"direction"`
	ExternalID          string                  `gorm:"type:varchar(128);index:idx_txn_request_external_id" json:"externalId"`
	AuthType            string                  `gorm:"type:varchar(32)" json:"authType,omitempty"`
	ErrorDescription    *string                 `gorm:"type:text" json:"errorDescription,omitempty"`
}

// TableName returns the table name for TransactionRequest
func (r *TransactionRequest) TableName() string {
	return "transaction_requests"
}

// Validate checks the invariants every stored transaction request satisfies
func (r *TransactionRequest) Validate() error {
	if !IsValidTransactionRequestState(r.State) {
		return ErrInvalidTransactionRequestState
	}

	if r.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}

// CSVHeader implements csvexport.Record
func (r TransactionRequest) CSVHeader() []string {
	return []string{
		"id", "workflowInstanceKey", "transactionId", "startedAt", "completedAt",
		"state", "payeeDfspId", "payeePartyId", "payeePartyIdType", "payerDfspId",
		"payerPartyId", "payerPartyIdType", "amount", "currency", "direction",
		"externalId", "authType", "errorDescription",
	}
}

// CSVRecord implements csvexport.Record
func (r TransactionRequest) CSVRecord() []string {
	return []string{
		formatID(r.ID),
		r.WorkflowInstanceKey,
		r.TransactionID,
		formatTime(&r.StartedAt),
		formatTime(r.CompletedAt),
		string(r.State),
		r.PayeeDfspID,
		r.PayeePartyID,
		r.PayeePartyIDType,
		r.PayerDfspID,
		r.PayerPartyID,
		r.PayerPartyIDType,
		r.Amount.String(),
		r.Currency,
		r.Direction,
		r.ExternalID,
		r.AuthType,
		derefString(r.ErrorDescription),
	}
}

// Helper functions

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
