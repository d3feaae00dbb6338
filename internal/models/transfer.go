package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Column names shared by transfers and transaction_requests
const (
	ColumnPayerPartyID        = "payer_party_id"
	ColumnPayerPartyIDType    = "payer_party_id_type"
	ColumnPayerDfspID         = "payer_dfsp_id"
	ColumnPayeePartyID        = "payee_party_id"
	ColumnPayeePartyIDType    = "payee_party_id_type"
	ColumnPayeeDfspID         = "payee_dfsp_id"
	ColumnTransactionID       = "transaction_id"
	ColumnAmount              = "amount"
	ColumnCurrency            = "currency"
	ColumnDirection           = "direction"
	ColumnStartedAt           = "started_at"
	ColumnStatus              = "status"
	ColumnState               = "state"
	ColumnExternalID          = "external_id"
	ColumnWorkflowInstanceKey = "workflow_instance_key"
	ColumnErrorDescription    = "error_description"
)

var (
	ErrInvalidTransferStatus = errors.New("invalid transfer status")
	ErrNegativeAmount        = errors.New("amount must not be negative")
)

// Transfer represents a funds movement recorded by the orchestration system
type Transfer struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	WorkflowInstanceKey string          `gorm:"type:varchar(64);index:idx_transfer_workflow_instance_key" json:"workflowInstanceKey"`
	TransactionID       string          `gorm:"type:varchar(64);index:idx_transfer_transaction_id" json:"transactionId"`
	StartedAt           time.Time       `gorm:"not null;index:idx_transfer_started_at" json:"startedAt"`
	CompletedAt         *time.Time      `json:"completedAt,omitempty"`
	Status              TransferStatus  `gorm:"type:varchar(20);not null;index:idx_transfer_status" json:"status"`
	StatusDetail        *string         `gorm:"type:text" json:"statusDetail,omitempty"`
	PayeeDfspID         string          `gorm:"type:varchar(64)" json:"payeeDfspId"`
	PayeePartyID        string          `gorm:"type:varchar(128);index:idx_transfer_payee_party_id" json:"payeePartyId"`
	PayeePartyIDType    string          `gorm:"type:varchar(32)" json:"payeePartyIdType"`
	PayeeFee            decimal.Decimal `gorm:"type:decimal(19,2)" json:"payeeFee"`
	PayerDfspID         string          `gorm:"type:varchar(64)" json:"payerDfspId"`
	PayerPartyID        string          `gorm:"type:varchar(128);index:idx_transfer_payer_party_id" json:"payerPartyId"`
	PayerPartyIDType    string          `gorm:"type:varchar(32)" json:"payerPartyIdType"`
	PayerFee            decimal.Decimal `gorm:"type:decimal(19,2)" json:"payerFee"`
	Amount              decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"amount"`
	Currency            string          `gorm:"type:varchar(3)" json:"currency"`
	Direction           string          `gorm:"type:varchar(16)" json:"direction"`
	ErrorInformation    *string         `gorm:"type:text" json:"errorInformation,omitempty"`
}

// TableName returns the table name for Transfer
func (t *Transfer) TableName() string {
	return "transfers"
}

// Validate checks the invariants every stored transfer satisfies
func (t *Transfer) Validate() error {
	if !IsValidTransferStatus(t.Status) {
		return ErrInvalidTransferStatus
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}

// CSVHeader implements csvexport.Record
func (t Transfer) CSVHeader() []string {
	return []string{
		"id", "workflowInstanceKey", "transactionId", "startedAt", "completedAt",
		"status", "statusDetail", "payeeDfspId", "payeePartyId", "payeePartyIdType",
		"payeeFee", "payerDfspId", "payerPartyId", "payerPartyIdType", "payerFee",
		"amount", "currency", "direction", "errorInformation",
	}
}

// CSVRecord implements csvexport.Record
func (t Transfer) CSVRecord() []string {
	return []string{
		formatID(t.ID),
		t.WorkflowInstanceKey,
		t.TransactionID,
		formatTime(&t.StartedAt),
		formatTime(t.CompletedAt),
		string(t.Status),
		derefString(t.StatusDetail),
		t.PayeeDfspID,
		t.PayeePartyID,
		t.PayeePartyIDType,
		t.PayeeFee.String(),
		t.PayerDfspID,
		t.PayerPartyID,
		t.PayerPartyIDType,
		t.PayerFee.String(),
		t.Amount.String(),
		t.Currency,
		t.Direction,
		derefString(t.ErrorInformation),
	}
}
