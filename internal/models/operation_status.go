package models

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
)

// TransferStatus is the lifecycle state of a Transfer
type TransferStatus string

const (
	TransferStatusInProgress TransferStatus = "IN_PROGRESS"
	TransferStatusCompleted  TransferStatus = "COMPLETED"
	TransferStatusFailed     TransferStatus = "FAILED"
	TransferStatusUnknown    TransferStatus = "UNKNOWN"
)

// TransactionRequestState is the lifecycle state of a TransactionRequest
type TransactionRequestState string

const (
	TransactionRequestStateReceived   TransactionRequestState = "RECEIVED"
	TransactionRequestStateInProgress TransactionRequestState = "IN_PROGRESS"
	TransactionRequestStateAccepted   TransactionRequestState = "ACCEPTED"
	TransactionRequestStateRejected   TransactionRequestState = "REJECTED"
	TransactionRequestStateSuccess    TransactionRequestState = "SUCCESS"
	TransactionRequestStateFailed     TransactionRequestState = "FAILED"
)

// ExportFilter names the field an export id-list is matched against
type ExportFilter string

const (
	ExportFilterTransactionID       ExportFilter = "TRANSACTIONID"
	ExportFilterPayerID             ExportFilter = "PAYERID"
	ExportFilterPayeeID             ExportFilter = "PAYEEID"
	ExportFilterWorkflowInstanceKey ExportFilter = "WORKFLOWINSTANCEKEY"
	ExportFilterState               ExportFilter = "STATE"
	ExportFilterErrorDescription    ExportFilter = "ERRORDESCRIPTION"
	ExportFilterExternalID          ExportFilter = "EXTERNALID"
)

// Direction values as written by the orchestration system
const (
	DirectionIncoming = "INCOMING"
	DirectionOutgoing = "OUTGOING"
)

var ErrInvalidExportFilter = errors.New("invalid export filter")

var transferStatuses = map[TransferStatus]struct{}{
	TransferStatusInProgress: {},
	TransferStatusCompleted:  {},
	TransferStatusFailed:     {},
	TransferStatusUnknown:    {},
}

var transactionRequestStates = map[TransactionRequestState]struct{}{
	TransactionRequestStateReceived:   {},
	TransactionRequestStateInProgress: {},
	TransactionRequestStateAccepted:   {},
	TransactionRequestStateRejected:   {},
	TransactionRequestStateSuccess:    {},
	TransactionRequestStateFailed:     {},
}

var exportFilters = map[ExportFilter]struct{}{
	ExportFilterTransactionID:       {},
	ExportFilterPayerID:             {},
	ExportFilterPayeeID:             {},
	ExportFilterWorkflowInstanceKey: {},
	ExportFilterState:               {},
	ExportFilterErrorDescription:    {},
	ExportFilterExternalID:          {},
}

// ParseTransferStatus returns the status named by raw. An empty or
// unrecognized value is reported as absent, never as an error.
func ParseTransferStatus(raw string) (TransferStatus, bool) {
	if raw == "" {
		return "", false
	}

	status := TransferStatus(raw)
	if _, ok := transferStatuses[status]; !ok {
		slog.Warn("failed to parse transfer status, ignoring it", "status", raw)
		return "", false
	}

	return status, true
}

// ParseTransactionRequestState returns the state named by raw, or false when
// raw is empty or unrecognized.
func ParseTransactionRequestState(raw string) (TransactionRequestState, bool) {
	if raw == "" {
		return "", false
	}

	state := TransactionRequestState(raw)
	if _, ok := transactionRequestStates[state]; !ok {
		slog.Warn("failed to parse transaction request state, ignoring it", "state", raw)
		return "", false
	}

	return state, true
}

// ParseTransactionRequestStates parses every entry and drops the absent ones
func ParseTransactionRequestStates(raws []string) []TransactionRequestState {
	states := make([]TransactionRequestState, 0, len(raws))
	for _, raw := range raws {
		if state, ok := ParseTransactionRequestState(raw); ok {
			states = append(states, state)
		}
	}
	return states
}

// ParseExportFilter resolves an export body key. Keys are matched
// case-insensitively, so "payerId" and "PAYERID" are the same filter.
func ParseExportFilter(raw string) (ExportFilter, error) {
	filter := ExportFilter(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := exportFilters[filter]; !ok {
		return "", ErrInvalidExportFilter
	}
	return filter, nil
}

// ExportFilterNames lists every known export filter in a stable order
func ExportFilterNames() []string {
	names := make([]string, 0, len(exportFilters))
	for filter := range exportFilters {
		names = append(names, string(filter))
	}
	sort.Strings(names)
	return names
}

// IsValidTransferStatus checks if the transfer status is valid
func IsValidTransferStatus(status TransferStatus) bool {
	_, ok := transferStatuses[status]
	return ok
}

// IsValidTransactionRequestState checks if the transaction request state is valid
func IsValidTransactionRequestState(state TransactionRequestState) bool {
	_, ok := transactionRequestStates[state]
	return ok
}
