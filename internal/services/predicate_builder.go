package services

import (
	"operations-api/internal/models"
	"operations-api/internal/predicate"
)

// BuildTransferPredicate composes every present transfer filter into one
// conjunction. No filters yields nil, which matches all rows.
func BuildTransferPredicate(f models.TransferFilters) predicate.Predicate {
	var nodes []predicate.Predicate

	nodes = appendEq(nodes, models.ColumnPayerPartyID, f.PayerPartyID)
	nodes = appendEq(nodes, models.ColumnPayeePartyID, f.PayeePartyID)
	nodes = appendEq(nodes, models.ColumnPayerDfspID, f.PayerDfspID)
	nodes = appendEq(nodes, models.ColumnPayeeDfspID, f.PayeeDfspID)
	nodes = appendEq(nodes, models.ColumnTransactionID, f.TransactionID)
	nodes = appendEq(nodes, models.ColumnStatus, string(f.Status))
	nodes = appendEq(nodes, models.ColumnCurrency, f.Currency)
	nodes = appendEq(nodes, models.ColumnDirection, f.Direction)

	if f.Amount != nil {
		nodes = append(nodes, predicate.Eq(models.ColumnAmount, *f.Amount))
	}

	if f.PartyID != "" {
		nodes = append(nodes, predicate.AnyOf(f.PartyID, models.ColumnPayerPartyID, models.ColumnPayeePartyID))
	}
	if f.PartyIDType != "" {
		nodes = append(nodes, predicate.AnyOf(f.PartyIDType, models.ColumnPayerPartyIDType, models.ColumnPayeePartyIDType))
	}

	nodes = append(nodes, predicate.TimeRange(models.ColumnStartedAt, f.StartFrom, f.StartTo))

	return predicate.And(nodes...)
}

// BuildTransactionRequestPredicate composes every present transaction
// request filter into one conjunction. No filters yields nil.
func BuildTransactionRequestPredicate(f models.TransactionRequestFilters) predicate.Predicate {
	var nodes []predicate.Predicate

	nodes = appendEq(nodes, models.ColumnPayerPartyID, f.PayerPartyID)
	nodes = appendEq(nodes, models.ColumnPayeePartyID, f.PayeePartyID)
	nodes = appendEq(nodes, models.ColumnPayerDfspID, f.PayerDfspID)
	nodes = appendEq(nodes, models.ColumnPayeeDfspID, f.PayeeDfspID)
	nodes = appendEq(nodes, models.ColumnTransactionID, f.TransactionID)
	nodes = appendEq(nodes, models.ColumnState, string(f.State))
	nodes = appendEq(nodes, models.ColumnCurrency, f.Currency)
	nodes = appendEq(nodes, models.ColumnDirection, f.Direction)

	if f.Amount != nil {
		nodes = append(nodes, predicate.Eq(models.ColumnAmount, *f.Amount))
	}

	nodes = append(nodes, predicate.TimeRange(models.ColumnStartedAt, f.StartFrom, f.StartTo))

	return predicate.And(nodes...)
}

func appendEq(nodes []predicate.Predicate, column, value string) []predicate.Predicate {
	if value == "" {
		return nodes
	}
	return append(nodes, predicate.Eq(column, value))
}
