package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"operations-api/internal/dto"
	"operations-api/internal/models"

	"github.com/shopspring/decimal"
)

const (
	dateOnlyLayout = "2006-01-02"
	encodedPlus    = "%2B"
)

var ErrInvalidAmount = errors.New("invalid amount")

// FilterParser converts raw, loosely-typed filter strings into typed filters.
// Malformed optional values degrade to "no filter" with a warning.
type FilterParser struct {
	dateLayout string
}

// NewFilterParser creates a parser for the given date-time layout
func NewFilterParser(dateLayout string) *FilterParser {
	return &FilterParser{dateLayout: dateLayout}
}

// TransferFilters parses the raw transfer query
func (p *FilterParser) TransferFilters(q dto.TransferQuery) (models.TransferFilters, error) {
	filters := models.TransferFilters{
		PayerPartyID:  DecodeIdentifier(q.PayerPartyID),
		PayeePartyID:  DecodeIdentifier(q.PayeePartyID),
		PayerDfspID:   q.PayerDfspID,
		PayeeDfspID:   q.PayeeDfspID,
		TransactionID: q.TransactionID,
		Currency:      q.Currency,
		Direction:     q.Direction,
		PartyID:       DecodeIdentifier(q.PartyID),
		PartyIDType:   q.PartyIDType,
	}

	if status, ok := models.ParseTransferStatus(q.Status); ok {
		filters.Status = status
	}

	amount, err := parseAmount(q.Amount)
	if err != nil {
		return filters, err
	}
	filters.Amount = amount

	filters.StartFrom, filters.StartTo = p.DateRange(q.StartFrom, q.StartTo)

	return filters, nil
}

// TransactionRequestFilters parses the raw transaction request query
func (p *FilterParser) TransactionRequestFilters(q dto.TransactionRequestQuery) (models.TransactionRequestFilters, error) {
	filters := models.TransactionRequestFilters{
		PayerPartyID:  DecodeIdentifier(q.PayerPartyID),
		PayeePartyID:  DecodeIdentifier(q.PayeePartyID),
		PayerDfspID:   q.PayerDfspID,
		PayeeDfspID:   q.PayeeDfspID,
		TransactionID: q.TransactionID,
		Currency:      q.Currency,
		Direction:     q.Direction,
	}

	if state, ok := models.ParseTransactionRequestState(q.State); ok {
		filters.State = state
	}

	amount, err := parseAmount(q.Amount)
	if err != nil {
		return filters, err
	}
	filters.Amount = amount

	filters.StartFrom, filters.StartTo = p.DateRange(q.StartFrom, q.StartTo)

	return filters, nil
}

// DateRange parses the optional startFrom/startTo bounds. When any supplied
// bound fails to parse the whole range is dropped and both results are nil.
// A bare-date startTo covers the whole day.
func (p *FilterParser) DateRange(startFrom, startTo string) (*time.Time, *time.Time) {
	if startFrom == "" && startTo == "" {
		return nil, nil
	}

	var from, to *time.Time

	if startFrom != "" {
		t, _, err := p.parseDate(startFrom)
		if err != nil {
			slog.Warn("failed to parse dates, ignoring range", "start_from", startFrom, "start_to", startTo)
			return nil, nil
		}
		from = &t
	}

	if startTo != "" {
		t, dateOnly, err := p.parseDate(startTo)
		if err != nil {
			slog.Warn("failed to parse dates, ignoring range", "start_from", startFrom, "start_to", startTo)
			return nil, nil
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}

	return from, to
}

// parseDate parses raw with the configured layout. A bare date is accepted
// as midnight UTC of that day and reported as dateOnly.
func (p *FilterParser) parseDate(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)

	t, err = time.Parse(p.dateLayout, raw)
	if err == nil {
		return t.UTC(), p.dateLayout == dateOnlyLayout, nil
	}

	if len(raw) == len(dateOnlyLayout) {
		if day, dateErr := time.Parse(dateOnlyLayout, raw); dateErr == nil {
			return day.UTC(), true, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("invalid date %q: %w", raw, err)
}

// DecodeIdentifier decodes an identifier that still carries an escaped '+'
// ("%2B"), which happens when a '+' was escaped twice on its way through a
// query string. Decoding failures keep the raw value.
func DecodeIdentifier(raw string) string {
	if !strings.Contains(strings.ToUpper(raw), encodedPlus) {
		return raw
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		slog.Warn("failed to decode identifier, using raw value", "value", raw, "error", err)
		return raw
	}

	slog.Debug("decoded identifier", "raw", raw, "decoded", decoded)
	return decoded
}

func parseAmount(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, raw)
	}

	return &amount, nil
}
