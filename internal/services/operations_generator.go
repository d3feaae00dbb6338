package services

import (
	"strings"
	"time"

	"operations-api/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	businessHoursStart = 6
	businessHoursEnd   = 22
)

var (
	samplePartyIDTypes = []string{"MSISDN", "ACCOUNT_ID", "IBAN", "EMAIL"}
	sampleCurrencies   = []string{"USD", "EUR", "KES", "UGX", "TZS"}
	sampleAuthTypes    = []string{"NONE", "OTP", "PIN"}
)

type operationsGenerator struct {
	faker *gofakeit.Faker
	dfsps []string
}

// NewOperationsGenerator creates a generator of sample operations. The same
// seed always yields the same rows.
func NewOperationsGenerator(seed uint64) OperationsGeneratorInterface {
	faker := gofakeit.New(seed)

	dfsps := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		dfsps = append(dfsps, strings.ToLower(faker.Numerify("dfsp-###")))
	}

	return &operationsGenerator{
		faker: faker,
		dfsps: dfsps,
	}
}

// GenerateTransfers generates count transfers started within [from, to)
func (g *operationsGenerator) GenerateTransfers(count int, from, to time.Time) []*models.Transfer {
	transfers := make([]*models.Transfer, 0, count)

	for i := 0; i < count; i++ {
		startedAt := g.timestamp(from, to)
		status := g.transferStatus()

		transfer := &models.Transfer{
			WorkflowInstanceKey: g.faker.Numerify("22517998########"),
			TransactionID:       g.faker.UUID(),
			StartedAt:           startedAt,
			Status:              status,
			PayeeDfspID:         g.dfsp(),
			PayeePartyID:        g.faker.Numerify("##########"),
			PayeePartyIDType:    g.faker.RandomString(samplePartyIDTypes),
			PayeeFee:            decimal.Zero,
			PayerDfspID:         g.dfsp(),
			PayerPartyID:        g.faker.Numerify("##########"),
			PayerPartyIDType:    g.faker.RandomString(samplePartyIDTypes),
			PayerFee:            g.fee(),
			Amount:              g.amount(),
			Currency:            g.faker.RandomString(sampleCurrencies),
			Direction:           g.direction(),
		}

		if status != models.TransferStatusInProgress {
			completedAt := startedAt.Add(time.Duration(g.faker.IntRange(1, 120)) * time.Second)
			transfer.CompletedAt = &completedAt
		}
		if status == models.TransferStatusFailed {
			detail := g.faker.Sentence(5)
			transfer.ErrorInformation = &detail
		}

		transfers = append(transfers, transfer)
	}

	return transfers
}

// GenerateTransactionRequests generates count transaction requests started
// within [from, to). Failed and rejected requests carry an error
// description, stored quoted about half of the time.
func (g *operationsGenerator) GenerateTransactionRequests(count int, from, to time.Time) []*models.TransactionRequest {
	requests := make([]*models.TransactionRequest, 0, count)

	for i := 0; i < count; i++ {
		startedAt := g.timestamp(from, to)
		state := g.requestState()

		request := &models.TransactionRequest{
			WorkflowInstanceKey: g.faker.Numerify("22517998########"),
			TransactionID:       g.faker.UUID(),
			StartedAt:           startedAt,
			State:               state,
			PayeeDfspID:         g.dfsp(),
			PayeePartyID:        g.faker.Numerify("##########"),
			PayeePartyIDType:    g.faker.RandomString(samplePartyIDTypes),
			PayerDfspID:         g.dfsp(),
			PayerPartyID:        g.faker.Numerify("##########"),
			PayerPartyIDType:    g.faker.RandomString(samplePartyIDTypes),
			Amount:              g.amount(),
			Currency:            g.faker.RandomString(sampleCurrencies),
			Direction:           g.direction(),
			ExternalID:          g.faker.Numerify("EXT##########"),
			AuthType:            g.faker.RandomString(sampleAuthTypes),
		}

		switch state {
		case models.TransactionRequestStateReceived, models.TransactionRequestStateInProgress:
		default:
			completedAt := startedAt.Add(time.Duration(g.faker.IntRange(1, 300)) * time.Second)
			request.CompletedAt = &completedAt
		}

		if state == models.TransactionRequestStateFailed || state == models.TransactionRequestStateRejected {
			description := g.faker.Sentence(4)
			if g.faker.Bool() {
				description = `"` + description + `"`
			}
			request.ErrorDescription = &description
		}

		requests = append(requests, request)
	}

	return requests
}

// transferStatus draws 70% COMPLETED, 15% IN_PROGRESS, 10% FAILED, 5% UNKNOWN
func (g *operationsGenerator) transferStatus() models.TransferStatus {
	roll := g.faker.Float64()

	switch {
	case roll < 0.70:
		return models.TransferStatusCompleted
	case roll < 0.85:
		return models.TransferStatusInProgress
	case roll < 0.95:
		return models.TransferStatusFailed
	default:
		return models.TransferStatusUnknown
	}
}

func (g *operationsGenerator) requestState() models.TransactionRequestState {
	roll := g.faker.Float64()

	switch {
	case roll < 0.55:
		return models.TransactionRequestStateSuccess
	case roll < 0.65:
		return models.TransactionRequestStateAccepted
	case roll < 0.75:
		return models.TransactionRequestStateReceived
	case roll < 0.85:
		return models.TransactionRequestStateInProgress
	case roll < 0.93:
		return models.TransactionRequestStateFailed
	default:
		return models.TransactionRequestStateRejected
	}
}

func (g *operationsGenerator) direction() string {
	if g.faker.Bool() {
		return models.DirectionIncoming
	}
	return models.DirectionOutgoing
}

func (g *operationsGenerator) dfsp() string {
	return g.dfsps[g.faker.IntRange(0, len(g.dfsps)-1)]
}

func (g *operationsGenerator) amount() decimal.Decimal {
	return decimal.NewFromFloat(g.faker.Price(1, 5000)).Round(2)
}

func (g *operationsGenerator) fee() decimal.Decimal {
	fees := []float64{0, 0.50, 1.00, 2.50, 5.00}
	return decimal.NewFromFloat(fees[g.faker.IntRange(0, len(fees)-1)])
}

// timestamp picks a second within business hours on a random day of [from, to)
func (g *operationsGenerator) timestamp(from, to time.Time) time.Time {
	day := g.faker.DateRange(from, to).UTC()

	ts := time.Date(
		day.Year(),
		day.Month(),
		day.Day(),
		g.faker.IntRange(businessHoursStart, businessHoursEnd-1),
		g.faker.IntRange(0, 59),
		g.faker.IntRange(0, 59),
		0,
		time.UTC,
	)

	if ts.Before(from) {
		return from.UTC()
	}
	if !ts.Before(to) {
		return to.Add(-time.Second).UTC()
	}
	return ts
}
