package dto

// TransferQuery holds the raw transfer filter parameters exactly as received
type TransferQuery struct {
	PayerPartyID  string `query:"payerPartyId"`
	PayerDfspID   string `query:"payerDfspId"`
	PayeePartyID  string `query:"payeePartyId"`
	PayeeDfspID   string `query:"payeeDfspId"`
	TransactionID string `query:"transactionId"`
	Status        string `query:"status"`
	Amount        string `query:"amount" validate:"omitempty,decimal_amount"`
	Currency      string `query:"currency"`
	StartFrom     string `query:"startFrom"`
	StartTo       string `query:"startTo"`
	Direction     string `query:"direction"`
	PartyID       string `query:"partyId"`
	PartyIDType   string `query:"partyIdType"`
}

// TransactionRequestQuery holds the raw transaction request filter parameters
type TransactionRequestQuery struct {
	PayerPartyID  string `query:"payerPartyId"`
	PayerDfspID   string `query:"payerDfspId"`
	PayeePartyID  string `query:"payeePartyId"`
	PayeeDfspID   string `query:"payeeDfspId"`
	TransactionID string `query:"transactionId"`
	State         string `query:"state"`
	Amount        string `query:"amount" validate:"omitempty,decimal_amount"`
	Currency      string `query:"currency"`
	StartFrom     string `query:"startFrom"`
	StartTo       string `query:"startTo"`
	Direction     string `query:"direction"`
}

// ExportQuery holds the shared filters applied to every export key
type ExportQuery struct {
	State     string `query:"state"`
	StartFrom string `query:"startFrom"`
	StartTo   string `query:"startTo"`
}

// PageParams contains pagination and sort parameters
type PageParams struct {
	Page        int    `json:"page" validate:"min=0"`
	Size        int    `json:"size" validate:"gt=0"`
	SortedBy    string `json:"sortedBy" validate:"omitempty,sort_field"`
	SortedOrder string `json:"sortedOrder" validate:"required,sort_order"`
}
