package entities

import "github.com/volatiletech/null/v8"

// Transaction record types the mirror understands.
const (
	TxTypeAdCreation     = "adCreation"
	TxTypeAdCancellation = "adCancellation"
)

// TransactionRecord is the mirror's transaction row: display-unit amounts,
// written by the user's own client after a confirmed chain write.
type TransactionRecord struct {
	UserID       string  `json:"userId"`
	Type         string  `json:"type"`
	Asset        string  `json:"asset"`
	Amount       float64 `json:"amount"`
	ValueInNaira float64 `json:"valueInNaira,omitempty"`
	Status       string  `json:"status"`
	TxHash       string  `json:"txHash,omitempty"`
	Description  string  `json:"transactionDescription,omitempty"`
}

// AdRecord is the mirror's off-chain projection of an ad. AdsID carries the
// chain-assigned id and stays null when event decoding failed; the mirror
// must never receive a fabricated id.
type AdRecord struct {
	UserID          string     `json:"userId"`
	AdsID           null.Int64 `json:"adsId"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	AssetType       string     `json:"assetType"`
	PricePerUnit    string     `json:"pricePerUnit"`
	AvailableAmount float64    `json:"availableAmount"`
	MinLimit        string     `json:"minLimit,omitempty"`
	MaxLimit        string     `json:"maxLimit,omitempty"`
	PaymentMethods  []string   `json:"paymentMethods"`
	TxHash          string     `json:"txHash"`
}
