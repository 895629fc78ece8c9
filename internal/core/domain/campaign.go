package domain

import "github.com/shopspring/decimal"

// Campaign is the fundraising campaign read model.
type Campaign struct {
	CampainName                 string          `json:"CampainName"`
	MinimumAmountForMemorialDay decimal.Decimal `json:"minimumAmountForMemorialDay"`
}
