package models

import "time"

// TokenRecord holds the metadata and all-time-high data returned by the
// provider's contract-lookup endpoint. Immutable once built.
type TokenRecord struct {
	Name            string     `json:"name"`
	Symbol          string     `json:"symbol"`
	ATHPriceUSD     float64    `json:"athPriceUsd"`
	ATHDate         time.Time  `json:"athDate"`
	GenesisDate     *time.Time `json:"genesisDate,omitempty"`
	ContractAddress string     `json:"contractAddress"`
	CoinID          string     `json:"coinId"`
}

// HistoricalQuote is the provider's point-in-time USD price for a coin
// on a given calendar date.
type HistoricalQuote struct {
	PriceUSD  float64   `json:"priceUsd"`
	QueryDate time.Time `json:"queryDate"`
}
