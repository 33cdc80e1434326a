package models

import "time"

// Lookup is one completed ATH query, persisted for history/audit.
// Historical fields are nil when the user skipped the comparison step.
type Lookup struct {
	ID                 int64      `json:"id"`
	ContractAddress    string     `json:"contractAddress"`
	CoinID             string     `json:"coinId"`
	Name               string     `json:"name"`
	Symbol             string     `json:"symbol"`
	ATHPriceUSD        float64    `json:"athPriceUsd"`
	ATHDate            time.Time  `json:"athDate"`
	HistoricalPriceUSD *float64   `json:"historicalPriceUsd,omitempty"`
	HistoricalDate     *time.Time `json:"historicalDate,omitempty"`
	ReturnPercent      *float64   `json:"returnPercent,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}
