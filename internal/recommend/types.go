package recommend

import "time"

// FixedIncomeInstrument is a bond-like catalog entry (CDB, LCI,
// Tesouro Direto and friends) with its terms metadata.
type FixedIncomeInstrument struct {
	Name                    string  `json:"name"`
	InstrumentType          string  `json:"type"`
	IndexerRate             float64 `json:"indexerRate"` // percent
	Indexer                 string  `json:"indexer"`     // CDI, SELIC, IPCA
	TaxExempt               bool    `json:"isTaxExempt"`
	DailyLiquidity          bool    `json:"dailyLiquidity"`
	MaturityDate            string  `json:"maturityDate"` // ISO date
	MinimumInvestmentAmount float64 `json:"minimumInvestmentAmount"`
	Issuer                  string  `json:"issuer"`
	IssuerRiskScore         int     `json:"issuerRiskScore"` // 0-10
	Source                  string  `json:"source"`
}

// VariableIncomeInstrument is an equity-like catalog entry with its
// market snapshot.
type VariableIncomeInstrument struct {
	Ticker              string  `json:"ticket"`
	DisplayName         *string `json:"longName"`
	Currency            string  `json:"currency"`
	LogoURL             string  `json:"logoUrl"`
	MarketPrice         float64 `json:"regularMarketPrice"`
	MarketChange        float64 `json:"regularMarketChange"`
	MarketChangePercent float64 `json:"regularMarketChancePercent"`
	Score               int     `json:"score"`
}

// RecommendationSet is the tiered selection handed to the client.
// Item order follows the catalog's canonical ranking.
type RecommendationSet struct {
	FixedIncomeItems    []FixedIncomeInstrument    `json:"FixedIncomesList"`
	VariableIncomeItems []VariableIncomeInstrument `json:"VariableIncomesList"`
	LoadedAt            time.Time                  `json:"loadedAt"`
}
