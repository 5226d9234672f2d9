package recommend

// Deterministic sample catalogs for local mode. Mirrors the shape and
// canonical ranking of the recommender service's real catalogs.

func strPtr(s string) *string { return &s }

// SampleFixedIncome returns the built-in fixed income catalog
func SampleFixedIncome() []FixedIncomeInstrument {
	return []FixedIncomeInstrument{
		{
			Name:                    "CDB Banco Safra",
			InstrumentType:          "Certificado de Depósito Bancário",
			IndexerRate:             12.85,
			Indexer:                 "CDI",
			TaxExempt:               false,
			DailyLiquidity:          true,
			MaturityDate:            "2026-12-15",
			MinimumInvestmentAmount: 1000,
			Issuer:                  "Banco Safra S.A.",
			IssuerRiskScore:         8,
			Source:                  "Banco Safra",
		},
		{
			Name:                    "LCI Habitação Itaú",
			InstrumentType:          "Letra de Crédito Imobiliário",
			IndexerRate:             11.5,
			Indexer:                 "CDI",
			TaxExempt:               true,
			DailyLiquidity:          false,
			MaturityDate:            "2027-06-20",
			MinimumInvestmentAmount: 5000,
			Issuer:                  "Itaú Unibanco S.A.",
			IssuerRiskScore:         9,
			Source:                  "Itaú",
		},
		{
			Name:                    "Tesouro Selic 2029",
			InstrumentType:          "Tesouro Direto",
			IndexerRate:             13.25,
			Indexer:                 "SELIC",
			TaxExempt:               false,
			DailyLiquidity:          true,
			MaturityDate:            "2029-03-01",
			MinimumInvestmentAmount: 100,
			Issuer:                  "Tesouro Nacional",
			IssuerRiskScore:         10,
			Source:                  "Tesouro Direto",
		},
		{
			Name:                    "CDB Banco Inter",
			InstrumentType:          "Certificado de Depósito Bancário",
			IndexerRate:             13.1,
			Indexer:                 "CDI",
			TaxExempt:               false,
			DailyLiquidity:          true,
			MaturityDate:            "2025-12-31",
			MinimumInvestmentAmount: 500,
			Issuer:                  "Banco Inter S.A.",
			IssuerRiskScore:         7,
			Source:                  "Banco Inter",
		},
	}
}

// SampleVariableIncome returns the built-in variable income catalog
func SampleVariableIncome() []VariableIncomeInstrument {
	return []VariableIncomeInstrument{
		{
			Ticker:              "VALE3",
			DisplayName:         strPtr("Vale S.A."),
			Currency:            "BRL",
			MarketPrice:         65.42,
			MarketChange:        1.23,
			MarketChangePercent: 1.92,
			Score:               85,
		},
		{
			Ticker:              "PETR4",
			DisplayName:         strPtr("Petróleo Brasileiro S.A."),
			Currency:            "BRL",
			MarketPrice:         38.75,
			MarketChange:        -0.45,
			MarketChangePercent: -1.15,
			Score:               78,
		},
		{
			Ticker:              "ITUB4",
			DisplayName:         strPtr("Itaú Unibanco Holding S.A."),
			Currency:            "BRL",
			MarketPrice:         32.18,
			MarketChange:        0.78,
			MarketChangePercent: 2.48,
			Score:               82,
		},
		{
			Ticker:              "BBDC4",
			DisplayName:         strPtr("Banco Bradesco S.A."),
			Currency:            "BRL",
			MarketPrice:         14.85,
			MarketChange:        0.12,
			MarketChangePercent: 0.81,
			Score:               79,
		},
		{
			Ticker:              "ABEV3",
			DisplayName:         strPtr("Ambev S.A."),
			Currency:            "BRL",
			MarketPrice:         12.34,
			MarketChange:        -0.08,
			MarketChangePercent: -0.64,
			Score:               76,
		},
		{
			Ticker:              "WEGE3",
			DisplayName:         strPtr("WEG S.A."),
			Currency:            "BRL",
			MarketPrice:         45.67,
			MarketChange:        1.45,
			MarketChangePercent: 3.28,
			Score:               88,
		},
	}
}
