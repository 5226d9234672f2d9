package profile

import "time"

// Classification is the investor risk tier derived from the
// questionnaire score. Closed set; unrecognized remote payloads map to
// ClassificationUnknown instead of falling through a string switch.
type Classification string

const (
	Conservative          Classification = "Conservador"
	Moderate              Classification = "Moderado"
	Sophisticated         Classification = "Sofisticado"
	ClassificationUnknown Classification = ""
)

// ParseClassification maps a wire label to the closed enum
func ParseClassification(s string) Classification {
	switch s {
	case string(Conservative):
		return Conservative
	case string(Moderate):
		return Moderate
	case string(Sophisticated):
		return Sophisticated
	default:
		return ClassificationUnknown
	}
}

// Valid reports whether c is one of the three known tiers
func (c Classification) Valid() bool {
	switch c {
	case Conservative, Moderate, Sophisticated:
		return true
	}
	return false
}

// ESGLevel is the qualitative ESG interest level
type ESGLevel string

const (
	ESGLow    ESGLevel = "low"
	ESGMedium ESGLevel = "medium"
	ESGHigh   ESGLevel = "high"
)

// Answers maps a question identifier to the chosen option letter (a-e).
type Answers map[string]string

// QuestionnaireRecord is the durable result of one completed
// questionnaire. Immutable after creation; a redo replaces it whole.
type QuestionnaireRecord struct {
	OwnerID                string    `json:"userId"`
	Answers                Answers   `json:"answers"`
	MonthlyInvestmentValue float64   `json:"monthlyInvestmentValue"`
	CompletedAt            time.Time `json:"completedAt"`
}

// InterestProfile captures the qualitative flags detected alongside
// the numeric score.
type InterestProfile struct {
	LiquidityNeeded       bool     `json:"liquidityNeeded"`
	ESGInterest           ESGLevel `json:"esgInterest"`
	MacroeconomicConcerns []string `json:"macroeconomicConcerns"`
	RiskToleranceNotes    string   `json:"riskToleranceNotes"`
}

// Analysis is the derived investor profile. Never mutated; a rerun
// replaces it.
type Analysis struct {
	OwnerID        string          `json:"userId"`
	TotalScore     int             `json:"totalScore"`
	Classification Classification  `json:"profileClassification"`
	Interests      InterestProfile `json:"identifiedInterests"`
	AnalyzedAt     time.Time       `json:"analyzedAt"`
}
