package profile

import (
	"errors"
	"fmt"
	"sort"
)

// ErrValidation marks rejected scoring input.
var ErrValidation = errors.New("validation error")

// ValidationError describes a malformed answer set.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid questionnaire input: %s", e.Reason)
}

// Is reports ErrValidation so errors.Is(err, ErrValidation) matches.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Classification thresholds on the summed score. Upper bounds are
// inclusive: 15 is still Conservative, 25 is still Moderate.
const (
	conservativeMaxScore = 15
	moderateMaxScore     = 25
)

// Monthly contribution at which ESG interest is forced high and the
// international diversification concern is added.
const highValueMonthlyThreshold = 10000

// Question whose "a" answer signals a need for daily liquidity.
const liquidityQuestionID = "q2"

// Concern tags appended during interest detection.
const (
	macroConcernTag         = "cenários macroeconômicos"
	internationalConcernTag = "diversificação internacional"
)

// Per-tier risk tolerance notes.
var riskNotesByTier = map[Classification]string{
	Conservative:  "Prefere segurança e baixa volatilidade. Foco na preservação do capital.",
	Moderate:      "Busca equilíbrio entre risco e retorno. Tolerância moderada a oscilações.",
	Sophisticated: "Alta tolerância ao risco. Busca maximizar retornos com estratégias avançadas.",
}

// Score derives the investor profile from raw questionnaire answers
// and the monthly contribution. Pure and deterministic; OwnerID and
// AnalyzedAt are filled by the caller.
//
// Each answer letter scores its 1-based ordinal (a=1 .. e=5) and the
// ordinals are summed. Interests are detected over the same answers,
// independently of the score.
func Score(answers Answers, monthlyValue float64) (Analysis, error) {
	if len(answers) == 0 {
		return Analysis{}, &ValidationError{Reason: "empty answer set"}
	}
	if monthlyValue < 0 {
		return Analysis{}, &ValidationError{Reason: "negative monthly investment value"}
	}

	totalScore := 0
	interests := InterestProfile{
		ESGInterest:           ESGLow,
		MacroeconomicConcerns: []string{},
	}
	concernSeen := map[string]bool{}
	addConcern := func(tag string) {
		if !concernSeen[tag] {
			concernSeen[tag] = true
			interests.MacroeconomicConcerns = append(interests.MacroeconomicConcerns, tag)
		}
	}

	// Iterate in sorted question order so concern ordering is stable
	// across runs (map iteration order is not).
	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	for _, question := range questions {
		answer := answers[question]
		if len(answer) != 1 || answer[0] < 'a' || answer[0] > 'e' {
			return Analysis{}, &ValidationError{
				Reason: fmt.Sprintf("question %s: unrecognized answer %q (expected a-e)", question, answer),
			}
		}

		// a=1, b=2, c=3, d=4, e=5
		totalScore += int(answer[0]-'a') + 1

		if question == liquidityQuestionID && answer == "a" {
			interests.LiquidityNeeded = true
		}
		if answer == "d" {
			interests.ESGInterest = ESGHigh
		}
		if answer == "e" {
			addConcern(macroConcernTag)
		}
	}

	classification := classify(totalScore)

	// High monthly contributions override the per-answer ESG signal.
	if monthlyValue >= highValueMonthlyThreshold {
		interests.ESGInterest = ESGHigh
		addConcern(internationalConcernTag)
	}

	interests.RiskToleranceNotes = riskNotesByTier[classification]

	return Analysis{
		TotalScore:     totalScore,
		Classification: classification,
		Interests:      interests,
	}, nil
}

// classify maps the summed score to a tier
func classify(totalScore int) Classification {
	switch {
	case totalScore <= conservativeMaxScore:
		return Conservative
	case totalScore <= moderateMaxScore:
		return Moderate
	default:
		return Sophisticated
	}
}
