package review

import "math"

// Category grades an overall commit review.
type Category string

// Review categories. A and B allow the commit, C blocks it.
const (
	CategoryExcellent  Category = "A"
	CategoryAcceptable Category = "B"
	CategoryFailed     Category = "C"
)

// Coefficients weigh each quality tier per line.
type Coefficients struct {
	Excellent float64 `json:"excellent"`
	OK        float64 `json:"ok"`
	Bad       float64 `json:"bad"`
}

// Thresholds define the minimum percentage for each passing category.
type Thresholds struct {
	A float64 `json:"A"`
	B float64 `json:"B"`
}

// DefaultCoefficients rewards excellent lines, half-credits ok lines, and
// penalises bad lines harder than an excellent line earns.
var DefaultCoefficients = Coefficients{Excellent: 1.0, OK: 0.5, Bad: -1.5}

// DefaultThresholds mark >=70% as A and >=40% as B; anything below is C.
var DefaultThresholds = Thresholds{A: 70, B: 40}

// Result is the aggregated outcome of scoring one diff.
type Result struct {
	Raw        float64
	Max        float64
	Percentage float64
	Category   Category
}

// AllowCommit reports whether the commit passes the quality gate.
func (r Result) AllowCommit() bool {
	return r.Category != CategoryFailed
}

// Points returns the rating points to persist. Heavily penalised diffs can
// drive the percentage negative; points are floored at zero while the
// category still reflects the failure.
func (r Result) Points() int {
	points := int(math.Round(r.Percentage))
	if points < 0 {
		return 0
	}

	return points
}

// DisplayScore returns the percentage rounded to one decimal place for
// client display.
func (r Result) DisplayScore() float64 {
	return math.Round(r.Percentage*10) / 10
}

// Scorer converts tier counts into a weighted score and category.
type Scorer struct {
	coefficients Coefficients
	thresholds   Thresholds
}

// NewScorer builds a scorer with the provided weights and thresholds.
func NewScorer(coefficients Coefficients, thresholds Thresholds) Scorer {
	return Scorer{coefficients: coefficients, thresholds: thresholds}
}

// NewDefaultScorer builds a scorer using the production constants.
func NewDefaultScorer() Scorer {
	return NewScorer(DefaultCoefficients, DefaultThresholds)
}

// Coefficients exposes the configured per-line weights.
func (s Scorer) Coefficients() Coefficients {
	return s.coefficients
}

// Thresholds exposes the configured category thresholds.
func (s Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Score aggregates the classifier's tier counts against the number of
// candidate lines in the diff. The classifier's counts are trusted even if
// their sum disagrees with totalLines; the maximum score always derives
// from the counted lines. The percentage is deliberately not clamped
// before the category comparison, so a diff dominated by bad lines can
// land far below zero and still resolves to category C.
func (s Scorer) Score(analysis Analysis, totalLines int) Result {
	raw := float64(analysis.Excellent)*s.coefficients.Excellent +
		float64(analysis.OK)*s.coefficients.OK +
		float64(analysis.Bad)*s.coefficients.Bad

	max := float64(totalLines) * s.coefficients.Excellent

	percentage := 100.0
	if max > 0 {
		percentage = raw / max * 100
	}

	category := CategoryFailed
	switch {
	case percentage >= s.thresholds.A:
		category = CategoryExcellent
	case percentage >= s.thresholds.B:
		category = CategoryAcceptable
	}

	return Result{
		Raw:        raw,
		Max:        max,
		Percentage: percentage,
		Category:   category,
	}
}
