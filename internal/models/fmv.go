package models

// Confidence classifies how much weight the crowd estimate deserves. It is
// a pure function of guess count.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Distribution holds the percentile spread of guessed prices. Min and Max
// are raw order statistics; the percentiles are linearly interpolated.
type Distribution struct {
	Min float64 `json:"min"`
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	Max float64 `json:"max"`
}

// FmvResult is the crowd fair-market-value snapshot for one property.
// It is derived on every read and never persisted. Value and Distribution
// are absent when the property has no guesses; Divergence is absent when
// either the asking price or the estimate is missing.
type FmvResult struct {
	Value         *float64      `json:"value,omitempty"`
	Confidence    Confidence    `json:"confidence"`
	Distribution  *Distribution `json:"distribution,omitempty"`
	AssessedValue *float64      `json:"assessed_value,omitempty"`
	AskingPrice   *float64      `json:"asking_price,omitempty"`
	Divergence    *float64      `json:"divergence,omitempty"`
	GuessCount    int           `json:"guess_count"`
}
