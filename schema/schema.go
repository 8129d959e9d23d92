// Package schema has the models and enumerations shared by every part of mapmykidz.
package schema

// LMSPoint is one row of a reference table. X is the age in months for age-based
// tables and the recumbent length in centimeters for weight-for-length tables.
type LMSPoint struct {
	X float64 `json:"x"`
	L float64 `json:"l"` // Box-Cox power (skewness)
	M float64 `json:"m"` // median
	S float64 `json:"s"` // coefficient of variation
}

// LMSTable is an ordered sequence of reference points with strictly increasing X.
type LMSTable []LMSPoint

// AgeCalculation holds chronological age derived from two calendar dates.
// AgeInMonths is the continuous value used for every table lookup; the
// year and month fields are for display only.
type AgeCalculation struct {
	AgeYears    int     `json:"ageYears"`
	AgeMonths   int     `json:"ageMonths"`
	AgeInMonths float64 `json:"ageInMonths"`
	AgeInDays   int     `json:"ageInDays"`
}

// GrowthResult is the assessment of a single measurement against its reference table.
type GrowthResult struct {
	Metric         Metric         `json:"metric"`
	ZScore         float64        `json:"zScore"`
	Percentile     float64        `json:"percentile"`
	Standard       GrowthStandard `json:"standard"`
	Interpretation string         `json:"interpretation"`
	Advice         string         `json:"advice"`
	IsNormal       bool           `json:"isNormal"`
}

// MidParentalHeight holds the genetic target height and its range, each with a
// Z-score against adult (240 month) CDC stature. The level 2 fields are reserved
// and never populated.
type MidParentalHeight struct {
	MPH                float64  `json:"mph"`
	ThrLevel1Min       float64  `json:"thrLevel1Min"`
	ThrLevel1Max       float64  `json:"thrLevel1Max"`
	MPHZScore          float64  `json:"mphZScore"`
	ThrLevel1MinZScore float64  `json:"thrLevel1MinZScore"`
	ThrLevel1MaxZScore float64  `json:"thrLevel1MaxZScore"`
	ThrLevel2Min       *float64 `json:"thrLevel2Min,omitempty"`
	ThrLevel2Max       *float64 `json:"thrLevel2Max,omitempty"`
	ThrLevel2MinZScore *float64 `json:"thrLevel2MinZScore,omitempty"`
	ThrLevel2MaxZScore *float64 `json:"thrLevel2MaxZScore,omitempty"`
}

// TargetRangeAssessment compares the child's current height with the target
// range projected back to the child's age.
type TargetRangeAssessment struct {
	AgeInMonths float64 `json:"ageInMonths"`
	HeightCm    float64 `json:"heightCm"`
	MinCm       float64 `json:"minCm"`
	MaxCm       float64 `json:"maxCm"`
	Within      bool    `json:"within"`
	Message     string  `json:"message"`
}

// ChildData is the raw input to a calculation, with units as entered.
// A zero Weight or parental height means the value was not supplied.
type ChildData struct {
	Gender               Gender     `json:"gender"`
	DateOfBirth          string     `json:"dateOfBirth"`
	MeasurementDate      string     `json:"measurementDate"`
	Height               float64    `json:"height"`
	HeightUnit           HeightUnit `json:"heightUnit"`
	Weight               float64    `json:"weight,omitempty"`
	WeightUnit           WeightUnit `json:"weightUnit,omitempty"`
	MotherHeight         float64    `json:"motherHeight,omitempty"`
	FatherHeight         float64    `json:"fatherHeight,omitempty"`
	MotherHeightUnit     HeightUnit `json:"motherHeightUnit,omitempty"`
	FatherHeightUnit     HeightUnit `json:"fatherHeightUnit,omitempty"`
	IsAdopted            bool       `json:"isAdopted,omitempty"`
	SelectedMeasurements []Metric   `json:"selectedMeasurements"`
}

// HasMeasurement reports whether the metric was requested. An empty selection means height only.
func (c ChildData) HasMeasurement(m Metric) bool {
	if len(c.SelectedMeasurements) == 0 {
		return m == HeightMetric
	}
	for _, sel := range c.SelectedMeasurements {
		if sel == m {
			return true
		}
	}
	return false
}

// CalculationResults is the full output of one calculation.
type CalculationResults struct {
	ChildData             ChildData              `json:"childData"`
	Age                   AgeCalculation         `json:"age"`
	GrowthResult          GrowthResult           `json:"growthResult"`
	WeightResult          *GrowthResult          `json:"weightResult,omitempty"`
	BMI                   *float64               `json:"bmi,omitempty"`
	BMIResult             *GrowthResult          `json:"bmiResult,omitempty"`
	WeightForLengthResult *GrowthResult          `json:"weightForLengthResult,omitempty"`
	MidParentalHeight     *MidParentalHeight     `json:"midParentalHeight,omitempty"`
	TargetRange           *TargetRangeAssessment `json:"targetRange,omitempty"`
	ChartData             []ChartPoint           `json:"chartData"`
}

// Results returns every computed growth result in display order. The height
// result is skipped when no height was measured.
func (r *CalculationResults) Results() []GrowthResult {
	var out []GrowthResult
	if r.GrowthResult.Metric != "" {
		out = append(out, r.GrowthResult)
	}
	for _, gr := range []*GrowthResult{r.WeightResult, r.BMIResult, r.WeightForLengthResult} {
		if gr != nil {
			out = append(out, *gr)
		}
	}
	return out
}

// UnitConversion is the result of converting a height or weight between units.
type UnitConversion struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}
