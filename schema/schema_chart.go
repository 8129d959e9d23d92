package schema

// StandardPercentiles are the percentile curves drawn on every growth chart.
var StandardPercentiles = []int{3, 10, 25, 50, 75, 90, 97}

// ChartPoint is one x-axis position on a growth chart with the measurement value
// of each standard percentile curve. The MPH fields are only set on CDC height charts.
type ChartPoint struct {
	X            float64  `json:"x"`
	Label        string   `json:"label"`
	P3           float64  `json:"percentile3"`
	P10          float64  `json:"percentile10"`
	P25          float64  `json:"percentile25"`
	P50          float64  `json:"percentile50"`
	P75          float64  `json:"percentile75"`
	P90          float64  `json:"percentile90"`
	P97          float64  `json:"percentile97"`
	MPHLine      *float64 `json:"mphLine,omitempty"`
	ThrLevel1Min *float64 `json:"thrLevel1Min,omitempty"`
	ThrLevel1Max *float64 `json:"thrLevel1Max,omitempty"`
}

// Percentile returns the curve value for one of StandardPercentiles.
func (p ChartPoint) Percentile(pct int) float64 {
	switch pct {
	case 3:
		return p.P3
	case 10:
		return p.P10
	case 25:
		return p.P25
	case 75:
		return p.P75
	case 90:
		return p.P90
	case 97:
		return p.P97
	default:
		return p.P50
	}
}

// SetPercentile stores the curve value for one of StandardPercentiles.
func (p *ChartPoint) SetPercentile(pct int, v float64) {
	switch pct {
	case 3:
		p.P3 = v
	case 10:
		p.P10 = v
	case 25:
		p.P25 = v
	case 75:
		p.P75 = v
	case 90:
		p.P90 = v
	case 97:
		p.P97 = v
	default:
		p.P50 = v
	}
}

// ChartSeries is a complete chart for one metric, with the child's own
// measurement marked at its x position.
type ChartSeries struct {
	Metric   Metric         `json:"metric"`
	Standard GrowthStandard `json:"standard"`
	Gender   Gender         `json:"gender"`
	XName    string         `json:"xName"`
	YName    string         `json:"yName"`
	Points   []ChartPoint   `json:"points"`
	ChildX   float64        `json:"childX"`
	ChildY   float64        `json:"childY"`
}

// ScreeningResult holds the outcome of a screening check across all computed results.
type ScreeningResult struct {
	Passed      bool                   `json:"passed"`
	Flagged     []GrowthResult         `json:"flagged"`
	Checked     int                    `json:"checked"`
	TargetRange *TargetRangeAssessment `json:"targetRange,omitempty"`
}
