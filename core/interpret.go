package core

import (
	"fmt"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// Interpretation is the user facing reading of a percentile.
type Interpretation struct {
	Text     string
	Advice   string
	IsNormal bool
}

// Band indices shared by every metric.
const (
	bandVeryLow = iota // < 3
	bandLow            // [3, 10)
	bandBelow          // [10, 25)
	bandNormal         // [25, 75]
	bandAbove          // (75, 90]
	bandHigh           // (90, 97]
	bandVeryHigh       // > 97
	bandCount
)

type wording struct {
	text   [bandCount]string
	advice [bandCount]string
}

var metricWording = map[schema.Metric]wording{
	schema.WeightMetric:          weightLikeWording("weight", "weight for age", "regular physical activity"),
	schema.BMIMetric:             weightLikeWording("BMI", "BMI for age", "regular physical activity"),
	schema.WeightForLengthMetric: weightForLengthWording(),
}

// Interpret maps a percentile to interpretation text, advice and a normal flag.
func Interpret(metric schema.Metric, standard schema.GrowthStandard, percentile, zScore float64) Interpretation {
	if metric == schema.HeightMetric {
		return interpretHeight(standard, percentile, zScore)
	}
	isNormal := percentile >= 3 && percentile <= 97
	w, ok := metricWording[metric]
	if !ok {
		return Interpretation{
			Text:     fmt.Sprintf("The %s measurement is at the %.1fth percentile.", metric, percentile),
			IsNormal: isNormal,
		}
	}
	b := Band(percentile)
	return Interpretation{
		Text:     w.text[b],
		Advice:   w.advice[b],
		IsNormal: isNormal,
	}
}

// Band returns the band index of a percentile for weight, BMI and weight-for-length.
func Band(percentile float64) int {
	switch {
	case percentile < 3:
		return bandVeryLow
	case percentile < 10:
		return bandLow
	case percentile < 25:
		return bandBelow
	case percentile <= 75:
		return bandNormal
	case percentile <= 90:
		return bandAbove
	case percentile <= 97:
		return bandHigh
	default:
		return bandVeryHigh
	}
}

// HeightBand returns the band index of a percentile on the height path, whose
// edges are inclusive on the lower side.
func HeightBand(percentile float64) int {
	switch {
	case percentile >= 97:
		return bandVeryHigh
	case percentile >= 90:
		return bandHigh
	case percentile >= 75:
		return bandAbove
	case percentile >= 25:
		return bandNormal
	case percentile >= 10:
		return bandBelow
	case percentile >= 3:
		return bandLow
	default:
		return bandVeryLow
	}
}

// interpretHeight keeps isNormal true above the 97th percentile and false below the 10th.
func interpretHeight(standard schema.GrowthStandard, percentile, zScore float64) Interpretation {
	term := "height"
	if standard == schema.WHO {
		term = "length"
	}
	at := func(category string) string {
		return fmt.Sprintf("Your child's %s is at the %.1fth percentile, which means they are taller than %.1f%% of children their age and gender. This is considered %s.",
			term, percentile, percentile, category)
	}

	switch HeightBand(percentile) {
	case bandVeryHigh:
		return Interpretation{at("very tall"), "Your child is growing very well and is much taller than average. Continue regular check-ups with your healthcare provider.", true}
	case bandHigh:
		return Interpretation{at("tall"), "Your child is growing well and is taller than average. Continue monitoring growth every 6-12 months.", true}
	case bandAbove:
		return Interpretation{at("above average"), "Your child is growing well. Continue regular monitoring and maintain healthy nutrition and exercise habits.", true}
	case bandNormal:
		return Interpretation{at("normal"), "Your child is growing normally. Most children between the 10th and 90th percentile are growing well. Continue monitoring every 6-12 months.", true}
	case bandBelow:
		return Interpretation{at("below average but still within normal range"), "Your child is growing within the normal range, though below average. Monitor growth closely and consult your healthcare provider if you have concerns.", true}
	case bandLow:
		return Interpretation{at("short stature"), "Your child may have short stature. Consider consulting a pediatrician or pediatric endocrinologist for evaluation.", false}
	default:
		return Interpretation{
			fmt.Sprintf("Your child's %s is below the 3rd percentile (Z-score: %.2f), which means they are shorter than 97%% of children their age and gender. This indicates significant short stature.", term, zScore),
			"Your child has significant short stature. It is recommended to consult with a pediatrician or pediatric endocrinologist for further evaluation and possible treatment options.",
			false,
		}
	}
}

func weightLikeWording(noun, reference, activity string) wording {
	return wording{
		text: [bandCount]string{
			fmt.Sprintf("Your child's %s is below the 3rd percentile, indicating very low %s. This may require medical evaluation.", noun, reference),
			fmt.Sprintf("Your child's %s is between the 3rd and 10th percentiles, indicating low %s. Consider discussing with your healthcare provider.", noun, reference),
			fmt.Sprintf("Your child's %s is between the 10th and 25th percentiles, indicating below average %s.", noun, reference),
			fmt.Sprintf("Your child's %s is between the 25th and 75th percentiles, indicating normal %s.", noun, reference),
			fmt.Sprintf("Your child's %s is between the 75th and 90th percentiles, indicating above average %s.", noun, reference),
			fmt.Sprintf("Your child's %s is between the 90th and 97th percentiles, indicating high %s. Consider discussing with your healthcare provider.", noun, reference),
			fmt.Sprintf("Your child's %s is above the 97th percentile, indicating very high %s. This may require medical evaluation.", noun, reference),
		},
		advice: [bandCount]string{
			fmt.Sprintf("Consult with your healthcare provider immediately. Very low %s may indicate underlying health issues or nutritional concerns that need medical attention.", noun),
			fmt.Sprintf("Schedule a visit with your healthcare provider to discuss your child's %s. They can help identify potential causes and develop a plan for healthy weight gain.", noun),
			fmt.Sprintf("Monitor your child's %s regularly. Ensure they are eating a balanced diet with adequate calories and nutrients. Consider consulting with a pediatrician if concerns persist.", noun),
			fmt.Sprintf("Your child's %s is within the normal range. Continue providing a balanced diet and %s to maintain healthy growth.", noun, activity),
			fmt.Sprintf("Your child's %s is above average but still within a healthy range. Focus on balanced nutrition and %s.", noun, activity),
			fmt.Sprintf("Consider discussing your child's %s with your healthcare provider. They can help develop strategies for healthy weight management through diet and exercise.", noun),
			fmt.Sprintf("Consult with your healthcare provider immediately. Very high %s may indicate health risks that require medical evaluation and intervention.", noun),
		},
	}
}

func weightForLengthWording() wording {
	w := weightLikeWording("weight-for-length", "weight for their length", "age-appropriate physical activity")
	w.text[bandHigh] = "Your child's weight-for-length is between the 90th and 97th percentiles, indicating elevated weight for their length. Continue monitoring growth patterns and discuss with your healthcare provider if concerns arise."
	w.advice[bandHigh] = "Continue monitoring your child's growth patterns. Ensure balanced nutrition and age-appropriate physical activity. Discuss with your healthcare provider if this pattern continues or if you have concerns."
	w.advice[bandVeryHigh] = "Consult with your healthcare provider immediately. Very high weight-for-length may indicate health concerns that need medical evaluation and intervention."
	return w
}
