package schema

// Custom string types for type safety.
type (
	// Gender represents the biological sex used to select reference tables.
	Gender string

	// HeightUnit represents the unit a length or height is measured in.
	HeightUnit string

	// WeightUnit represents the unit a weight is measured in.
	WeightUnit string

	// GrowthStandard represents the reference population a table was derived from.
	GrowthStandard string

	// Metric represents the anthropometric quantity being assessed.
	Metric string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database holding reference tables.
	DatabaseBackend string
)

// All genders supported.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// All height units supported.
const (
	Centimeters HeightUnit = "cm"
	Inches      HeightUnit = "inches"
)

// All weight units supported.
const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lb"
)

// All growth standards supported.
const (
	WHO GrowthStandard = "WHO" // 0-24 months
	CDC GrowthStandard = "CDC" // 24-240 months
)

// All metrics supported.
const (
	HeightMetric          Metric = "height"
	WeightMetric          Metric = "weight"
	BMIMetric             Metric = "bmi"
	WeightForLengthMetric Metric = "weight-for-length"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
)

// All database backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// AllMetrics returns a list of all supported metrics.
var AllMetrics = []Metric{HeightMetric, WeightMetric, BMIMetric, WeightForLengthMetric}

// AllGenders returns a list of all supported genders.
var AllGenders = []Gender{Male, Female}

// ValidGenders lists all valid genders.
var ValidGenders = map[Gender]struct{}{
	Male:   {},
	Female: {},
}

// ValidHeightUnits lists all valid height units.
var ValidHeightUnits = map[HeightUnit]struct{}{
	Centimeters: {},
	Inches:      {},
}

// ValidWeightUnits lists all valid weight units.
var ValidWeightUnits = map[WeightUnit]struct{}{
	Kilograms: {},
	Pounds:    {},
}

// ValidStandards lists all valid growth standards.
var ValidStandards = map[GrowthStandard]struct{}{
	WHO: {},
	CDC: {},
}

// ValidMetrics lists all valid metrics.
var ValidMetrics = map[Metric]struct{}{
	HeightMetric:          {},
	WeightMetric:          {},
	BMIMetric:             {},
	WeightForLengthMetric: {},
}

// SelectableMeasurements lists the metrics a caller may request on a calculation.
// Weight-for-length is derived automatically for infants in place of BMI.
var SelectableMeasurements = map[Metric]struct{}{
	HeightMetric: {},
	WeightMetric: {},
	BMIMetric:    {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	HTMLOut:    {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
