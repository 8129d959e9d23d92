//go:build basic

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalcJSON runs a full calculation through the CLI and checks the JSON report.
func TestCalcJSON(t *testing.T) {
	out, err := runCommand(t, nil, "calc",
		"--gender", "male", "--dob", "2024-01-01", "--date", "2024-07-01",
		"--height", "67.6", "--mother-height", "165", "--father-height", "180",
		"-o", "json")
	require.NoError(t, err)

	var report struct {
		Age struct {
			AgeInDays int `json:"ageInDays"`
		} `json:"age"`
		GrowthResult struct {
			Standard string  `json:"standard"`
			ZScore   float64 `json:"zScore"`
		} `json:"growthResult"`
		MidParentalHeight struct {
			MPH float64 `json:"mph"`
		} `json:"midParentalHeight"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 182, report.Age.AgeInDays)
	assert.Equal(t, "WHO", report.GrowthResult.Standard)
	assert.InDelta(t, 0, report.GrowthResult.ZScore, 0.05)
	assert.InDelta(t, 179, report.MidParentalHeight.MPH, 1e-9)
}

func TestConvertText(t *testing.T) {
	out, err := runCommand(t, nil, "convert", "10", "lb", "kg")
	require.NoError(t, err)
	assert.Contains(t, out, "4.5")
}

func TestCalcRejectsReversedDates(t *testing.T) {
	_, err := runCommand(t, nil, "calc",
		"--gender", "male", "--dob", "2024-07-01", "--date", "2024-01-01",
		"--height", "67.6", "--mother-height", "165", "--father-height", "180")
	assert.Error(t, err)
}

// TestDBWithSQLite imports the built-in tables into a SQLite file and reads them back.
func TestDBWithSQLite(t *testing.T) {
	env := map[string]string{
		"MAPMYKIDZ_DB_BACKEND": "sqlite",
		"MAPMYKIDZ_DB_CONNECT": t.TempDir() + "/reference.db",
	}
	runDBWorkflow(t, env)
}
