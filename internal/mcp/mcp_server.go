// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// childOptions are the tool parameters that describe a child.
func childOptions(genderRequired, dobRequired bool) []mcp.ToolOption {
	genderOpts := []mcp.PropertyOption{mcp.Description("Biological sex of the child."), mcp.Enum("male", "female")}
	if genderRequired {
		genderOpts = append(genderOpts, mcp.Required())
	}
	dobOpts := []mcp.PropertyOption{mcp.Description("Date of birth (YYYY-MM-DD).")}
	if dobRequired {
		dobOpts = append(dobOpts, mcp.Required())
	}
	return []mcp.ToolOption{
		mcp.WithString("gender", genderOpts...),
		mcp.WithString("dob", dobOpts...),
		mcp.WithString("date", mcp.Description("Measurement date (YYYY-MM-DD). Defaults to today.")),
		mcp.WithNumber("height", mcp.Description("Child's height or recumbent length."), mcp.Min(0)),
		mcp.WithString("height_unit", mcp.Description("Unit of the child's height. Defaults to 'cm'."), mcp.Enum("cm", "inches")),
		mcp.WithNumber("weight", mcp.Description("Child's weight."), mcp.Min(0)),
		mcp.WithString("weight_unit", mcp.Description("Unit of the child's weight. Defaults to 'kg'."), mcp.Enum("kg", "lb")),
		mcp.WithNumber("mother_height", mcp.Description("Biological mother's height."), mcp.Min(0)),
		mcp.WithNumber("father_height", mcp.Description("Biological father's height."), mcp.Min(0)),
		mcp.WithString("parent_height_unit", mcp.Description("Unit of both parental heights. Defaults to 'cm'."), mcp.Enum("cm", "inches")),
		mcp.WithBoolean("adopted", mcp.Description("Whether the child is adopted. Parental heights are then optional.")),
	}
}

// NewMCPServer initializes and configures the growth MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store *reference.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Mapmykidz Growth Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: calculate_growth ---
	growthOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Assess a child's height, weight and BMI against WHO (0-24 months) and CDC (2-20 years) growth references. Returns Z-scores, percentiles, interpretations, mid-parental height and the target range check."),
		mcp.WithString("measurements", mcp.Description("Comma separated measurements to assess: height, weight, bmi or all. Defaults to height.")),
	}, childOptions(true, true)...)
	s.AddTool(mcp.NewTool("calculate_growth", growthOpts...), h.handleCalculateGrowth)

	// --- 2. Tool: calculate_age ---
	s.AddTool(mcp.NewTool("calculate_age",
		mcp.WithDescription("Calculate a child's age in years, months, days and continuous months between two dates."),
		mcp.WithString("dob", mcp.Description("Date of birth (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("date", mcp.Description("Measurement date (YYYY-MM-DD). Defaults to today.")),
	), h.handleCalculateAge)

	// --- 3. Tool: calculate_mph ---
	mphOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Calculate the mid-parental (genetic target) height and its target range. With a date of birth and height, also checks the child's current height against the target range."),
	}, childOptions(true, false)...)
	s.AddTool(mcp.NewTool("calculate_mph", mphOpts...), h.handleCalculateMPH)

	// --- 4. Tool: convert_units ---
	s.AddTool(mcp.NewTool("convert_units",
		mcp.WithDescription("Convert a height between cm and inches or a weight between kg and lb."),
		mcp.WithNumber("value", mcp.Description("The value to convert."), mcp.Required()),
		mcp.WithString("from", mcp.Description("Source unit (cm, inches, kg, lb)."), mcp.Required()),
		mcp.WithString("to", mcp.Description("Target unit (cm, inches, kg, lb)."), mcp.Required()),
	), h.handleConvertUnits)

	// --- 5. Tool: chart_points ---
	chartOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Generate growth chart percentile curves for a metric, with the child's measurement and, on CDC height charts, the mid-parental height lines."),
		mcp.WithString("metric", mcp.Description("Chart metric. Defaults to 'height'."), mcp.Enum("height", "weight", "bmi", "weight-for-length")),
	}, childOptions(true, false)...)
	s.AddTool(mcp.NewTool("chart_points", chartOpts...), h.handleChartPoints)

	return s
}

// StartMCPServer starts the growth MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store *reference.Store) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
