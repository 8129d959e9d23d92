package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   *reference.Store
}

// configFromRequest runs the tool arguments through the same parsing and
// validation as the command line flags.
func (h *toolHandler) configFromRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	parentUnit := request.GetString("parent_height_unit", "")
	precision := h.baseCfg.Precision
	if precision == 0 {
		precision = contract.DefaultPrecision
	}
	input := &contract.ConfigRawInput{
		Gender:           request.GetString("gender", ""),
		DOB:              request.GetString("dob", ""),
		Date:             request.GetString("date", ""),
		Height:           request.GetFloat("height", 0),
		HeightUnit:       request.GetString("height_unit", ""),
		Weight:           request.GetFloat("weight", 0),
		WeightUnit:       request.GetString("weight_unit", ""),
		MotherHeight:     request.GetFloat("mother_height", 0),
		FatherHeight:     request.GetFloat("father_height", 0),
		MotherHeightUnit: parentUnit,
		FatherHeightUnit: parentUnit,
		Adopted:          request.GetBool("adopted", false),
		Measurements:     request.GetString("measurements", ""),
		Metric:           request.GetString("metric", ""),
		Output:           string(contract.DefaultOutput),
		Precision:        precision,
		Color:            "no",
	}
	cfg := h.baseCfg.Clone()
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// jsonResult marshals a tool payload.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCalculateGrowth(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, err := core.Calculate(h.store, cfg.Child)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calculation failed: %v", err)), nil
	}
	contract.Logger().With("source", contract.SourceMCP).Debug("calculated", "results", len(results.Results()))
	return jsonResult(results)
}

func (h *toolHandler) handleCalculateAge(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if cfg.Child.DateOfBirth == "" {
		return mcp.NewToolResultError("invalid parameters: dob is required"), nil
	}

	age, err := algo.CalculateAge(cfg.Child.DateOfBirth, cfg.Child.MeasurementDate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("age calculation failed: %v", err)), nil
	}
	return jsonResult(age)
}

func (h *toolHandler) handleCalculateMPH(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	mph, target, err := core.AssessMidParentalHeight(h.store, cfg.Child)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mid-parental height failed: %v", err)), nil
	}
	return jsonResult(map[string]any{
		"midParentalHeight": mph,
		"targetRange":       target,
	})
}

func (h *toolHandler) handleConvertUnits(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conv, err := core.Convert(
		request.GetFloat("value", 0),
		request.GetString("from", ""),
		request.GetString("to", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}
	return jsonResult(conv)
}

func (h *toolHandler) handleChartPoints(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	series, err := core.ChartSeriesForChild(h.store, cfg.Child, cfg.Metric)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart failed: %v", err)), nil
	}
	return jsonResult(series)
}
