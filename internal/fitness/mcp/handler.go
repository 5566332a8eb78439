package mcp

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tron2005/markvera/internal/fitness/analysis"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service       contextService
	defaultUserID string
	location      *time.Location
}

// NewHandler builds a handler. defaultUserID is used by tool calls that omit user_id.
func NewHandler(service contextService, defaultUserID string, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:       service,
		defaultUserID: defaultUserID,
		location:      location,
	}
}

// RangeInput is the input of the tools that report over a date range.
type RangeInput struct {
	UserID   string `json:"user_id,omitempty" jsonschema:"Athlete id, defaults to the configured athlete"`
	FromDate string `json:"from_date,omitempty" jsonschema:"First reported day (YYYY-MM-DD)"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"Last reported day (YYYY-MM-DD)"`
	AsOf     string `json:"as_of,omitempty" jsonschema:"Day the series is extended to (YYYY-MM-DD), defaults to the last session"`
}

// SummaryInput is the input of get_fitness_summary.
type SummaryInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Athlete id, defaults to the configured athlete"`
	AsOf   string `json:"as_of,omitempty" jsonschema:"Day of the summary (YYYY-MM-DD), defaults to the last session"`
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) userID(in string) (string, bool) {
	if in != "" {
		return in, true
	}
	return h.defaultUserID, h.defaultUserID != ""
}

func (h *Handler) params(in RangeInput) (analysis.Params, error) {
	query := url.Values{}
	if in.FromDate != "" {
		query.Set("from", in.FromDate)
	}
	if in.ToDate != "" {
		query.Set("to", in.ToDate)
	}
	if in.AsOf != "" {
		query.Set("asOf", in.AsOf)
	}
	return analysis.ParseParams(query, h.location)
}

// GetTrainingContextTool returns the handler of get_training_context.
func (h *Handler) GetTrainingContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// GetTrainingLoadTool returns the handler of get_training_load.
func (h *Handler) GetTrainingLoadTool() func(context.Context, *mcp.CallToolRequest, RangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RangeInput) (*mcp.CallToolResult, any, error) {
		userID, ok := h.userID(in.UserID)
		if !ok {
			return errorResult("Missing user_id"), nil, nil
		}
		params, err := h.params(in)
		if err != nil {
			return errorResult("Invalid dates: use YYYY-MM-DD (" + err.Error() + ")"), nil, nil
		}
		daily, err := h.service.TrainingLoad(ctx, userID, params)
		if err != nil {
			return errorResult("Error computing training load: " + err.Error()), nil, nil
		}
		return jsonResult(daily), nil, nil
	}
}

// GetFitnessSummaryTool returns the handler of get_fitness_summary.
func (h *Handler) GetFitnessSummaryTool() func(context.Context, *mcp.CallToolRequest, SummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SummaryInput) (*mcp.CallToolResult, any, error) {
		userID, ok := h.userID(in.UserID)
		if !ok {
			return errorResult("Missing user_id"), nil, nil
		}
		params, err := h.params(RangeInput{AsOf: in.AsOf})
		if err != nil {
			return errorResult("Invalid as_of: use YYYY-MM-DD"), nil, nil
		}
		summary, err := h.service.Summary(ctx, userID, params.AsOf)
		if err != nil {
			return errorResult("Error computing summary: " + err.Error()), nil, nil
		}
		return jsonResult(summary), nil, nil
	}
}

// GetWeeklyLoadTool returns the handler of get_weekly_load.
func (h *Handler) GetWeeklyLoadTool() func(context.Context, *mcp.CallToolRequest, RangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RangeInput) (*mcp.CallToolResult, any, error) {
		userID, ok := h.userID(in.UserID)
		if !ok {
			return errorResult("Missing user_id"), nil, nil
		}
		params, err := h.params(in)
		if err != nil {
			return errorResult("Invalid dates: use YYYY-MM-DD (" + err.Error() + ")"), nil, nil
		}
		weekly, err := h.service.WeeklyLoad(ctx, userID, params)
		if err != nil {
			return errorResult("Error computing weekly load: " + err.Error()), nil, nil
		}
		return jsonResult(weekly), nil, nil
	}
}

// GetSessionLoadsTool returns the handler of get_session_loads.
func (h *Handler) GetSessionLoadsTool() func(context.Context, *mcp.CallToolRequest, RangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RangeInput) (*mcp.CallToolResult, any, error) {
		userID, ok := h.userID(in.UserID)
		if !ok {
			return errorResult("Missing user_id"), nil, nil
		}
		params, err := h.params(in)
		if err != nil {
			return errorResult("Invalid dates: use YYYY-MM-DD (" + err.Error() + ")"), nil, nil
		}
		loads, err := h.service.SessionLoads(ctx, userID, params)
		if err != nil {
			return errorResult("Error computing session loads: " + err.Error()), nil, nil
		}
		return jsonResult(loads), nil, nil
	}
}
