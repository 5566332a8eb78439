package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the training load tools.
// It is mounted at /mcp by internal/server and served over stdio by cmd/trainingload_mcp.
func NewServer(schemaRepo SchemaRepo, metrics MetricsService, defaultUserID string, location *time.Location) *mcp.Server {
	svc := NewContextService(schemaRepo, metrics)
	h := NewHandler(svc, defaultUserID, location)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "markvera-trainingload",
		Version: "1.0.0",
	}, nil)

	if schemaRepo != nil {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "get_training_context",
			Description: "Returns the DB schema of the training tables (strava, garmin, manual and FIT activities, profiles, resting heart rate): columns, types, nullable, default.",
		}, h.GetTrainingContextTool())
	}

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_load",
		Description: "Returns the daily training load series: load, ATL (fatigue), CTL (fitness), TSB (form), VO2max estimate and low confidence flag per day. Optional: user_id, from_date, to_date, as_of (YYYY-MM-DD). Use for trends over time.",
	}, h.GetTrainingLoadTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fitness_summary",
		Description: "Returns the latest fitness state: CTL, ATL, TSB, form (fresh, productive, overreaching...), VO2max, last week load, monotony warning and marathon shape (0-100). Optional: user_id, as_of (YYYY-MM-DD).",
	}, h.GetFitnessSummaryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_load",
		Description: "Returns weekly totals (Monday weeks) with monotony and strain. Optional: user_id, from_date, to_date, as_of (YYYY-MM-DD). Use when judging week to week progression or too uniform training.",
	}, h.GetWeeklyLoadTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_session_loads",
		Description: "Returns the training impulse of every session with its sport, zone and low confidence flag. Optional: user_id, from_date, to_date, as_of (YYYY-MM-DD).",
	}, h.GetSessionLoadsTool())

	return s
}
