package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tron2005/markvera/internal/fitness/analysis"
	"github.com/tron2005/markvera/internal/trainingload"
)

// MetricsService is the part of analysis.Service the tools read from.
type MetricsService interface {
	Metrics(ctx context.Context, userID string, params analysis.Params) (trainingload.MetricsResult, error)
	Summary(ctx context.Context, userID string, asOf *time.Time) (trainingload.Summary, error)
	Weekly(ctx context.Context, userID string, params analysis.Params) ([]trainingload.WeeklyMetric, error)
	SessionLoads(ctx context.Context, userID string, params analysis.Params) ([]trainingload.SessionLoad, error)
}

// contextService is what Handler depends on, kept small for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	TrainingLoad(ctx context.Context, userID string, params analysis.Params) ([]trainingload.DailyMetric, error)
	Summary(ctx context.Context, userID string, asOf *time.Time) (trainingload.Summary, error)
	WeeklyLoad(ctx context.Context, userID string, params analysis.Params) ([]trainingload.WeeklyMetric, error)
	SessionLoads(ctx context.Context, userID string, params analysis.Params) ([]trainingload.SessionLoad, error)
}

type ContextService struct {
	schema  SchemaRepo
	metrics MetricsService
}

// NewContextService builds a ContextService. A nil schema repo disables the schema tool.
func NewContextService(schemaRepo SchemaRepo, metrics MetricsService) *ContextService {
	return &ContextService{
		schema:  schemaRepo,
		metrics: metrics,
	}
}

func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	if s.schema == nil {
		return "", fmt.Errorf("schema is not available without a database")
	}
	cols, err := s.schema.GetTrainingColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatTrainingSchema(cols), nil
}

func formatTrainingSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Training DB Schema\n\nNo training tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Training DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(trainingTables, ", "))
	b.WriteString(" (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// TrainingLoad returns the daily series (load, ATL, CTL, TSB, VO2max) for the period.
func (s *ContextService) TrainingLoad(ctx context.Context, userID string, params analysis.Params) ([]trainingload.DailyMetric, error) {
	result, err := s.metrics.Metrics(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	if result.Daily == nil {
		return []trainingload.DailyMetric{}, nil
	}
	return result.Daily, nil
}

func (s *ContextService) Summary(ctx context.Context, userID string, asOf *time.Time) (trainingload.Summary, error) {
	return s.metrics.Summary(ctx, userID, asOf)
}

func (s *ContextService) WeeklyLoad(ctx context.Context, userID string, params analysis.Params) ([]trainingload.WeeklyMetric, error) {
	return s.metrics.Weekly(ctx, userID, params)
}

func (s *ContextService) SessionLoads(ctx context.Context, userID string, params analysis.Params) ([]trainingload.SessionLoad, error) {
	return s.metrics.SessionLoads(ctx, userID, params)
}
