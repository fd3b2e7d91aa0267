package api

import (
	"context"

	"scifig/domain/analysis"
	"scifig/domain/core"
	"scifig/domain/dataset"
)

// AnalyzeRequest is the POST /analyze body. Data is row-oriented; each
// element maps column names to cell values exactly as the caller's
// table holds them.
type AnalyzeRequest struct {
	Data     []map[string]any `json:"data" binding:"required"`
	Outcome  string           `json:"outcome_variable" binding:"required"`
	Group    string           `json:"group_variable,omitempty"`
	Time     string           `json:"time_variable,omitempty"`
	Event    string           `json:"event_variable,omitempty"`
	TestType string           `json:"test_type,omitempty"`
	IsPaired bool             `json:"is_paired,omitempty"`
}

// Table converts the request payload into the engine's table form
func (r *AnalyzeRequest) Table() dataset.Table {
	rows := make([]dataset.Row, len(r.Data))
	for i, m := range r.Data {
		rows[i] = dataset.Row(m)
	}
	return dataset.Table{Rows: rows}
}

// Roles extracts the variable role assignments from the request
func (r *AnalyzeRequest) Roles() analysis.VariableRoles {
	return analysis.VariableRoles{
		Outcome:  r.Outcome,
		Group:    r.Group,
		Time:     r.Time,
		Event:    r.Event,
		IsPaired: r.IsPaired,
	}
}

// ArchivedAnalysis is a stored workflow trace. The record carries its
// own identity and timestamp; the workflow body stays free of both so
// identical inputs archive identical bodies.
type ArchivedAnalysis struct {
	ID        core.ID                   `json:"id" db:"id"`
	CreatedAt core.Timestamp            `json:"created_at" db:"created_at"`
	Workflow  analysis.AnalysisWorkflow `json:"workflow"`
}

// AnalysisArchive defines the interface for workflow persistence
type AnalysisArchive interface {
	Save(ctx context.Context, record *ArchivedAnalysis) error
	GetByID(ctx context.Context, id core.ID) (*ArchivedAnalysis, error)
}
