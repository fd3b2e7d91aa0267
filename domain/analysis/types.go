package analysis

import (
	"encoding/json"
)

// OutcomeType classifies the measurement scale of the outcome variable
type OutcomeType string

const (
	OutcomeContinuous  OutcomeType = "continuous"
	OutcomeCategorical OutcomeType = "categorical"
)

// VariableRoles carries the caller-supplied column assignments.
// Names must match table column names exactly (case-sensitive).
type VariableRoles struct {
	Outcome  string `json:"outcome_variable"`
	Group    string `json:"group_variable,omitempty"`
	Time     string `json:"time_variable,omitempty"`
	Event    string `json:"event_variable,omitempty"`
	IsPaired bool   `json:"is_paired,omitempty"`
}

// HasSurvival reports whether both survival roles are assigned
func (r VariableRoles) HasSurvival() bool {
	return r.Time != "" && r.Event != ""
}

// DataProfile is an immutable snapshot of the table shape relevant to
// test selection. Constructed once per analysis request, never mutated.
// INVARIANT: GroupSizes values sum to SampleSize when GroupVariable is set.
type DataProfile struct {
	SampleSize      int            `json:"sample_size"`
	OutcomeVariable string         `json:"outcome_variable"`
	OutcomeType     OutcomeType    `json:"outcome_type"`
	GroupVariable   string         `json:"group_variable,omitempty"`
	NGroups         int            `json:"n_groups,omitempty"`
	GroupLabels     []string       `json:"group_labels,omitempty"`
	GroupSizes      map[string]int `json:"group_sizes,omitempty"`
	TimeVariable    string         `json:"time_variable,omitempty"`
	EventVariable   string         `json:"event_variable,omitempty"`
	IsPaired        bool           `json:"is_paired"`
}

// AssumptionResult is the outcome of a single assumption check
type AssumptionResult struct {
	Test      string   `json:"test"`
	Passed    bool     `json:"passed"`
	Statistic *float64 `json:"statistic,omitempty"`
	PValue    *float64 `json:"p_value,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// EffectSize is a named standardized magnitude statistic
type EffectSize struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// GroupStats holds per-group descriptives reported alongside a result
type GroupStats struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// ConfidenceInterval is a two-sided interval for a point estimate
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// SurvivalPoint is one step of a Kaplan-Meier curve
type SurvivalPoint struct {
	Time     float64 `json:"time"`
	Survival float64 `json:"survival"`
}

// GroupSurvival holds the per-group product-limit estimate.
// INVARIANT: Curve starts at (0, 1.0) and is non-increasing in time.
type GroupSurvival struct {
	N              int             `json:"n"`
	Events         int             `json:"events"`
	Curve          []SurvivalPoint `json:"curve"`
	MedianSurvival *float64        `json:"median_survival"`
}

// SurvivalData is the survival-family payload of a StatisticalResult
type SurvivalData struct {
	Times      []float64                `json:"times"`
	Events     []int                    `json:"events"`
	Groups     []string                 `json:"groups"`
	GroupStats map[string]GroupSurvival `json:"group_stats"`
}

// StatisticalResult is the terminal artifact of a single test execution.
// INVARIANT: exactly one test-family payload (ContingencyTable or
// SurvivalData) is populated, matching TestName's family; comparison
// tests populate neither.
type StatisticalResult struct {
	TestName           TestType              `json:"test_name"`
	Statistic          map[string]float64    `json:"statistic"`
	PValue             float64               `json:"p_value"`
	EffectSize         *EffectSize           `json:"effect_size,omitempty"`
	Summary            string                `json:"summary"`
	Interpretation     string                `json:"interpretation,omitempty"`
	Groups             map[string]GroupStats `json:"groups,omitempty"`
	ConfidenceInterval *ConfidenceInterval   `json:"confidence_interval,omitempty"`

	// Categorical family payload
	ContingencyTable [][]int  `json:"contingency_table,omitempty"`
	GroupNames       []string `json:"group_names,omitempty"`
	OutcomeNames     []string `json:"outcome_names,omitempty"`

	// Survival family payload
	SurvivalData *SurvivalData `json:"survival_data,omitempty"`
}

// Recommendation is the primary/alternative pair chosen by the brain
type Recommendation struct {
	Primary     TestType `json:"primary"`
	Alternative TestType `json:"alternative"`
	Reason      string   `json:"reason,omitempty"`
}

// ValidationReport aggregates structural issues and data-quality warnings.
// Issues block execution; warnings never do.
type ValidationReport struct {
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// OK reports whether execution may proceed
func (v ValidationReport) OK() bool {
	return len(v.Issues) == 0
}

// AssumptionChecks records which test's assumptions were evaluated
type AssumptionChecks struct {
	Test              TestType                      `json:"test"`
	Results           map[string][]AssumptionResult `json:"results"`
	AllAssumptionsMet bool                          `json:"all_assumptions_met"`
}

// FinalSelection names the test that was actually executed and why
type FinalSelection struct {
	SelectedTest TestType `json:"selected_test"`
	Reason       string   `json:"reason"`
}

// AnalysisError is the error record placed into FinalResult on failure
type AnalysisError struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// FinalResult unifies success and failure into one shape. Exactly one
// of Result or Err is set; JSON output is either the result object or
// the {error, details?} record, so callers branch on a single field.
type FinalResult struct {
	Result *StatisticalResult
	Err    *AnalysisError
}

// Failed reports whether the pipeline terminated with an error record
func (f FinalResult) Failed() bool {
	return f.Err != nil
}

func (f FinalResult) MarshalJSON() ([]byte, error) {
	if f.Err != nil {
		return json.Marshal(f.Err)
	}
	return json.Marshal(f.Result)
}

func (f *FinalResult) UnmarshalJSON(data []byte) error {
	var probe struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != nil {
		f.Err = &AnalysisError{}
		return json.Unmarshal(data, f.Err)
	}
	f.Result = &StatisticalResult{}
	return json.Unmarshal(data, f.Result)
}

// AnalysisWorkflow is the full decision trace returned to callers.
// Built incrementally by the orchestrator and returned whole; stages
// that never ran stay nil. Identical inputs produce identical traces.
type AnalysisWorkflow struct {
	DataProfile      *DataProfile      `json:"data_profile,omitempty"`
	Recommendation   *Recommendation   `json:"recommendation,omitempty"`
	Validation       *ValidationReport `json:"validation,omitempty"`
	AssumptionChecks *AssumptionChecks `json:"assumption_checks,omitempty"`
	FinalSelection   *FinalSelection   `json:"final_selection,omitempty"`
	FinalResult      FinalResult       `json:"final_result"`
}
