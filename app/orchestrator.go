package app

import (
	"fmt"

	"scifig/adapters/stats"
	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
	"scifig/internal/profiling"
)

const defaultAlpha = 0.05

// Orchestrator runs the analysis pipeline: profile, recommend,
// validate, check assumptions, select, execute. It holds no state;
// every invocation is independent and reentrant. All failures are
// converted into the workflow's final-result error record, so callers
// have exactly one place to check regardless of which stage failed.
type Orchestrator struct{}

// NewOrchestrator creates the pipeline entry point
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// RunAnalysis executes the full decision pipeline, selecting the test
// from the data profile and falling back to the non-parametric
// alternative when an assumption fails.
func (o *Orchestrator) RunAnalysis(table dataset.Table, roles analysis.VariableRoles) analysis.AnalysisWorkflow {
	return o.run(table, roles, "")
}

// RunRequestedTest executes the pipeline with the final selection
// pinned to a caller-chosen test. Validation still blocks on
// structural issues and assumption checks are still reported, but no
// fallback is applied.
func (o *Orchestrator) RunRequestedTest(table dataset.Table, roles analysis.VariableRoles, test analysis.TestType) analysis.AnalysisWorkflow {
	return o.run(table, roles, test)
}

func (o *Orchestrator) run(table dataset.Table, roles analysis.VariableRoles, requested analysis.TestType) analysis.AnalysisWorkflow {
	wf := analysis.AnalysisWorkflow{}

	if requested != "" && !requested.Valid() {
		wf.FinalResult = failure(fmt.Sprintf("unknown test type %q", string(requested)), nil)
		return wf
	}

	// Profiling
	profile, err := profiling.ProfileTable(table, roles)
	if err != nil {
		wf.FinalResult = failure(err.Error(), nil)
		return wf
	}
	wf.DataProfile = profile

	// Recommending
	recommendation, err := analysis.RecommendTest(*profile)
	if err != nil {
		if requested == "" {
			wf.FinalResult = failure(err.Error(), nil)
			return wf
		}
		// A caller-requested test can proceed without a recommendation
	} else {
		wf.Recommendation = &recommendation
	}

	candidate := recommendation.Primary
	if requested != "" {
		candidate = requested
	}

	// Validating
	report := analysis.ValidatePlan(*profile, candidate)
	wf.Validation = &report
	if !report.OK() {
		wf.FinalResult = failure(
			fmt.Sprintf("%s is not applicable to this data", candidate.Label()), report.Issues)
		return wf
	}

	// Checking assumptions
	checks := o.checkAssumptions(table, roles, *profile, candidate)
	wf.AssumptionChecks = checks

	// Selecting
	selection := selectTest(candidate, requested, recommendation, checks)
	wf.FinalSelection = &selection

	// Executing
	result, err := executeGuarded(selection.SelectedTest, table, roles)
	if err != nil {
		wf.FinalResult = failure(err.Error(), nil)
		return wf
	}
	wf.FinalResult = analysis.FinalResult{Result: result}
	return wf
}

// checkAssumptions runs each assumption the registry requires for the
// candidate test: normality per group, variance homogeneity globally.
// Returns nil when the test has no assumptions to check.
func (o *Orchestrator) checkAssumptions(table dataset.Table, roles analysis.VariableRoles, profile analysis.DataProfile, test analysis.TestType) *analysis.AssumptionChecks {
	spec, ok := analysis.Spec(test)
	if !ok || len(spec.Assumptions) == 0 {
		return nil
	}

	checks := &analysis.AssumptionChecks{
		Test:              test,
		Results:           make(map[string][]analysis.AssumptionResult, len(spec.Assumptions)),
		AllAssumptionsMet: true,
	}

	grouped := table.NumericByGroup(roles.Group, roles.Outcome)
	for _, assumption := range spec.Assumptions {
		switch assumption {
		case analysis.AssumptionNormality:
			for _, label := range profile.GroupLabels {
				values := grouped[label]
				result := stats.CheckNormality(values, defaultAlpha)
				result.Reason = fmt.Sprintf("group %q: %s", label, result.Reason)
				checks.Results[string(assumption)] = append(checks.Results[string(assumption)], result)
				if !result.Passed {
					checks.AllAssumptionsMet = false
				}
			}
		case analysis.AssumptionHomogeneity:
			result := stats.CheckHomogeneityOfVariance(table, roles.Group, roles.Outcome, defaultAlpha)
			checks.Results[string(assumption)] = append(checks.Results[string(assumption)], result)
			if !result.Passed {
				checks.AllAssumptionsMet = false
			}
		}
	}
	return checks
}

// selectTest resolves the final test: a caller-requested test is
// pinned; otherwise the primary runs only when every assumption held.
func selectTest(candidate, requested analysis.TestType, rec analysis.Recommendation, checks *analysis.AssumptionChecks) analysis.FinalSelection {
	if requested != "" {
		return analysis.FinalSelection{
			SelectedTest: requested,
			Reason:       "test requested by caller",
		}
	}
	if checks == nil || checks.AllAssumptionsMet {
		return analysis.FinalSelection{
			SelectedTest: candidate,
			Reason:       "all required assumptions met",
		}
	}
	spec, _ := analysis.Spec(candidate)
	if spec.Alternative == "" || spec.Alternative == candidate {
		return analysis.FinalSelection{
			SelectedTest: candidate,
			Reason:       "assumptions failed but no alternative is registered",
		}
	}
	return analysis.FinalSelection{
		SelectedTest: spec.Alternative,
		Reason: fmt.Sprintf("an assumption required by %s failed; using non-parametric alternative",
			candidate.Label()),
	}
}

// executeGuarded dispatches the selected test and converts any panic
// inside a calculation into an error so the orchestrator boundary
// never raises.
func executeGuarded(test analysis.TestType, table dataset.Table, roles analysis.VariableRoles) (result *analysis.StatisticalResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.InternalError(fmt.Sprintf("test execution panicked: %v", r))
		}
	}()
	return stats.Execute(test, table, roles)
}

func failure(message string, details []string) analysis.FinalResult {
	return analysis.FinalResult{Err: &analysis.AnalysisError{Error: message, Details: details}}
}
