package analysis

import (
	"fmt"

	"scifig/domain/core"
)

// TestType enumerates the closed set of supported statistical tests.
// Adding a test means adding a variant here, a registry entry below,
// and a case in the executor dispatch; the exhaustiveness check in
// Valid keeps the three in sync.
type TestType string

const (
	TestIndependentTTest TestType = "independent_ttest"
	TestMannWhitneyU     TestType = "mann_whitney_u"
	TestOneWayANOVA      TestType = "one_way_anova"
	TestKruskalWallis    TestType = "kruskal_wallis"
	TestChiSquare        TestType = "chi_square"
	TestFisherExact      TestType = "fisher_exact"
	TestKaplanMeier      TestType = "kaplan_meier"
)

// Valid reports whether t is a known test variant
func (t TestType) Valid() bool {
	switch t {
	case TestIndependentTTest, TestMannWhitneyU, TestOneWayANOVA,
		TestKruskalWallis, TestChiSquare, TestFisherExact, TestKaplanMeier:
		return true
	}
	return false
}

// Label returns the human-readable test name used in summaries
func (t TestType) Label() string {
	switch t {
	case TestIndependentTTest:
		return "Independent Samples T-Test"
	case TestMannWhitneyU:
		return "Mann-Whitney U Test"
	case TestOneWayANOVA:
		return "One-Way ANOVA"
	case TestKruskalWallis:
		return "Kruskal-Wallis H Test"
	case TestChiSquare:
		return "Chi-Square Test of Independence"
	case TestFisherExact:
		return "Fisher's Exact Test"
	case TestKaplanMeier:
		return "Kaplan-Meier Survival Analysis"
	}
	return string(t)
}

// Assumption names a precondition whose violation triggers fallback
type Assumption string

const (
	AssumptionNormality   Assumption = "normality"
	AssumptionHomogeneity Assumption = "homogeneity_of_variance"
)

// TestSpec is the static registry entry for one test
type TestSpec struct {
	Assumptions []Assumption // checked before the primary test runs
	Alternative TestType     // fallback when an assumption fails; self means no fallback
}

// registry is the read-only test metadata table. The engine holds no
// other process-wide state.
var registry = map[TestType]TestSpec{
	TestIndependentTTest: {
		Assumptions: []Assumption{AssumptionNormality, AssumptionHomogeneity},
		Alternative: TestMannWhitneyU,
	},
	TestMannWhitneyU: {
		Alternative: TestMannWhitneyU,
	},
	TestOneWayANOVA: {
		Assumptions: []Assumption{AssumptionNormality, AssumptionHomogeneity},
		Alternative: TestKruskalWallis,
	},
	TestKruskalWallis: {
		Alternative: TestKruskalWallis,
	},
	TestChiSquare: {
		Alternative: TestFisherExact,
	},
	TestFisherExact: {
		Alternative: TestChiSquare,
	},
	TestKaplanMeier: {
		Alternative: TestKaplanMeier,
	},
}

// Spec returns the registry entry for a test
func Spec(t TestType) (TestSpec, bool) {
	spec, ok := registry[t]
	return spec, ok
}

// RecommendTest maps a data profile to a primary/alternative test pair.
// The decision table is evaluated in fixed precedence order: survival
// roles first, then continuous outcomes by group count, then
// categorical outcomes by group count.
func RecommendTest(profile DataProfile) (Recommendation, error) {
	if profile.TimeVariable != "" && profile.EventVariable != "" {
		return Recommendation{
			Primary:     TestKaplanMeier,
			Alternative: TestKaplanMeier,
			Reason:      "time and event variables present; time-to-event analysis",
		}, nil
	}

	switch profile.OutcomeType {
	case OutcomeContinuous:
		switch {
		case profile.NGroups == 2:
			return Recommendation{
				Primary:     TestIndependentTTest,
				Alternative: TestMannWhitneyU,
				Reason:      "continuous outcome with two groups",
			}, nil
		case profile.NGroups > 2:
			return Recommendation{
				Primary:     TestOneWayANOVA,
				Alternative: TestKruskalWallis,
				Reason:      fmt.Sprintf("continuous outcome with %d groups", profile.NGroups),
			}, nil
		}
	case OutcomeCategorical:
		switch {
		case profile.NGroups == 2:
			return Recommendation{
				Primary:     TestFisherExact,
				Alternative: TestChiSquare,
				Reason:      "categorical outcome with two groups",
			}, nil
		case profile.NGroups > 2:
			return Recommendation{
				Primary:     TestChiSquare,
				Alternative: TestFisherExact,
				Reason:      fmt.Sprintf("categorical outcome with %d groups", profile.NGroups),
			}, nil
		}
	}

	return Recommendation{}, fmt.Errorf("%w: %s outcome with %d groups",
		core.ErrNoSuitableTest, profile.OutcomeType, profile.NGroups)
}
