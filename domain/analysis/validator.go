package analysis

import (
	"fmt"
)

// Data-quality thresholds for non-blocking warnings
const (
	minTotalSampleSize = 20
	minGroupSize       = 5
)

// ValidatePlan checks a chosen test against the data profile for
// structural incompatibility. Issues block execution and are collected
// rather than returned one at a time, so callers can report all of
// them at once; warnings flag data-quality concerns and never block.
func ValidatePlan(profile DataProfile, test TestType) ValidationReport {
	report := ValidationReport{Issues: []string{}, Warnings: []string{}}

	if !test.Valid() {
		report.Issues = append(report.Issues, fmt.Sprintf("unknown test type %q", string(test)))
		return report
	}

	switch test {
	case TestIndependentTTest, TestMannWhitneyU:
		if profile.NGroups != 2 {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s requires exactly 2 groups, found %d", test.Label(), profile.NGroups))
		}
	case TestOneWayANOVA, TestKruskalWallis:
		if profile.NGroups <= 2 {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s requires more than 2 groups, found %d", test.Label(), profile.NGroups))
		}
	case TestChiSquare:
		if profile.OutcomeType != OutcomeCategorical {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s requires a categorical outcome, found %s", test.Label(), profile.OutcomeType))
		}
		if profile.NGroups < 2 {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s requires at least 2 groups, found %d", test.Label(), profile.NGroups))
		}
	case TestFisherExact:
		if profile.OutcomeType != OutcomeCategorical {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s requires a categorical outcome, found %s", test.Label(), profile.OutcomeType))
		}
		if profile.NGroups != 2 {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s requires a 2x2 contingency table, found %d groups", test.Label(), profile.NGroups))
		}
	case TestKaplanMeier:
		if profile.TimeVariable == "" {
			report.Issues = append(report.Issues, "survival analysis requires a time variable")
		}
		if profile.EventVariable == "" {
			report.Issues = append(report.Issues, "survival analysis requires an event variable")
		}
	}

	if profile.SampleSize < minTotalSampleSize {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"small sample size (n=%d); results may be unreliable", profile.SampleSize))
	}
	for _, label := range profile.GroupLabels {
		if label == "" {
			report.Warnings = append(report.Warnings,
				"rows with missing group values are counted under an empty label")
			continue
		}
		if profile.GroupSizes[label] < minGroupSize {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"group %q has fewer than %d observations (n=%d)", label, minGroupSize, profile.GroupSizes[label]))
		}
	}

	return report
}
