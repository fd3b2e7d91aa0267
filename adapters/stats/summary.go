package stats

// significanceMarker returns the conventional star notation for a p-value
func significanceMarker(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return "ns"
	}
}

// interpretPValue returns the reporting wording for a p-value
func interpretPValue(p float64) string {
	switch {
	case p < 0.001:
		return "Highly significant (p < 0.001)"
	case p < 0.01:
		return "Very significant (p < 0.01)"
	case p < 0.05:
		return "Significant (p < 0.05)"
	default:
		return "Not significant (p >= 0.05)"
	}
}

// interpretCohensD classifies the magnitude of a Cohen's d value
func interpretCohensD(d float64) string {
	abs := d
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 0.2:
		return "negligible"
	case abs < 0.5:
		return "small"
	case abs < 0.8:
		return "medium"
	default:
		return "large"
	}
}
