package stats

import (
	"fmt"
	"sort"
	"strings"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

type survivalObs struct {
	time  float64
	event int
}

// KaplanMeier builds product-limit survival curves per group and, for
// exactly two groups, a log-rank comparison via a simplified
// chi-square approximation. With any other group count the curves are
// still produced but no comparison is made; the approximation does not
// generalize and is not silently extended.
func KaplanMeier(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	if table.IsEmpty() {
		return nil, errors.InvalidInput("table contains no rows")
	}
	if roles.Time == "" || roles.Event == "" {
		return nil, errors.UnsupportedInput("survival analysis requires time and event variables")
	}
	if !table.HasColumn(roles.Time) || !table.HasColumn(roles.Event) {
		return nil, errors.InvalidInput("time and event variables must be columns")
	}

	byGroup := make(map[string][]survivalObs)
	for _, row := range table.Rows {
		t, ok := dataset.AsFloat(row[roles.Time])
		if !ok || t < 0 {
			continue
		}
		event, ok := coerceEvent(row[roles.Event])
		if !ok {
			continue
		}
		label := "all"
		if roles.Group != "" {
			label, ok = dataset.AsLabel(row[roles.Group])
			if !ok {
				continue
			}
		}
		byGroup[label] = append(byGroup[label], survivalObs{time: t, event: event})
	}
	if len(byGroup) == 0 {
		return nil, errors.UnsupportedInput("no usable time/event observations")
	}

	labels := make([]string, 0, len(byGroup))
	for label := range byGroup {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data := &analysis.SurvivalData{
		Groups:     []string{},
		GroupStats: make(map[string]analysis.GroupSurvival, len(labels)),
	}
	for _, label := range labels {
		obs := byGroup[label]
		sort.Slice(obs, func(i, j int) bool { return obs[i].time < obs[j].time })

		stats := fitProductLimit(obs)
		data.GroupStats[label] = stats
		for _, o := range obs {
			data.Times = append(data.Times, o.time)
			data.Events = append(data.Events, o.event)
			data.Groups = append(data.Groups, label)
		}
	}

	statistic := map[string]float64{"log_rank_chi_square": 0, "degrees_of_freedom": 0}
	p := 1.0
	summary := "log-rank comparison requires exactly two groups"
	if len(labels) == 2 {
		chiSq := logRankChiSquare(byGroup[labels[0]], byGroup[labels[1]])
		p = chiSquareTailP(chiSq, 1)
		statistic["log_rank_chi_square"] = chiSq
		statistic["degrees_of_freedom"] = 1
		summary = fmt.Sprintf("Log-rank chi2(1) = %.3f, p = %.3f %s", chiSq, p, significanceMarker(p))
	}

	return &analysis.StatisticalResult{
		TestName:       analysis.TestKaplanMeier,
		Statistic:      statistic,
		PValue:         p,
		Summary:        summary,
		Interpretation: interpretPValue(p),
		SurvivalData:   data,
	}, nil
}

// fitProductLimit computes the Kaplan-Meier estimate for one group.
// Input must be sorted by time. The curve starts at (0, 1.0) and steps
// down only at event times, so it is non-increasing by construction.
func fitProductLimit(obs []survivalObs) analysis.GroupSurvival {
	curve := []analysis.SurvivalPoint{{Time: 0, Survival: 1.0}}
	survival := 1.0
	events := 0
	var medianSurvival *float64

	n := len(obs)
	for i := 0; i < n; {
		t := obs[i].time
		deaths := 0
		j := i
		for j < n && obs[j].time == t {
			if obs[j].event == 1 {
				deaths++
			}
			j++
		}
		atRisk := n - i
		if deaths > 0 && atRisk > 0 {
			survival *= 1 - float64(deaths)/float64(atRisk)
			curve = append(curve, analysis.SurvivalPoint{Time: t, Survival: survival})
			if medianSurvival == nil && survival <= 0.5 {
				mt := t
				medianSurvival = &mt
			}
		}
		events += deaths
		i = j
	}

	return analysis.GroupSurvival{
		N:              n,
		Events:         events,
		Curve:          curve,
		MedianSurvival: medianSurvival,
	}
}

// logRankChiSquare compares two groups over the pooled distinct event
// times: observed vs expected events under the null, summed into a
// one-degree chi-square. Simplified relative to the variance-weighted
// form; two groups only.
func logRankChiSquare(a, b []survivalObs) float64 {
	eventTimes := make(map[float64]bool)
	for _, o := range a {
		if o.event == 1 {
			eventTimes[o.time] = true
		}
	}
	for _, o := range b {
		if o.event == 1 {
			eventTimes[o.time] = true
		}
	}
	times := make([]float64, 0, len(eventTimes))
	for t := range eventTimes {
		times = append(times, t)
	}
	sort.Float64s(times)

	var o1, e1, o2, e2 float64
	for _, t := range times {
		n1 := atRisk(a, t)
		n2 := atRisk(b, t)
		d1 := eventsAt(a, t)
		d2 := eventsAt(b, t)
		n := n1 + n2
		d := d1 + d2
		if n == 0 {
			continue
		}
		o1 += d1
		o2 += d2
		e1 += d * n1 / n
		e2 += d * n2 / n
	}

	chiSq := 0.0
	if e1 > 0 {
		chiSq += (o1 - e1) * (o1 - e1) / e1
	}
	if e2 > 0 {
		chiSq += (o2 - e2) * (o2 - e2) / e2
	}
	return chiSq
}

func atRisk(obs []survivalObs, t float64) float64 {
	count := 0.0
	for _, o := range obs {
		if o.time >= t {
			count++
		}
	}
	return count
}

func eventsAt(obs []survivalObs, t float64) float64 {
	count := 0.0
	for _, o := range obs {
		if o.time == t && o.event == 1 {
			count++
		}
	}
	return count
}

// coerceEvent maps an event-indicator cell to 0/1. Numeric 0/1 and
// booleans pass through; common text codings for an observed event map
// to 1; any other non-missing value is treated as censored.
func coerceEvent(v any) (int, bool) {
	if f, ok := dataset.AsFloat(v); ok {
		if f == 1 {
			return 1, true
		}
		return 0, true
	}
	label, ok := dataset.AsLabel(v)
	if !ok {
		return 0, false
	}
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1", "true", "yes", "dead", "death", "event", "deceased":
		return 1, true
	default:
		return 0, true
	}
}
