package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"scifig/domain/dataset"
)

// ClinicalGeneratorConfig configures the synthetic trial data generator
type ClinicalGeneratorConfig struct {
	Seed int64 `json:"seed"`
}

// DefaultClinicalConfig returns the fixed seed used across the test suite
func DefaultClinicalConfig() ClinicalGeneratorConfig {
	return ClinicalGeneratorConfig{Seed: 42}
}

// ClinicalDataGenerator produces deterministic synthetic trial tables.
// Every generator reseeds from the config so each fixture is stable
// regardless of call order.
type ClinicalDataGenerator struct {
	config ClinicalGeneratorConfig
}

// NewClinicalDataGenerator creates a new clinical data generator
func NewClinicalDataGenerator(config ClinicalGeneratorConfig) *ClinicalDataGenerator {
	return &ClinicalDataGenerator{config: config}
}

func (g *ClinicalDataGenerator) rng() *rand.Rand {
	return rand.New(rand.NewSource(g.config.Seed))
}

// TwoArmNormal generates a treatment/control table with normally
// distributed outcomes. Columns: "group", "response".
func (g *ClinicalDataGenerator) TwoArmNormal(nPerArm int, controlMean, treatmentMean, sd float64) dataset.Table {
	rng := g.rng()
	table := dataset.Table{Rows: make([]dataset.Row, 0, 2*nPerArm)}
	for i := 0; i < nPerArm; i++ {
		table.Rows = append(table.Rows, dataset.Row{
			"group":    "control",
			"response": controlMean + rng.NormFloat64()*sd,
		})
	}
	for i := 0; i < nPerArm; i++ {
		table.Rows = append(table.Rows, dataset.Row{
			"group":    "treatment",
			"response": treatmentMean + rng.NormFloat64()*sd,
		})
	}
	return table
}

// TwoArmSkewed generates a two-arm table where the treatment arm is
// strongly right-skewed (log-normal), which fails the normality gate
// and forces the non-parametric fallback.
func (g *ClinicalDataGenerator) TwoArmSkewed(nPerArm int) dataset.Table {
	rng := g.rng()
	table := dataset.Table{Rows: make([]dataset.Row, 0, 2*nPerArm)}
	for i := 0; i < nPerArm; i++ {
		table.Rows = append(table.Rows, dataset.Row{
			"group":    "control",
			"response": 50 + rng.NormFloat64()*5,
		})
	}
	for i := 0; i < nPerArm; i++ {
		table.Rows = append(table.Rows, dataset.Row{
			"group":    "treatment",
			"response": 50 + math.Exp(rng.NormFloat64()*1.5),
		})
	}
	// A few extreme values guarantee the skewness gate trips even for
	// unlucky seeds.
	for i := 0; i < 3 && i < len(table.Rows); i++ {
		table.Rows[len(table.Rows)-1-i]["response"] = 500.0 + float64(i)*100
	}
	return table
}

// MultiArm generates k arms with shifted normal outcomes. Columns:
// "arm", "response". Arm labels are "arm_1".."arm_k".
func (g *ClinicalDataGenerator) MultiArm(k, nPerArm int, baseMean, shift, sd float64) dataset.Table {
	rng := g.rng()
	table := dataset.Table{Rows: make([]dataset.Row, 0, k*nPerArm)}
	for arm := 0; arm < k; arm++ {
		label := fmt.Sprintf("arm_%d", arm+1)
		mean := baseMean + shift*float64(arm)
		for i := 0; i < nPerArm; i++ {
			table.Rows = append(table.Rows, dataset.Row{
				"arm":      label,
				"response": mean + rng.NormFloat64()*sd,
			})
		}
	}
	return table
}

// TwoByTwo generates a categorical table with the given cell counts.
// Columns: "exposure" (exposed/unexposed), "outcome" (yes/no). Cell
// order: exposed-yes, exposed-no, unexposed-yes, unexposed-no.
func (g *ClinicalDataGenerator) TwoByTwo(a, b, c, d int) dataset.Table {
	table := dataset.Table{Rows: make([]dataset.Row, 0, a+b+c+d)}
	appendCells := func(exposure, outcome string, n int) {
		for i := 0; i < n; i++ {
			table.Rows = append(table.Rows, dataset.Row{"exposure": exposure, "outcome": outcome})
		}
	}
	appendCells("exposed", "yes", a)
	appendCells("exposed", "no", b)
	appendCells("unexposed", "yes", c)
	appendCells("unexposed", "no", d)
	return table
}

// Survival generates a two-arm survival table with exponential event
// times and uniform censoring. Columns: "arm", "months", "status"
// (1 event, 0 censored). A larger hazard ratio makes the control arm
// fail earlier.
func (g *ClinicalDataGenerator) Survival(nPerArm int, controlRate, treatmentRate, censorHorizon float64) dataset.Table {
	rng := g.rng()
	table := dataset.Table{Rows: make([]dataset.Row, 0, 2*nPerArm)}
	appendArm := func(arm string, rate float64) {
		for i := 0; i < nPerArm; i++ {
			eventTime := rng.ExpFloat64() / rate
			censorTime := rng.Float64() * censorHorizon
			status := 1
			observed := eventTime
			if censorTime < eventTime {
				status = 0
				observed = censorTime
			}
			table.Rows = append(table.Rows, dataset.Row{
				"arm":    arm,
				"months": observed,
				"status": status,
			})
		}
	}
	appendArm("control", controlRate)
	appendArm("treatment", treatmentRate)
	return table
}
