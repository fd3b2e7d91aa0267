package stats

import (
	"math"
)

// Shared tail approximations. Every p-value in the engine comes from
// these closed forms. They trade exactness for simplicity: results are
// close to reference packages for moderate-to-large samples but are
// NOT bit-for-bit comparable. Anyone needing rigorous output must
// replace them with exact distribution functions.

// normalCDF is the standard normal CDF via the error function
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// normalTwoSidedP converts a z-score to a two-sided p-value
func normalTwoSidedP(z float64) float64 {
	p := 2 * (1 - normalCDF(math.Abs(z)))
	return clampP(p)
}

// tCDF approximates the CDF of Student's t. Plain normal for df > 30;
// below that, a moment-matched normal transformation that stays within
// about a percent of the exact value for df >= 5.
func tCDF(t, df float64) float64 {
	if df > 30 {
		return normalCDF(t)
	}
	z := t * (1 - 1/(4*df)) / math.Sqrt(1+t*t/(2*df))
	return normalCDF(z)
}

// tTwoSidedP converts a t-statistic to a two-sided p-value
func tTwoSidedP(t, df float64) float64 {
	p := 2 * (1 - tCDF(math.Abs(t), df))
	return clampP(p)
}

// chiSquareTailP approximates P(X >= chiSq) for a chi-square variable
// using the Wilson-Hilferty cube-root transformation, with a normal
// approximation for large df.
func chiSquareTailP(chiSq, df float64) float64 {
	if chiSq <= 0 || df <= 0 {
		return 1.0
	}
	if df > 30 {
		z := (chiSq - df) / math.Sqrt(2*df)
		return clampP(1 - normalCDF(z))
	}
	z := math.Cbrt(chiSq/df) // Wilson-Hilferty: (X/df)^(1/3) is near-normal
	mu := 1 - 2/(9*df)
	sigma := math.Sqrt(2 / (9 * df))
	return clampP(1 - normalCDF((z-mu)/sigma))
}

// fTailP approximates P(X >= f) for an F(df1, df2) variable using the
// Paulson normal approximation, falling back to the chi-square tail
// when the denominator df is large.
func fTailP(f, df1, df2 float64) float64 {
	if f <= 0 || df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	if df2 > 40 {
		// df1 * F converges to chi-square(df1)
		return chiSquareTailP(df1*f, df1)
	}
	cbrtF := math.Cbrt(f)
	num := (1-2/(9*df2))*cbrtF - (1 - 2/(9*df1))
	den := math.Sqrt(2/(9*df1) + cbrtF*cbrtF*2/(9*df2))
	if den == 0 {
		return 1.0
	}
	return clampP(1 - normalCDF(num/den))
}

func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
