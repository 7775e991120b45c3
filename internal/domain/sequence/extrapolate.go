package sequence

import "math"

// ForecastSteps is the number of extrapolated values in an Analysis.
const ForecastSteps = 5

// roundingScale rounds forecasts to four decimal places.
const roundingScale = 10_000

// Next returns the single next term of seq under p, unrounded.
func Next(seq []float64, p Pattern) float64 {
	last := seq[len(seq)-1]
	switch p.Type {
	case Arithmetic:
		return last + p.Difference()
	case Geometric:
		return last * p.Ratio()
	case Polynomial:
		return last + (lastDifference(seq) + p.SecondDiff())
	}
	return math.NaN()
}

// Extrapolate returns the next steps terms of seq under p, each rounded to
// four decimal places. The running value itself is carried unrounded.
func Extrapolate(seq []float64, p Pattern, steps int) []float64 {
	if steps <= 0 || len(seq) == 0 {
		return []float64{}
	}
	out := make([]float64, 0, steps)
	value := seq[len(seq)-1]
	diff := lastDifference(seq)
	for i := 0; i < steps; i++ {
		switch p.Type {
		case Arithmetic:
			value += p.Difference()
		case Geometric:
			value *= p.Ratio()
		case Polynomial:
			diff += p.SecondDiff()
			value += diff
		default:
			value = math.NaN()
		}
		out = append(out, Round4(value))
	}
	return out
}

// Round4 rounds v to four decimal places, half away from zero. Values too
// large to scale are returned as is.
func Round4(v float64) float64 {
	scaled := v * roundingScale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	return math.Round(scaled) / roundingScale
}

func lastDifference(seq []float64) float64 {
	if len(seq) < 2 {
		return 0
	}
	return seq[len(seq)-1] - seq[len(seq)-2]
}
