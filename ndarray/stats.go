package ndarray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the finite values of an array.
type Summary struct {
	Count     int // finite values
	NonFinite int // NaN and ±Inf values, excluded from the statistics
	Min       float64
	Max       float64
	Mean      float64
	StdDev    float64 // sample standard deviation, 0 for fewer than two values
}

// String renders the summary on one line.
func (s Summary) String() string {
	if s.Count == 0 {
		return fmt.Sprintf("count=0 non_finite=%d", s.NonFinite)
	}

	return fmt.Sprintf("count=%d non_finite=%d min=%g max=%g mean=%g stddev=%g",
		s.Count, s.NonFinite, s.Min, s.Max, s.Mean, s.StdDev)
}

// Summarize computes Summary over every element of a.
func (a *Array) Summarize() Summary {
	values := make([]float64, 0, a.Volume())

	var s Summary
	for _, v := range a.Data() {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.NonFinite++
			continue
		}
		values = append(values, f)
	}

	s.Count = len(values)
	if s.Count == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	if s.Count < 2 {
		s.StdDev = 0
	}

	return s
}
