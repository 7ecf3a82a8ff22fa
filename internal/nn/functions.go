package nn

import (
	"fmt"
	"math"
	"math/rand"
)

// Logistic squashes x into (0, 1).
func Logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// LogisticSlope is the logistic derivative at an already squashed value
// y = Logistic(x).
func LogisticSlope(y float64) float64 {
	return y * (1 - y)
}

// Bipolar encodes a boolean signal as +1 (true) or -1 (false).
func Bipolar(v bool) float64 {
	if v {
		return 1
	}
	return -1
}

// Uniform draws a value in [-1, 1).
func Uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

// Avg returns the arithmetic mean of values.
func Avg(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("values must not be empty")
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values)), nil
}

// Std returns population standard deviation.
func Std(values []float64) (float64, error) {
	mean, err := Avg(values)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, value := range values {
		diff := mean - value
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values))), nil
}
