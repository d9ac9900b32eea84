// Package embedding contains adapters to pretrained text-embedding backends.
// Every adapter returns one vector per input text, in input order, and
// normalizes vectors to unit length itself rather than trusting the backend.
package embedding

import "math"

// DefaultBatchSize is the number of texts sent to a backend per request.
// Batching exists purely for throughput; results never depend on it.
const DefaultBatchSize = 32

// Normalize scales v to unit length in place. A zero vector is left as is.
func Normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}
