// Package biometric defines the station's face-matching capability and the
// camera boundary. The math here is deliberately small: matching reduces to
// feature-vector distance against a stored gallery; producing the vectors
// is the camera collaborator's job.
package biometric

import (
	"math"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
)

// Matcher reports whether a captured sample belongs to the owner of a
// stored gallery.
type Matcher interface {
	Match(sample []float64, gallery protocol.Gallery, tolerance float64) bool
}

// EuclideanMatcher accepts a sample whose L2 distance to any gallery entry
// is within tolerance. Mirrors the distance semantics of common face
// embedding libraries, where ~0.6 is a workable default.
type EuclideanMatcher struct{}

func (EuclideanMatcher) Match(sample []float64, gallery protocol.Gallery, tolerance float64) bool {
	if len(sample) == 0 {
		return false
	}
	for _, stored := range gallery {
		if distance(sample, stored) <= tolerance {
			return true
		}
	}
	return false
}

func distance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
