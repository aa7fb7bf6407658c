package face

import (
	"math"

	"faceauth/internal/domain/entity"
)

// DefaultDistanceThreshold is the euclidean distance under which two descriptors are the same face.
const DefaultDistanceThreshold = 0.6

// Match is the closest reference label for one probe descriptor. Matched is
// false when no label is within the threshold.
type Match struct {
	Label    string
	Distance float64
	Matched  bool
}

// MatchResult is the set of reference labels matched by a batch of probes.
type MatchResult struct {
	MatchedLabels []string
}

// Matched reports whether any probe matched a reference label.
func (r MatchResult) Matched() bool {
	return len(r.MatchedLabels) > 0
}

// Matcher compares probe descriptors against labeled reference descriptors.
// It is stateless apart from the threshold and safe for concurrent use.
type Matcher struct {
	threshold float64
}

// NewMatcher returns a matcher accepting distances below threshold. A
// non-positive threshold selects DefaultDistanceThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultDistanceThreshold
	}

	return &Matcher{threshold: threshold}
}

// BestMatch scores every label by the mean distance between probe and the
// label's descriptors and returns the closest. Labels whose descriptors have a
// different dimension than probe are skipped.
func (m *Matcher) BestMatch(probe entity.Descriptor, reference []entity.LabeledDescriptors) Match {
	best := Match{Distance: math.Inf(1)}

	for _, labeled := range reference {
		distance, ok := meanDistance(probe, labeled.Descriptors)
		if !ok || distance >= best.Distance {
			continue
		}
		best = Match{Label: labeled.Label, Distance: distance}
	}

	best.Matched = best.Distance < m.threshold

	return best
}

// Match returns the distinct labels matched by probes, in first-seen order.
func (m *Matcher) Match(probes []entity.Descriptor, reference []entity.LabeledDescriptors) MatchResult {
	seen := make(map[string]struct{})
	result := MatchResult{}

	for _, probe := range probes {
		match := m.BestMatch(probe, reference)
		if !match.Matched {
			continue
		}
		if _, dup := seen[match.Label]; dup {
			continue
		}
		seen[match.Label] = struct{}{}
		result.MatchedLabels = append(result.MatchedLabels, match.Label)
	}

	return result
}

func meanDistance(probe entity.Descriptor, descriptors []entity.Descriptor) (float64, bool) {
	var total float64
	var count int

	for _, descriptor := range descriptors {
		if len(descriptor) != len(probe) || len(probe) == 0 {
			continue
		}
		total += euclideanDistance(probe, descriptor)
		count++
	}

	if count == 0 {
		return 0, false
	}

	return total / float64(count), true
}

func euclideanDistance(a, b entity.Descriptor) float64 {
	var sum float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}

	return math.Sqrt(sum)
}
