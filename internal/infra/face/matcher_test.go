package face

import (
	"testing"

	"faceauth/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func reference() []entity.LabeledDescriptors {
	return []entity.LabeledDescriptors{
		{Label: "a@x.com", Descriptors: []entity.Descriptor{{0, 0, 0}, {0.1, 0, 0}}},
		{Label: "b@x.com", Descriptors: []entity.Descriptor{{1, 1, 1}}},
	}
}

func TestMatcher_BestMatch(t *testing.T) {
	matcher := NewMatcher(0.6)

	match := matcher.BestMatch(entity.Descriptor{0.05, 0, 0}, reference())
	assert.True(t, match.Matched)
	assert.Equal(t, "a@x.com", match.Label)
	assert.InDelta(t, 0.05, match.Distance, 1e-6)

	match = matcher.BestMatch(entity.Descriptor{0.9, 1, 1}, reference())
	assert.Equal(t, "b@x.com", match.Label)
}

func TestMatcher_BestMatchAboveThresholdIsNotMatched(t *testing.T) {
	matcher := NewMatcher(0.6)

	match := matcher.BestMatch(entity.Descriptor{5, 5, 5}, reference())
	assert.False(t, match.Matched)
}

func TestMatcher_AnyLabelTextCanMatch(t *testing.T) {
	matcher := NewMatcher(0.6)
	ref := []entity.LabeledDescriptors{
		{Label: "unknown", Descriptors: []entity.Descriptor{{0.2, 0.4, 0.6}}},
		{Label: "", Descriptors: []entity.Descriptor{{9, 9, 9}}},
	}

	result := matcher.Match([]entity.Descriptor{{0.2, 0.4, 0.6}}, ref)
	assert.Equal(t, []string{"unknown"}, result.MatchedLabels)
}

func TestMatcher_ThresholdIsExclusive(t *testing.T) {
	matcher := NewMatcher(0.5)
	ref := []entity.LabeledDescriptors{{Label: "a", Descriptors: []entity.Descriptor{{0, 0}}}}

	assert.False(t, matcher.BestMatch(entity.Descriptor{0.5, 0}, ref).Matched)

	match := matcher.BestMatch(entity.Descriptor{0.49, 0}, ref)
	assert.True(t, match.Matched)
	assert.Equal(t, "a", match.Label)
}

func TestMatcher_SkipsMismatchedDimensions(t *testing.T) {
	matcher := NewMatcher(0.6)
	ref := []entity.LabeledDescriptors{
		{Label: "short", Descriptors: []entity.Descriptor{{0, 0}}},
		{Label: "empty"},
	}

	match := matcher.BestMatch(entity.Descriptor{0, 0, 0}, ref)
	assert.False(t, match.Matched)
	assert.Empty(t, match.Label)
}

func TestMatcher_MatchDeduplicatesLabels(t *testing.T) {
	matcher := NewMatcher(0)

	result := matcher.Match([]entity.Descriptor{
		{0.05, 0, 0},
		{0.04, 0, 0},
		{1, 1, 1},
		{9, 9, 9},
	}, reference())

	assert.True(t, result.Matched())
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, result.MatchedLabels)
}

func TestMatcher_NoReference(t *testing.T) {
	matcher := NewMatcher(0.6)

	result := matcher.Match([]entity.Descriptor{{0, 0, 0}}, nil)
	assert.False(t, result.Matched())
}
