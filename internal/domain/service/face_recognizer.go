package service

import (
	"context"

	"faceauth/internal/domain/entity"
)

// FaceRecognizer is the boundary to the face-recognition collaborator.
type FaceRecognizer interface {
	// Detect returns one descriptor per face found in image (a data URL).
	// No face yields an empty slice and a nil error.
	Detect(ctx context.Context, image string) ([]entity.Descriptor, error)

	// LabelDescriptors pairs labels[i] with the first face found in images[i].
	// Entries whose image has no usable face are returned with no descriptors.
	LabelDescriptors(ctx context.Context, labels, images []string) ([]entity.LabeledDescriptors, error)

	// MatchedLabels returns the labels of reference whose descriptors match any probe.
	MatchedLabels(probes []entity.Descriptor, reference []entity.LabeledDescriptors) []string
}
