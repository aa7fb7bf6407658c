package entity

// Descriptor is a numeric vector summarizing one detected face.
type Descriptor []float32

// LabeledDescriptors groups the reference descriptors recorded for one identity.
type LabeledDescriptors struct {
	Label       string       `json:"label" bson:"label"`
	Descriptors []Descriptor `json:"descriptors" bson:"descriptors"`
}
