package enums

import "fmt"

// ImageSlot names one of the two image roles attached to a product
// description.
type ImageSlot string

const (
	ImageSlotPreview ImageSlot = "preview"
	ImageSlotFull    ImageSlot = "full"
)

var validImageSlots = []ImageSlot{
	ImageSlotPreview,
	ImageSlotFull,
}

// String implements fmt.Stringer.
func (s ImageSlot) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ImageSlot.
func (s ImageSlot) IsValid() bool {
	for _, candidate := range validImageSlots {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseImageSlot converts raw input into an ImageSlot.
func ParseImageSlot(value string) (ImageSlot, error) {
	for _, candidate := range validImageSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image slot %q", value)
}
