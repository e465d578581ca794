package enums

import "fmt"

// QuantityType states whether a product's nutrient values are expressed per
// weight or per volume.
type QuantityType string

const (
	QuantityTypeWeight QuantityType = "weight"
	QuantityTypeVolume QuantityType = "volume"
)

var validQuantityTypes = []QuantityType{
	QuantityTypeWeight,
	QuantityTypeVolume,
}

// String implements fmt.Stringer.
func (q QuantityType) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuantityType.
func (q QuantityType) IsValid() bool {
	for _, candidate := range validQuantityTypes {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuantityType converts raw input into a QuantityType.
func ParseQuantityType(value string) (QuantityType, error) {
	for _, candidate := range validQuantityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quantity type %q", value)
}
