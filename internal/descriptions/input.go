package descriptions

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
)

// NutrientsInput carries per-portion nutritional values. Kcal is the only
// mandatory value; nil means the caller never supplied it.
type NutrientsInput struct {
	Kcal               *float64
	ProteinGrams       *float64
	FatGrams           *float64
	CarbohydratesGrams *float64
	SugarGrams         *float64
	SaltGrams          *float64
	VitaminAMg         *float64
	VitaminCMg         *float64
	VitaminDUg         *float64
	IronMg             *float64
	CalciumMg          *float64
	MagnesiumMg        *float64
	SodiumMg           *float64
	ZincMg             *float64
}

// ImageInput carries one raw image payload for a slot.
type ImageInput struct {
	Data        []byte
	ContentType string
}

// Input is the full payload needed to create a description with its owned
// nutrients and image rows.
type Input struct {
	ProductID         string
	Name              string
	Producer          *string
	QuantityType      enums.QuantityType
	Portion           float64
	VolumeWeightRatio *float64
	Nutrients         NutrientsInput
	PreviewImage      *ImageInput
	FullImage         *ImageInput
}

// Validate checks the structural rules of a description payload. All
// violations are collected and surfaced as a single validation error.
func Validate(in Input) error {
	var errs error

	if strings.TrimSpace(in.ProductID) == "" {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
	}
	if strings.TrimSpace(in.Name) == "" {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "name is required"))
	}
	if !in.QuantityType.IsValid() {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "unknown quantity type").
			WithDetails(map[string]any{"quantity_type": in.QuantityType.String()}))
	}
	if in.Portion <= 0 {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "portion must be greater than zero").
			WithDetails(map[string]any{"portion": in.Portion}))
	}
	if in.Nutrients.Kcal == nil {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "nutrients kcal is required"))
	} else if *in.Nutrients.Kcal < 0 {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "nutrients kcal must not be negative").
			WithDetails(map[string]any{"kcal": *in.Nutrients.Kcal}))
	}

	// volume declarations carry the conversion ratio; weight ones must not
	switch in.QuantityType {
	case enums.QuantityTypeVolume:
		if in.VolumeWeightRatio == nil {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "volume products require a volume/weight ratio"))
		}
	case enums.QuantityTypeWeight:
		if in.VolumeWeightRatio != nil {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "weight products must not carry a volume/weight ratio"))
		}
	}

	if err := validateImage("preview", in.PreviewImage); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := validateImage("full", in.FullImage); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs == nil {
		return nil
	}
	messages := []string{}
	for _, e := range multierr.Errors(errs) {
		if typed := pkgerrors.As(e); typed != nil {
			messages = append(messages, typed.Message())
		} else {
			messages = append(messages, e.Error())
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid product description").
		WithDetails(map[string]any{"violations": messages})
}

func validateImage(slot string, img *ImageInput) error {
	if img == nil {
		return nil
	}
	if len(img.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, slot+" image data must not be empty")
	}
	if strings.TrimSpace(img.ContentType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, slot+" image requires a content type")
	}
	return nil
}
