package descriptions

import (
	"github.com/openpantry/productdb-backend/pkg/db/models"
)

// NutrientsDTO mirrors the nutrients row for JSON responses. Optional values
// are omitted when the label did not list them.
type NutrientsDTO struct {
	Kcal               float64  `json:"kcal"`
	ProteinGrams       *float64 `json:"protein_grams,omitempty"`
	FatGrams           *float64 `json:"fat_grams,omitempty"`
	CarbohydratesGrams *float64 `json:"carbohydrates_grams,omitempty"`
	SugarGrams         *float64 `json:"sugar_grams,omitempty"`
	SaltGrams          *float64 `json:"salt_grams,omitempty"`
	VitaminAMg         *float64 `json:"vitamin_a_mg,omitempty"`
	VitaminCMg         *float64 `json:"vitamin_c_mg,omitempty"`
	VitaminDUg         *float64 `json:"vitamin_d_ug,omitempty"`
	IronMg             *float64 `json:"iron_mg,omitempty"`
	CalciumMg          *float64 `json:"calcium_mg,omitempty"`
	MagnesiumMg        *float64 `json:"magnesium_mg,omitempty"`
	SodiumMg           *float64 `json:"sodium_mg,omitempty"`
	ZincMg             *float64 `json:"zinc_mg,omitempty"`
}

// ImageDTO carries an image payload inline. Data is base64 in JSON.
type ImageDTO struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// DTO is the JSON shape of a description. Image slots appear only when the
// caller asked for them and the slot is populated.
type DTO struct {
	ProductID         string       `json:"product_id"`
	Name              string       `json:"name"`
	Producer          *string      `json:"producer,omitempty"`
	QuantityType      string       `json:"quantity_type"`
	Portion           float64      `json:"portion"`
	VolumeWeightRatio *float64     `json:"volume_weight_ratio,omitempty"`
	Nutrients         NutrientsDTO `json:"nutrients"`
	PreviewImage      *ImageDTO    `json:"preview_image,omitempty"`
	FullImage         *ImageDTO    `json:"full_image,omitempty"`
}

// ToDTO maps a loaded description model. Only associations the repository
// actually loaded end up in the DTO.
func ToDTO(desc *models.ProductDescription) DTO {
	dto := DTO{
		ProductID:         desc.ProductID,
		Name:              desc.Name,
		Producer:          desc.Producer,
		QuantityType:      desc.QuantityType.String(),
		Portion:           desc.Portion,
		VolumeWeightRatio: desc.VolumeWeightRatio,
	}
	if desc.Nutrients != nil {
		dto.Nutrients = NutrientsDTO{
			Kcal:               desc.Nutrients.Kcal,
			ProteinGrams:       desc.Nutrients.ProteinGrams,
			FatGrams:           desc.Nutrients.FatGrams,
			CarbohydratesGrams: desc.Nutrients.CarbohydratesGrams,
			SugarGrams:         desc.Nutrients.SugarGrams,
			SaltGrams:          desc.Nutrients.SaltGrams,
			VitaminAMg:         desc.Nutrients.VitaminAMg,
			VitaminCMg:         desc.Nutrients.VitaminCMg,
			VitaminDUg:         desc.Nutrients.VitaminDUg,
			IronMg:             desc.Nutrients.IronMg,
			CalciumMg:          desc.Nutrients.CalciumMg,
			MagnesiumMg:        desc.Nutrients.MagnesiumMg,
			SodiumMg:           desc.Nutrients.SodiumMg,
			ZincMg:             desc.Nutrients.ZincMg,
		}
	}
	if desc.PreviewImage != nil {
		dto.PreviewImage = &ImageDTO{Data: desc.PreviewImage.Data, ContentType: desc.PreviewImage.ContentType}
	}
	if desc.FullImage != nil {
		dto.FullImage = &ImageDTO{Data: desc.FullImage.Data, ContentType: desc.FullImage.ContentType}
	}
	return dto
}
