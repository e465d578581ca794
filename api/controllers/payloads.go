package controllers

import (
	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/query"
)

type descriptionRequest struct {
	ProductID         string           `json:"product_id" validate:"required"`
	Name              string           `json:"name" validate:"required"`
	Producer          *string          `json:"producer,omitempty"`
	QuantityType      string           `json:"quantity_type" validate:"required,oneof=weight volume"`
	Portion           float64          `json:"portion" validate:"required,gt=0"`
	VolumeWeightRatio *float64         `json:"volume_weight_ratio,omitempty" validate:"omitempty,gt=0"`
	Nutrients         nutrientsRequest `json:"nutrients"`
	PreviewImage      *imageRequest    `json:"preview_image,omitempty"`
	FullImage         *imageRequest    `json:"full_image,omitempty"`
}

type nutrientsRequest struct {
	Kcal               *float64 `json:"kcal" validate:"required,gte=0"`
	ProteinGrams       *float64 `json:"protein_grams,omitempty" validate:"omitempty,gte=0"`
	FatGrams           *float64 `json:"fat_grams,omitempty" validate:"omitempty,gte=0"`
	CarbohydratesGrams *float64 `json:"carbohydrates_grams,omitempty" validate:"omitempty,gte=0"`
	SugarGrams         *float64 `json:"sugar_grams,omitempty" validate:"omitempty,gte=0"`
	SaltGrams          *float64 `json:"salt_grams,omitempty" validate:"omitempty,gte=0"`
	VitaminAMg         *float64 `json:"vitamin_a_mg,omitempty" validate:"omitempty,gte=0"`
	VitaminCMg         *float64 `json:"vitamin_c_mg,omitempty" validate:"omitempty,gte=0"`
	VitaminDUg         *float64 `json:"vitamin_d_ug,omitempty" validate:"omitempty,gte=0"`
	IronMg             *float64 `json:"iron_mg,omitempty" validate:"omitempty,gte=0"`
	CalciumMg          *float64 `json:"calcium_mg,omitempty" validate:"omitempty,gte=0"`
	MagnesiumMg        *float64 `json:"magnesium_mg,omitempty" validate:"omitempty,gte=0"`
	SodiumMg           *float64 `json:"sodium_mg,omitempty" validate:"omitempty,gte=0"`
	ZincMg             *float64 `json:"zinc_mg,omitempty" validate:"omitempty,gte=0"`
}

type imageRequest struct {
	Data        []byte `json:"data" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

func (d descriptionRequest) toInput() (descriptions.Input, error) {
	quantityType, err := enums.ParseQuantityType(d.QuantityType)
	if err != nil {
		return descriptions.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quantity type")
	}

	in := descriptions.Input{
		ProductID:         d.ProductID,
		Name:              d.Name,
		Producer:          d.Producer,
		QuantityType:      quantityType,
		Portion:           d.Portion,
		VolumeWeightRatio: d.VolumeWeightRatio,
		Nutrients: descriptions.NutrientsInput{
			Kcal:               d.Nutrients.Kcal,
			ProteinGrams:       d.Nutrients.ProteinGrams,
			FatGrams:           d.Nutrients.FatGrams,
			CarbohydratesGrams: d.Nutrients.CarbohydratesGrams,
			SugarGrams:         d.Nutrients.SugarGrams,
			SaltGrams:          d.Nutrients.SaltGrams,
			VitaminAMg:         d.Nutrients.VitaminAMg,
			VitaminCMg:         d.Nutrients.VitaminCMg,
			VitaminDUg:         d.Nutrients.VitaminDUg,
			IronMg:             d.Nutrients.IronMg,
			CalciumMg:          d.Nutrients.CalciumMg,
			MagnesiumMg:        d.Nutrients.MagnesiumMg,
			SodiumMg:           d.Nutrients.SodiumMg,
			ZincMg:             d.Nutrients.ZincMg,
		},
	}
	if d.PreviewImage != nil {
		in.PreviewImage = &descriptions.ImageInput{Data: d.PreviewImage.Data, ContentType: d.PreviewImage.ContentType}
	}
	if d.FullImage != nil {
		in.FullImage = &descriptions.ImageInput{Data: d.FullImage.Data, ContentType: d.FullImage.ContentType}
	}
	return in, nil
}

type queryRequest struct {
	Offset int            `json:"offset" validate:"gte=0"`
	Limit  int            `json:"limit" validate:"required,gt=0"`
	Filter *filterRequest `json:"filter,omitempty"`
	Sort   *sortRequest   `json:"sort,omitempty"`
}

type filterRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=none text_search exact_id"`
	Query     string `json:"query,omitempty"`
	ProductID string `json:"product_id,omitempty"`
}

type sortRequest struct {
	Field string `json:"field" validate:"required,oneof=reported_date product_name product_id similarity"`
	Order string `json:"order" validate:"required,oneof=asc desc"`
}

func (q queryRequest) toParams() (query.Params, error) {
	params := query.Params{
		Offset: q.Offset,
		Limit:  q.Limit,
		Filter: query.NoFilter(),
	}

	if q.Filter != nil {
		switch query.FilterKind(q.Filter.Kind) {
		case query.FilterNone:
			params.Filter = query.NoFilter()
		case query.FilterTextSearch:
			params.Filter = query.TextSearch(q.Filter.Query)
		case query.FilterExactID:
			params.Filter = query.ExactID(q.Filter.ProductID)
		default:
			return query.Params{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown filter kind").
				WithDetails(map[string]any{"kind": q.Filter.Kind})
		}
	}

	if q.Sort != nil {
		field, err := enums.ParseSortField(q.Sort.Field)
		if err != nil {
			return query.Params{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort field")
		}
		order, err := enums.ParseSortOrder(q.Sort.Order)
		if err != nil {
			return query.Params{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort order")
		}
		params.Sort = &query.Sort{Field: field, Order: order}
	}

	if err := params.Validate(); err != nil {
		return query.Params{}, err
	}
	return params, nil
}
