package descriptions

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
)

// Repository owns description rows together with their nutrients and image
// rows. Products and product requests never touch those tables directly.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// LoadOptions controls which owned payloads a read attaches. Nutrients are
// always loaded.
type LoadOptions struct {
	WithPreview   bool
	WithFullImage bool
}

// Create inserts the nutrients row, any image rows, then the description
// referencing them. Rows are always fresh; callers must run this inside a
// transaction so a failed insert leaves nothing behind, and must have run
// Validate on the input beforehand.
func (r *Repository) Create(ctx context.Context, in Input) (*models.ProductDescription, error) {
	tx := r.db.WithContext(ctx)

	nutrients := nutrientsFromInput(in.Nutrients)
	if err := tx.Create(nutrients).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert nutrients")
	}

	desc := &models.ProductDescription{
		ProductID:         in.ProductID,
		Name:              in.Name,
		Producer:          in.Producer,
		QuantityType:      in.QuantityType,
		Portion:           in.Portion,
		VolumeWeightRatio: in.VolumeWeightRatio,
		NutrientsID:       nutrients.ID,
		Nutrients:         nutrients,
	}

	if in.PreviewImage != nil {
		img, err := r.createImage(ctx, in.PreviewImage)
		if err != nil {
			return nil, err
		}
		desc.PreviewImageID = &img.ID
		desc.PreviewImage = img
	}
	if in.FullImage != nil {
		img, err := r.createImage(ctx, in.FullImage)
		if err != nil {
			return nil, err
		}
		desc.FullImageID = &img.ID
		desc.FullImage = img
	}

	if err := tx.Create(desc).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product description")
	}
	return desc, nil
}

func (r *Repository) createImage(ctx context.Context, in *ImageInput) (*models.ProductImage, error) {
	img := &models.ProductImage{Data: in.Data, ContentType: in.ContentType}
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product image")
	}
	return img, nil
}

// Delete removes the description and every row it owns. The description row
// goes first so the nutrients/image foreign keys are released before their
// rows disappear. Deleting an absent description is a NotFound error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx)

	var desc models.ProductDescription
	if err := tx.First(&desc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product description not found").
				WithDetails(map[string]any{"description_id": id})
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product description")
	}

	if err := tx.Delete(&models.ProductDescription{}, "id = ?", id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product description")
	}

	imageIDs := []int64{}
	if desc.PreviewImageID != nil {
		imageIDs = append(imageIDs, *desc.PreviewImageID)
	}
	if desc.FullImageID != nil {
		imageIDs = append(imageIDs, *desc.FullImageID)
	}
	if len(imageIDs) > 0 {
		if err := tx.Delete(&models.ProductImage{}, "id IN ?", imageIDs).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product images")
		}
	}

	if err := tx.Delete(&models.Nutrients{}, "id = ?", desc.NutrientsID).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete nutrients")
	}
	return nil
}

// Load fetches one description with nutrients and the requested image slots.
func (r *Repository) Load(ctx context.Context, id int64, opts LoadOptions) (*models.ProductDescription, error) {
	q := r.db.WithContext(ctx).Preload("Nutrients")
	if opts.WithPreview {
		q = q.Preload("PreviewImage")
	}
	if opts.WithFullImage {
		q = q.Preload("FullImage")
	}

	var desc models.ProductDescription
	if err := q.First(&desc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product description not found").
				WithDetails(map[string]any{"description_id": id})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product description")
	}
	return &desc, nil
}

// ImageForSlot returns the stored image occupying the given slot, or a
// NotFound error when the slot is empty.
func (r *Repository) ImageForSlot(ctx context.Context, descriptionID int64, slot enums.ImageSlot) (*models.ProductImage, error) {
	var desc models.ProductDescription
	if err := r.db.WithContext(ctx).First(&desc, "id = ?", descriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product description not found").
				WithDetails(map[string]any{"description_id": descriptionID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product description")
	}

	var imageID *int64
	switch slot {
	case enums.ImageSlotPreview:
		imageID = desc.PreviewImageID
	case enums.ImageSlotFull:
		imageID = desc.FullImageID
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown image slot").
			WithDetails(map[string]any{"slot": slot.String()})
	}
	if imageID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no image stored for slot").
			WithDetails(map[string]any{"slot": slot.String()})
	}

	var img models.ProductImage
	if err := r.db.WithContext(ctx).First(&img, "id = ?", *imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product image not found").
				WithDetails(map[string]any{"image_id": *imageID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product image")
	}
	return &img, nil
}

func nutrientsFromInput(in NutrientsInput) *models.Nutrients {
	var kcal float64
	if in.Kcal != nil {
		kcal = *in.Kcal
	}
	return &models.Nutrients{
		Kcal:               kcal,
		ProteinGrams:       in.ProteinGrams,
		FatGrams:           in.FatGrams,
		CarbohydratesGrams: in.CarbohydratesGrams,
		SugarGrams:         in.SugarGrams,
		SaltGrams:          in.SaltGrams,
		VitaminAMg:         in.VitaminAMg,
		VitaminCMg:         in.VitaminCMg,
		VitaminDUg:         in.VitaminDUg,
		IronMg:             in.IronMg,
		CalciumMg:          in.CalciumMg,
		MagnesiumMg:        in.MagnesiumMg,
		SodiumMg:           in.SodiumMg,
		ZincMg:             in.ZincMg,
	}
}
