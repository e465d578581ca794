package models

// Nutrients holds the nutritional values of one product description, stated
// per portion. Only kcal is mandatory; every other field is independently
// nullable because labels rarely list the full set.
type Nutrients struct {
	ID                 int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Kcal               float64  `gorm:"column:kcal;not null"`
	ProteinGrams       *float64 `gorm:"column:protein_grams"`
	FatGrams           *float64 `gorm:"column:fat_grams"`
	CarbohydratesGrams *float64 `gorm:"column:carbohydrates_grams"`
	SugarGrams         *float64 `gorm:"column:sugar_grams"`
	SaltGrams          *float64 `gorm:"column:salt_grams"`
	VitaminAMg         *float64 `gorm:"column:vitamin_a_mg"`
	VitaminCMg         *float64 `gorm:"column:vitamin_c_mg"`
	VitaminDUg         *float64 `gorm:"column:vitamin_d_ug"`
	IronMg             *float64 `gorm:"column:iron_mg"`
	CalciumMg          *float64 `gorm:"column:calcium_mg"`
	MagnesiumMg        *float64 `gorm:"column:magnesium_mg"`
	SodiumMg           *float64 `gorm:"column:sodium_mg"`
	ZincMg             *float64 `gorm:"column:zinc_mg"`
}
