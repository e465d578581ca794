package product

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Nutrients{},
		&models.ProductImage{},
		&models.ProductDescription{},
		&models.Product{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func descriptionInput(productID, name string) descriptions.Input {
	kcal := 250.0
	return descriptions.Input{
		ProductID:    productID,
		Name:         name,
		QuantityType: enums.QuantityTypeWeight,
		Portion:      100,
		Nutrients:    descriptions.NutrientsInput{Kcal: &kcal},
	}
}

func mustCreateProduct(t *testing.T, repo *Repository, productID, name string) *models.Product {
	t.Helper()
	created, err := repo.Create(context.Background(), descriptionInput(productID, name))
	if err != nil {
		t.Fatalf("create product %s: %v", productID, err)
	}
	return created
}
