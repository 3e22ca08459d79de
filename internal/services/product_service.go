package services

import (
	"encoding/json"
	"errors"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// ProductInput carries the mutable fields of a catalog product.
type ProductInput struct {
	Name         string                 `json:"name"`
	SKU          string                 `json:"sku"`
	Category     string                 `json:"category"`
	Description  string                 `json:"description"`
	SizeRange    types.FlexList[string] `json:"sizeRange"`
	ColorOptions types.FlexList[string] `json:"colorOptions"`
	ImageURL     string                 `json:"imageUrl"`
	UnitCost     *float64               `json:"unitCost"`
}

// CreateProduct adds a product to the catalog. SKUs are unique.
func CreateProduct(db *gorm.DB, input *ProductInput) (*models.Product, error) {
	if input.Name == "" || input.SKU == "" {
		return nil, types.Validation("Product name and SKU are required")
	}

	product := models.Product{
		Name:        input.Name,
		SKU:         input.SKU,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if input.UnitCost != nil {
		product.UnitCost = *input.UnitCost
	}
	if err := setStringList(&product.SizeRange, input.SizeRange.Slice()); err != nil {
		return nil, err
	}
	if err := setStringList(&product.ColorOptions, input.ColorOptions.Slice()); err != nil {
		return nil, err
	}

	if err := db.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Validation("A product with this SKU already exists")
		}
		return nil, err
	}
	return &product, nil
}

// ListProducts returns the whole catalog, newest first.
func ListProducts(db *gorm.DB) ([]models.Product, error) {
	products := []models.Product{}
	err := db.Order("created_at DESC").Find(&products).Error
	return products, err
}

// GetProduct returns one product.
func GetProduct(db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Product not found")
		}
		return nil, err
	}
	return &product, nil
}

// GetProductBySKU returns one product looked up by SKU.
func GetProductBySKU(db *gorm.DB, sku string) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "sku = ?", sku).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Product not found")
		}
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies partial updates. The SKU stays unique.
func UpdateProduct(db *gorm.DB, id string, input *ProductInput) (*models.Product, error) {
	product, err := GetProduct(db, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.SKU != "" {
		product.SKU = input.SKU
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.UnitCost != nil {
		product.UnitCost = *input.UnitCost
	}
	if input.SizeRange != nil {
		if err := setStringList(&product.SizeRange, input.SizeRange.Slice()); err != nil {
			return nil, err
		}
	}
	if input.ColorOptions != nil {
		if err := setStringList(&product.ColorOptions, input.ColorOptions.Slice()); err != nil {
			return nil, err
		}
	}

	if err := db.Save(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Validation("A product with this SKU already exists")
		}
		return nil, err
	}
	return product, nil
}

// DeleteProduct hard-deletes a product. Order items keep their product id
// and dangle on later reads.
func DeleteProduct(db *gorm.DB, id string) error {
	if _, err := GetProduct(db, id); err != nil {
		return err
	}
	return db.Delete(&models.Product{}, "id = ?", id).Error
}

// ProductCategories returns the distinct categories currently in use.
func ProductCategories(db *gorm.DB) ([]string, error) {
	categories := []string{}
	err := db.Model(&models.Product{}).
		Where("category <> ''").
		Distinct("category").
		Pluck("category", &categories).Error
	return categories, err
}

// ProductsByCategory lists the products of one category.
func ProductsByCategory(db *gorm.DB, category string) ([]models.Product, error) {
	products := []models.Product{}
	if err := db.Where("category = ?", category).Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, types.NotFound("No products found in this category")
	}
	return products, nil
}

func setStringList(target *models.JSON, values []string) error {
	if values == nil {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	*target = models.NewJSON(raw)
	return nil
}
