package main

import (
	"github.com/minikart-next/minikart/internal/config"
	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Clothing", Slug: "clothing"},
		{Name: "Books", Slug: "books"},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "clothing", "books"}).Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:  categoryIDs["electronics"],
			Name:        "Wireless Headphones",
			Slug:        "wireless-headphones",
			Description: "Over-ear wireless headphones with noise cancellation.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(2499)),
			Quantity:    50,
			Shipping:    true,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["electronics"],
			Name:        "Smartwatch",
			Slug:        "smartwatch",
			Description: "Water-resistant smartwatch with a week of battery.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(4999)),
			Quantity:    30,
			Shipping:    true,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["clothing"],
			Name:        "Cotton T-Shirt",
			Slug:        "cotton-t-shirt",
			Description: "Plain cotton t-shirt, regular fit.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(499)),
			Quantity:    200,
			Shipping:    true,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["books"],
			Name:        "The Pragmatic Programmer",
			Slug:        "the-pragmatic-programmer",
			Description: "Classic software craftsmanship book.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(899)),
			Quantity:    80,
			Shipping:    true,
			IsActive:    true,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	stdLog.Println("Seed finished")
}
