package main

import (
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Stock       int
	Images      []string
}

type seedCategory struct {
	Name        string
	Description string
	Products    []seedProduct
}

var seedCatalog = []seedCategory{
	{
		Name:        "Electronics",
		Description: "Phones, audio and wearables",
		Products: []seedProduct{
			{
				Name:        "Wireless Bluetooth Earphones",
				Description: "High quality sound, long battery life, comfortable to wear",
				Price:       "99.99",
				Stock:       50,
				Images:      []string{"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800"},
			},
			{
				Name:        "Smart Watch",
				Description: "Health monitoring, fitness tracking, message notifications",
				Price:       "199.99",
				Stock:       20,
				Images:      []string{"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800"},
			},
		},
	},
	{
		Name:        "Lifestyle",
		Description: "Everyday carry",
		Products: []seedProduct{
			{
				Name:        "Multi-function Backpack",
				Description: "Large capacity, waterproof and anti-theft, USB charging port",
				Price:       "79.99",
				Stock:       30,
				Images:      []string{"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800"},
			},
		},
	},
	{
		Name:        "Accessories",
		Description: "Chargers and cables",
		Products: []seedProduct{
			{
				Name:        "Portable Power Bank",
				Description: "High capacity, fast charging, multi-device compatible",
				Price:       "49.99",
				Stock:       100,
				Images:      []string{"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800"},
			},
			{
				Name:        "USB-C Cable",
				Description: "Braided, 2 meters",
				Price:       "10.00",
				Stock:       200,
			},
		},
	},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	staff, err := models.InitDefaultStaff(cfg.Seed.StaffEmail, cfg.Seed.StaffPassword)
	if err != nil {
		stdLog.Fatalf("Failed to create staff user: %v", err)
	}
	stdLog.Printf("Staff user ready: %s", staff.Email)

	for _, seed := range seedCatalog {
		category := models.Category{Name: seed.Name}
		result := models.DB.Where("name = ?", seed.Name).Attrs(models.Category{Description: seed.Description}).FirstOrCreate(&category)
		if result.Error != nil {
			stdLog.Printf("Failed to create category %s: %v", seed.Name, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			stdLog.Printf("Created category: %s", seed.Name)
		} else {
			stdLog.Printf("Category already exists: %s", seed.Name)
		}

		for _, item := range seed.Products {
			product := models.Product{
				CategoryID:  category.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(item.Price)),
				Stock:       item.Stock,
				Images:      models.StringArray(item.Images),
			}
			var existing models.Product
			found := models.DB.Where("name = ? AND category_id = ?", item.Name, category.ID).Limit(1).Find(&existing)
			if found.Error != nil {
				stdLog.Printf("Failed to query product %s: %v", item.Name, found.Error)
				continue
			}
			if found.RowsAffected > 0 {
				stdLog.Printf("Product already exists: %s", item.Name)
				continue
			}
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", item.Name, err)
				continue
			}
			stdLog.Printf("Created product: %s", item.Name)
		}
	}

	stdLog.Printf("Seed completed")
}
