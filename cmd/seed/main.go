package main

import (
	"log"
	"os"

	"winetour-be/internal/model"
	"winetour-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a development database: one admin account plus a small Provence
// catalog so the explore endpoints return something on a fresh install.
// Idempotent: existing rows (matched by email / name) are skipped.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding winetour database...")

	seedAdmin(db)
	seedVineyards(db)
	seedRestaurants(db)

	color.Green("✅ Seeding completed")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@winetour.example"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		color.Yellow("SEED_ADMIN_PASSWORD not set, using default (change it!)")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin '%s' already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash admin password: %v", err)
	}
	hashStr := string(hash)

	admin := model.User{
		Email:         email,
		PasswordHash:  &hashStr,
		FullName:      "Winetour Admin",
		Role:          "admin",
		Status:        "active",
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error: Failed to create admin user: %v", err)
	}
	color.Green("Created admin user: %s", email)
}

func seedVineyards(db *gorm.DB) {
	vineyards := []model.Vineyard{
		{
			Name:        "Domaine de la Garrigue",
			Region:      "provence",
			Address:     "Route des Crêtes, 83740 La Cadière-d'Azur",
			Description: "Family estate overlooking the Bandol hills, known for mourvèdre rosé.",
			IsActive:    true,
			Offers: []model.VineyardOffer{
				{Name: "Cellar Tour & Tasting", Price: 35, IsActive: true},
				{Name: "Vertical Rosé Flight", Price: 55, IsActive: true},
			},
		},
		{
			Name:        "Château Sainte-Roseline",
			Region:      "provence",
			Address:     "510 Route de Sainte Roseline, 83460 Les Arcs",
			Description: "Cru classé estate around a 12th-century cloister.",
			IsActive:    true,
			Offers: []model.VineyardOffer{
				{Name: "Classic Tasting", Price: 25, IsActive: true},
				{Name: "Vineyard Walk & Barrel Room", Price: 60, IsActive: true},
			},
		},
		{
			Name:        "Clos du Ventoux",
			Region:      "rhone",
			Address:     "Chemin des Lavandes, 84340 Malaucène",
			Description: "Small organic producer at the foot of Mont Ventoux.",
			IsActive:    true,
			Offers: []model.VineyardOffer{
				{Name: "Organic Syrah Tasting", Price: 30, IsActive: true},
			},
		},
	}

	for _, v := range vineyards {
		var existing model.Vineyard
		if err := db.Where("name = ?", v.Name).First(&existing).Error; err == nil {
			color.Yellow("Vineyard '%s' already exists, skipping", v.Name)
			continue
		}
		if err := db.Create(&v).Error; err != nil {
			color.Red("Failed to create vineyard '%s': %v", v.Name, err)
			continue
		}
		color.Green("Created vineyard: %s (%d offers)", v.Name, len(v.Offers))
	}
}

func seedRestaurants(db *gorm.DB) {
	restaurants := []model.Restaurant{
		{
			Name:        "La Table du Vigneron",
			Region:      "provence",
			Address:     "12 Place de l'Église, 83460 Les Arcs",
			Cuisine:     "provencal",
			Description: "Seasonal menu built around the neighbouring estates' wines.",
			IsActive:    true,
		},
		{
			Name:        "Bistrot des Lavandes",
			Region:      "rhone",
			Address:     "4 Cours des Platanes, 84340 Malaucène",
			Cuisine:     "bistro",
			Description: "Village bistro with a long Ventoux wine list.",
			IsActive:    true,
		},
	}

	for _, r := range restaurants {
		var existing model.Restaurant
		if err := db.Where("name = ?", r.Name).First(&existing).Error; err == nil {
			color.Yellow("Restaurant '%s' already exists, skipping", r.Name)
			continue
		}
		if err := db.Create(&r).Error; err != nil {
			color.Red("Failed to create restaurant '%s': %v", r.Name, err)
			continue
		}
		color.Green("Created restaurant: %s", r.Name)
	}
}
