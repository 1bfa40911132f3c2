// Command admin_seed creates the initial administrador user and the
// default redeemable product catalog.
package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"walletcore/internal/config"
	"walletcore/internal/models"
	"walletcore/internal/repositories"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	db, err := repositories.Connect(repositories.DefaultDBConfig())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	repo := repositories.NewLedgerRepository(db, nil)

	products := []models.Product{
		{Name: "Gift Card $10", CostInPoints: 1000},
		{Name: "Gift Card $25", CostInPoints: 2400},
		{Name: "Movie Ticket", CostInPoints: 800},
	}
	for _, p := range products {
		if err := db.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
			log.Fatalf("failed to seed product %q: %v", p.Name, err)
		}
	}
	log.Printf("product catalog seeded (%d products)", len(products))

	if _, err := repo.GetUserByEmail(adminEmail); err == nil {
		log.Println("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		FirstName: "Admin",
		Email:     adminEmail,
		Password:  string(hashed),
		Role:      models.RoleAdministrador,
	}
	if err := repo.CreateUser(admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	log.Printf("admin user %s created", adminEmail)
}
