package config

import (
	"log"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/pkg/password"
	"bloodlink-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// SeedMasterData seeds the reference data the app cannot run without:
// blood banks, one stock row per (bank, blood group) and a bootstrap
// Manager account for first sign-in.
func SeedMasterData(db *gorm.DB) error {
	if err := seedBanks(db); err != nil {
		return err
	}
	if err := seedStockRows(db); err != nil {
		return err
	}
	if err := seedBootstrapAdmin(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedBanks(db *gorm.DB) error {
	banks := []models.Bank{
		{ID: 1, Name: "Central Blood Bank", Location: "Downtown Medical District"},
		{ID: 2, Name: "Northside Blood Bank", Location: "North General Hospital Campus"},
		{ID: 3, Name: "Riverside Blood Bank", Location: "Riverside Community Clinic"},
	}

	for _, bank := range banks {
		var count int64
		if err := db.Model(&models.Bank{}).Where("id = ?", bank.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&bank).Error; err != nil {
				return err
			}
			log.Printf("  ➕ Seeded bank: %s", bank.Name)
		}
	}

	return nil
}

func seedStockRows(db *gorm.DB) error {
	var banks []models.Bank
	if err := db.Find(&banks).Error; err != nil {
		return err
	}

	for _, bank := range banks {
		for _, group := range validation.BloodGroups {
			var count int64
			err := db.Model(&models.BloodStock{}).
				Where("bank_id = ? AND blood_group = ?", bank.ID, group).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				stock := models.BloodStock{BankID: bank.ID, BloodGroup: group, UnitsAvailable: 0}
				if err := db.Create(&stock).Error; err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// seedBootstrapAdmin creates a default Manager for bank 1 when the admins
// table is empty. Credentials come from env so they never land in source.
func seedBootstrapAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := getEnv("BOOTSTRAP_ADMIN_USERNAME", "manager1")
	rawPassword := getEnv("BOOTSTRAP_ADMIN_PASSWORD", "change-me-1")

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return err
	}

	admin := models.Admin{
		FullName:      "Bootstrap Manager",
		Email:         "manager@bloodlink.local",
		ContactNumber: "0000000000",
		Role:          "Manager",
		Username:      username,
		Password:      hashed,
		BankID:        1,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("  ➕ Seeded bootstrap admin: %s (change the password)", username)
	return nil
}
