package main

import (
	"log"
	"os"

	"qr-dine-be/internal/model"
	"qr-dine-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
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

	color.Cyan("Seeding Token Catalog...")
	tokenTypes := seedTokenTypes(db)

	color.Cyan("Seeding Demo Merchant...")
	merchant := seedDemoMerchant(db)

	color.Cyan("Seeding Reward Rules...")
	seedRewardRules(db, merchant, tokenTypes)

	color.Cyan("Seeding Demo Menu...")
	seedDemoMenu(db, merchant)

	color.Green("✅ Seeding completed!")
}

func seedTokenTypes(db *gorm.DB) map[string]model.TokenType {
	types := []model.TokenType{
		{Name: "Reward Token", Symbol: "RWD", Description: "Earned on every paid order and as a welcome bonus", IsActive: true},
		{Name: "Cashback Token", Symbol: "CB", Description: "Percentage cashback on large orders", IsActive: true},
		{Name: "Loyalty Token", Symbol: "LOY", Description: "Long-term loyalty program balance", IsActive: true},
		{Name: "Referral Token", Symbol: "REF", Description: "Granted for referring new diners", IsActive: true},
	}

	out := make(map[string]model.TokenType, len(types))
	for _, t := range types {
		var existing model.TokenType
		if err := db.Where("symbol = ?", t.Symbol).First(&existing).Error; err == nil {
			color.Yellow("Token type '%s' already exists, skipping...", t.Symbol)
			out[t.Symbol] = existing
			continue
		}

		if err := db.Create(&t).Error; err != nil {
			color.Red("Error creating token type '%s': %v", t.Symbol, err)
			continue
		}
		color.Green("Created token type: %s (%s)", t.Name, t.Symbol)
		out[t.Symbol] = t
	}
	return out
}

func seedDemoMerchant(db *gorm.DB) model.Merchant {
	email := "demo@qrdine.local"

	var existing model.Merchant
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Merchant '%s' already exists, skipping...", email)
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing demo password: %v", err)
	}

	merchant := model.Merchant{
		Name:          "Warung Demo",
		Email:         email,
		PasswordHash:  string(hash),
		TokenRatio:    1.0,
		NewUserReward: 50,
		IsActive:      true,
	}
	if err := db.Create(&merchant).Error; err != nil {
		log.Fatalf("Error creating demo merchant: %v", err)
	}
	color.Green("Created merchant: %s (%s)", merchant.Name, merchant.Email)
	return merchant
}

func seedRewardRules(db *gorm.DB, merchant model.Merchant, tokenTypes map[string]model.TokenType) {
	rwd, ok := tokenTypes["RWD"]
	if !ok {
		color.Red("RWD token type missing, skipping reward rules")
		return
	}
	cb, hasCB := tokenTypes["CB"]

	rules := []model.RewardRule{
		{
			MerchantId:   merchant.Id,
			TokenTypeId:  rwd.Id,
			Name:         "Base order reward",
			Description:  "Flat tokens for any order above the minimum",
			TriggerType:  "order_amount",
			TriggerValue: 10,
			RewardAmount: 10,
			RewardType:   "fixed",
			IsActive:     true,
		},
	}
	if hasCB {
		rules = append(rules, model.RewardRule{
			MerchantId:   merchant.Id,
			TokenTypeId:  cb.Id,
			Name:         "Big spender cashback",
			Description:  "2% of the order back as cashback tokens",
			TriggerType:  "order_amount",
			TriggerValue: 50,
			RewardAmount: 2,
			RewardType:   "percentage",
			IsActive:     true,
		})
	}

	for _, r := range rules {
		var existing model.RewardRule
		if err := db.Where("merchant_id = ? AND name = ?", r.MerchantId, r.Name).First(&existing).Error; err == nil {
			color.Yellow("Reward rule '%s' already exists, skipping...", r.Name)
			continue
		}
		if err := db.Create(&r).Error; err != nil {
			color.Red("Error creating reward rule '%s': %v", r.Name, err)
			continue
		}
		color.Green("Created reward rule: %s", r.Name)
	}
}

func seedDemoMenu(db *gorm.DB, merchant model.Merchant) {
	products := []model.Product{
		{MerchantId: merchant.Id, Name: "Nasi Goreng", Description: "Fried rice with chicken and egg", Price: 6.50, IsAvailable: true},
		{MerchantId: merchant.Id, Name: "Mie Ayam", Description: "Chicken noodles with wonton", Price: 5.00, IsAvailable: true},
		{MerchantId: merchant.Id, Name: "Es Teh", Description: "Sweet iced tea", Price: 1.50, IsAvailable: true},
		{MerchantId: merchant.Id, Name: "Sate Ayam", Description: "Ten skewers with peanut sauce", Price: 7.00, IsAvailable: true},
	}

	for _, p := range products {
		var existing model.Product
		if err := db.Where("merchant_id = ? AND name = ?", p.MerchantId, p.Name).First(&existing).Error; err == nil {
			color.Yellow("Product '%s' already exists, skipping...", p.Name)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating product '%s': %v", p.Name, err)
			continue
		}
		color.Green("Created product: %s", p.Name)
	}
}
