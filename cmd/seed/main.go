package main

import (
	"context"
	"log"
	"os"
	"time"

	"heartgift-be/internal/entity"
	"heartgift-be/internal/repository/unitofwork"
	"heartgift-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Seeds one demo gift per theme so a fresh environment has something to view.
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

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	repo := uow.GiftRepository()

	demos := []*entity.GiftConfiguration{
		demoGift(entity.ThemeCouple, "Maria", "João", "Feliz aniversário de namoro!", "#ff6b9d", "#ff8fab", "hearts"),
		demoGift(entity.ThemeBirthday, "Ana", "Equipe", "Parabéns pelo seu dia!", "#4ecdc4", "#ffc107", "confetti"),
		demoGift(entity.ThemeCorporate, "Carlos", "Diretoria", "Obrigado por 10 anos de dedicação.", "#6366f1", "#8b5cf6", "sparkles"),
	}

	success := color.New(color.FgGreen)
	for _, gift := range demos {
		if err := repo.Create(ctx, gift); err != nil {
			color.Red("Failed to seed %s gift: %v", gift.Theme, err)
			continue
		}
		success.Printf("Seeded %s gift %s\n", gift.Theme, gift.Id)
	}
}

func demoGift(theme entity.Theme, recipient, sender, message, background, accent, particle string) *entity.GiftConfiguration {
	now := time.Now()
	return &entity.GiftConfiguration{
		Theme:         theme,
		RecipientName: recipient,
		SenderName:    sender,
		Message:       message,
		SpecialDate:   now.AddDate(0, 1, 0),
		Customization: entity.Customization{
			TextColor:   "#ffffff",
			AccentColor: accent,
			Background: entity.Background{
				Type:  entity.BackgroundSolid,
				Color: background,
			},
			Typography: entity.Typography{
				FontFamily: "Inter",
				FontSize:   16,
				LineHeight: 1.5,
				Alignment:  "center",
				Transform:  "none",
			},
			Layout: entity.Layout{
				Type:         "classic",
				Spacing:      16,
				Padding:      24,
				BorderRadius: 12,
			},
			Animation: entity.Animation{
				Type:      "fade",
				Direction: "up",
				Duration:  1,
				Speed:     1,
			},
			Filters: entity.Filters{
				Brightness: 100,
				Contrast:   100,
				Saturation: 100,
			},
			ParticleEffect:  particle,
			PhotoFrame:      "classic",
			ShadowIntensity: 30,
		},
		Photos:        []string{},
		PlanTier:      entity.TierPremium,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
