// File: cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/bayusbkt/patungan-bay/internal/config"
	pg "github.com/bayusbkt/patungan-bay/internal/infra/db/postgres"
	"github.com/bayusbkt/patungan-bay/internal/infra/logging"
	"github.com/bayusbkt/patungan-bay/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	productRepo := pg.NewProductRepo(pool)
	pricingUC := usecase.NewPricingUseCase(cfg.Billing.TaxRate, logger)
	catalogUC := usecase.NewCatalogUseCase(productRepo, pricingUC, logger)

	// If products already exist, do nothing
	products, err := catalogUC.List(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(products) > 0 {
		fmt.Printf("%d products already present. No changes.\n", len(products))
		for _, p := range products {
			fmt.Printf("  - %s (price=%d IDR, capacity=%d, months=%d)\n", p.Name, p.Price, p.Capacity, p.DurationMonths)
		}
		return
	}

	// Seed a few sample products for testing the booking flow
	seed := []usecase.CreateProductInput{
		{
			Name: "Netflix Premium", Tagline: "4K family plan, split five ways",
			About:          "One Premium plan shared by a full group.",
			Price:          1_000_000, Capacity: 5, DurationMonths: 12, IsPopular: true,
			Keypoints: []string{"4K Ultra HD", "Watch on 4 screens", "Private profile"},
		},
		{
			Name: "Spotify Family", Tagline: "Six seats, one bill",
			About:          "Family mix and individual libraries for every member.",
			Price:          474_000, Capacity: 6, DurationMonths: 6,
			Keypoints: []string{"Ad-free music", "Own account", "Offline playback"},
		},
		{
			Name: "YouTube Premium", Tagline: "No ads, shared",
			About:          "Background play and downloads for the whole group.",
			Price:          390_000, Capacity: 5, DurationMonths: 6,
			Keypoints: []string{"No ads", "Background play"},
		},
	}

	for _, in := range seed {
		p, err := catalogUC.Create(ctx, in)
		if err != nil {
			log.Fatalf("create product %q: %v", in.Name, err)
		}
		pp, _ := p.PricePerPerson()
		fmt.Printf("seeded: %s (id=%s, price=%d IDR, per-person=%d IDR)\n", p.Name, p.ID, p.Price, pp)
	}

	fmt.Println("Seeding complete.")
}
