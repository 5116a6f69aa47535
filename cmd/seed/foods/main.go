package main

import (
	"context"
	"log"
	"time"

	"github.com/fitstack/fitstack/internal/config"
	"github.com/fitstack/fitstack/internal/domain"
	"github.com/fitstack/fitstack/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewCollection[domain.FoodItem, *domain.FoodItem](db, repository.CollectionConfig{
		Name:        "food_items",
		Defaults:    domain.FoodItemDefaults,
		UniqueField: "name",
	})

	foods := []domain.FoodItem{
		{Name: "Chicken Breast", Serving: "100g", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
		{Name: "White Rice (cooked)", Serving: "100g", Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3},
		{Name: "Brown Rice (cooked)", Serving: "100g", Calories: 112, Protein: 2.6, Carbs: 24, Fat: 0.9},
		{Name: "Whole Egg", Serving: "1 large", Calories: 72, Protein: 6.3, Carbs: 0.4, Fat: 4.8},
		{Name: "Oats (dry)", Serving: "100g", Calories: 389, Protein: 16.9, Carbs: 66, Fat: 6.9},
		{Name: "Banana", Serving: "1 medium", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
		{Name: "Salmon", Serving: "100g", Calories: 208, Protein: 20, Carbs: 0, Fat: 13},
		{Name: "Greek Yogurt (plain)", Serving: "100g", Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4},
		{Name: "Almonds", Serving: "28g", Calories: 164, Protein: 6, Carbs: 6, Fat: 14},
		{Name: "Broccoli", Serving: "100g", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4},
		{Name: "Sweet Potato", Serving: "100g", Calories: 86, Protein: 1.6, Carbs: 20, Fat: 0.1},
		{Name: "Whey Protein", Serving: "1 scoop (30g)", Calories: 120, Protein: 24, Carbs: 3, Fat: 1.5},
		{Name: "Peanut Butter", Serving: "2 tbsp", Calories: 188, Protein: 8, Carbs: 6, Fat: 16},
		{Name: "Avocado", Serving: "1/2 fruit", Calories: 160, Protein: 2, Carbs: 8.5, Fat: 14.7},
		{Name: "Lean Beef (90/10)", Serving: "100g", Calories: 176, Protein: 20, Carbs: 0, Fat: 10},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i := range foods {
		f := &foods[i]
		g.Go(func() error {
			if err := repo.Create(gctx, f); err != nil {
				if err == domain.ErrDuplicate {
					log.Printf("skip %s: already seeded", f.Name)
					return nil
				}
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("✓ Seeded %d food items", len(foods))
}
