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
	repo := repository.NewCollection[domain.Exercise, *domain.Exercise](db, repository.CollectionConfig{
		Name:        "exercises",
		Defaults:    domain.ExerciseDefaults,
		UniqueField: "name",
	})

	exercises := []domain.Exercise{
		// Legs
		{Name: "Barbell Squat", MuscleGroup: "Legs", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=SW_C1A-rejs"},
		{Name: "Leg Press", MuscleGroup: "Legs", Equipment: "Machine", VideoURL: "https://www.youtube.com/watch?v=IZxyjW7MPJQ"},
		{Name: "Walking Lunge", MuscleGroup: "Legs", Equipment: "Bodyweight/Dumbbell", VideoURL: "https://www.youtube.com/watch?v=D7KaRcUTQeE"},
		{Name: "Romanian Deadlift", MuscleGroup: "Legs (Hamstrings)", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=JCXUYuzwZ_M"},
		{Name: "Bulgarian Split Squat", MuscleGroup: "Legs", Equipment: "Dumbbell", VideoURL: "https://www.youtube.com/watch?v=9FOMyxA3Lw4"},
		{Name: "Calf Raise", MuscleGroup: "Legs (Calves)", Equipment: "Machine", VideoURL: "https://www.youtube.com/watch?v=3UWi44yN-wM"},

		// Chest
		{Name: "Barbell Bench Press", MuscleGroup: "Chest", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=EUjh50tLlBo"},
		{Name: "Incline Dumbbell Press", MuscleGroup: "Chest", Equipment: "Dumbbell", VideoURL: "https://www.youtube.com/watch?v=8iPEnn-ltC8"},
		{Name: "Push Up", MuscleGroup: "Chest", Equipment: "Bodyweight", VideoURL: "https://www.youtube.com/watch?v=IODxDxX7oi4"},
		{Name: "Cable Fly", MuscleGroup: "Chest", Equipment: "Cable", VideoURL: "https://www.youtube.com/watch?v=I-Ue34qLxc4"},

		// Back
		{Name: "Pull Up", MuscleGroup: "Back", Equipment: "Bodyweight", VideoURL: "https://www.youtube.com/watch?v=eGo4IYlbE5g"},
		{Name: "Lat Pulldown", MuscleGroup: "Back", Equipment: "Cable", VideoURL: "https://www.youtube.com/watch?v=CAwf7n6Luuc"},
		{Name: "Barbell Row", MuscleGroup: "Back", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=DgyslsszCQ0"},
		{Name: "Deadlift", MuscleGroup: "Back/Legs", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=U1H1VG9Uh50"},

		// Shoulders
		{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=2yjwXTZQDDI"},
		{Name: "Lateral Raise", MuscleGroup: "Shoulders", Equipment: "Dumbbell", VideoURL: "https://www.youtube.com/watch?v=3VcKaXpzqRo"},
		{Name: "Face Pull", MuscleGroup: "Shoulders (Rear Delts)", Equipment: "Cable", VideoURL: "https://www.youtube.com/watch?v=ntBwG1E3Pzs"},

		// Arms & Core
		{Name: "Barbell Curl", MuscleGroup: "Arms (Biceps)", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=kwG2ipFRgfo"},
		{Name: "Tricep Pushdown", MuscleGroup: "Arms (Triceps)", Equipment: "Cable", VideoURL: "https://www.youtube.com/watch?v=2-LAMcpzODU"},
		{Name: "Plank", MuscleGroup: "Core", Equipment: "Bodyweight", VideoURL: "https://www.youtube.com/watch?v=pSHjTRCQxIw"},
		{Name: "Hanging Leg Raise", MuscleGroup: "Core", Equipment: "Bodyweight", VideoURL: "https://www.youtube.com/watch?v=hdng3Nm1x_E"},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	seeded := 0
	for i := range exercises {
		ex := &exercises[i]
		g.Go(func() error {
			if err := repo.Create(gctx, ex); err != nil {
				if err == domain.ErrDuplicate {
					log.Printf("skip %s: already seeded", ex.Name)
					return nil
				}
				return err
			}
			return nil
		})
		seeded++
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("✓ Seeded %d exercises", seeded)
}
