package server

import (
	"context"
	"log"

	"github.com/fitstack/fitstack/internal/config"
	"github.com/fitstack/fitstack/internal/domain"
	"github.com/fitstack/fitstack/internal/handler"
	"github.com/fitstack/fitstack/internal/middleware"
	"github.com/fitstack/fitstack/internal/repository"
	"github.com/fitstack/fitstack/internal/service"
	"github.com/fitstack/fitstack/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config         *config.Config
	MongoDB        *mongo.Database
	RedisClient    *redis.Client
	IdentityClient service.IdentityClient
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	refreshTokenRepo := repository.NewMongoRefreshTokenRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)

	workoutRepo := repository.NewCollection[domain.Workout, *domain.Workout](deps.MongoDB, repository.CollectionConfig{
		Name:       "workouts",
		Defaults:   domain.WorkoutDefaults,
		OwnerField: "user_id",
	})
	workoutExerciseRepo := repository.NewCollection[domain.WorkoutExercise, *domain.WorkoutExercise](deps.MongoDB, repository.CollectionConfig{
		Name:        "workout_exercises",
		Defaults:    domain.WorkoutExerciseDefaults,
		OwnerField:  "user_id",
		IndexFields: []string{"workout_id"},
	})
	workoutPlanRepo := repository.NewCollection[domain.WorkoutPlan, *domain.WorkoutPlan](deps.MongoDB, repository.CollectionConfig{
		Name:       "workout_plans",
		Defaults:   domain.WorkoutPlanDefaults,
		OwnerField: "user_id",
	})
	challengeRepo := repository.NewCollection[domain.Challenge, *domain.Challenge](deps.MongoDB, repository.CollectionConfig{
		Name:        "challenges",
		Defaults:    domain.ChallengeDefaults,
		UniqueField: "name",
	})
	foodItemRepo := repository.NewCollection[domain.FoodItem, *domain.FoodItem](deps.MongoDB, repository.CollectionConfig{
		Name:        "food_items",
		Defaults:    domain.FoodItemDefaults,
		UniqueField: "name",
	})
	mealPlanRepo := repository.NewCollection[domain.MealPlan, *domain.MealPlan](deps.MongoDB, repository.CollectionConfig{
		Name:       "meal_plans",
		Defaults:   domain.MealPlanDefaults,
		OwnerField: "user_id",
	})
	nutritionEntryRepo := repository.NewCollection[domain.NutritionEntry, *domain.NutritionEntry](deps.MongoDB, repository.CollectionConfig{
		Name:        "nutrition_entries",
		Defaults:    domain.NutritionEntryDefaults,
		OwnerField:  "user_id",
		IndexFields: []string{"date"},
	})
	nutritionMealRepo := repository.NewCollection[domain.NutritionMeal, *domain.NutritionMeal](deps.MongoDB, repository.CollectionConfig{
		Name:       "nutrition_meals",
		Defaults:   domain.NutritionMealDefaults,
		OwnerField: "user_id",
	})
	progressRepo := repository.NewCollection[domain.ProgressRecord, *domain.ProgressRecord](deps.MongoDB, repository.CollectionConfig{
		Name:        "progress_records",
		Defaults:    domain.ProgressDefaults,
		OwnerField:  "user_id",
		IndexFields: []string{"date"},
	})

	// The exercise library is global and read-heavy; wrap it with the cache.
	exerciseMongo := repository.NewCollection[domain.Exercise, *domain.Exercise](deps.MongoDB, repository.CollectionConfig{
		Name:        "exercises",
		Defaults:    domain.ExerciseDefaults,
		UniqueField: "name",
	})
	exerciseRepo := repository.NewCachedExerciseRepository(exerciseMongo, cacheRepo)

	// Media storage for progress photos. Optional: the API runs without it,
	// photo upload returns 503.
	var mediaRepo *repository.S3MediaRepository
	if deps.Config.S3.Endpoint != "" {
		var err error
		mediaRepo, err = repository.NewS3MediaRepository(context.Background(), deps.Config.S3)
		if err != nil {
			log.Printf("Warning: Failed to initialize media repository: %v", err)
			mediaRepo = nil
		}
	}

	// Initialize services
	tokenService := service.NewTokenService(deps.Config.JWT, refreshTokenRepo, userRepo)
	authService := service.NewAuthService(userRepo, deps.IdentityClient, tokenService)
	dashboardService := service.NewDashboardService(workoutRepo, workoutPlanRepo, nutritionEntryRepo, progressRepo, challengeRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, tokenService)
	profileHandler := handler.NewProfileHandler(userRepo)
	progressHandler := handler.NewProgressHandler(progressRepo, mediaRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FitStack API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "fitstack-api",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")
	authMW := middleware.VerifyAccessToken(deps.Config.JWT.Secret)
	adminMW := middleware.AuthorizeRole(domain.RoleAdmin)

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Profile (authenticated user)
	me := v1.Group("/me", authMW)
	me.Get("/profile", profileHandler.Get)
	me.Put("/profile", profileHandler.Update)

	// Dashboard
	v1.Get("/dashboard/summary", authMW, dashboardHandler.Summary)

	// Global libraries: public read, admin write
	handler.NewResource(handler.ResourceConfig[domain.Exercise]{
		Name:   "exercise",
		Plural: "exercises",
		Repo:   exerciseRepo,
	}).Register(v1.Group("/exercises"), authMW, adminMW)

	handler.NewResource(handler.ResourceConfig[domain.FoodItem]{
		Name:   "food item",
		Plural: "food_items",
		Repo:   foodItemRepo,
	}).Register(v1.Group("/food-items"), authMW, adminMW)

	// Challenges: authenticated read, admin write
	handler.NewResource(handler.ResourceConfig[domain.Challenge]{
		Name:   "challenge",
		Plural: "challenges",
		Repo:   challengeRepo,
	}).Register(v1.Group("/challenges", authMW), adminMW)

	// User-owned resources
	handler.NewResource(handler.ResourceConfig[domain.Workout]{
		Name:     "workout",
		Plural:   "workouts",
		Repo:     workoutRepo,
		SetOwner: func(e *domain.Workout, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.Workout) string { return e.UserID },
	}).Register(v1.Group("/workouts", authMW))

	handler.NewResource(handler.ResourceConfig[domain.WorkoutExercise]{
		Name:     "workout exercise",
		Plural:   "workout_exercises",
		Repo:     workoutExerciseRepo,
		SetOwner: func(e *domain.WorkoutExercise, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.WorkoutExercise) string { return e.UserID },
	}).Register(v1.Group("/workout-exercises", authMW))

	handler.NewResource(handler.ResourceConfig[domain.WorkoutPlan]{
		Name:     "workout plan",
		Plural:   "workout_plans",
		Repo:     workoutPlanRepo,
		SetOwner: func(e *domain.WorkoutPlan, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.WorkoutPlan) string { return e.UserID },
	}).Register(v1.Group("/workout-plans", authMW))

	handler.NewResource(handler.ResourceConfig[domain.MealPlan]{
		Name:     "meal plan",
		Plural:   "meal_plans",
		Repo:     mealPlanRepo,
		SetOwner: func(e *domain.MealPlan, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.MealPlan) string { return e.UserID },
	}).Register(v1.Group("/meal-plans", authMW))

	handler.NewResource(handler.ResourceConfig[domain.NutritionEntry]{
		Name:     "nutrition entry",
		Plural:   "nutrition_entries",
		Repo:     nutritionEntryRepo,
		SetOwner: func(e *domain.NutritionEntry, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.NutritionEntry) string { return e.UserID },
	}).Register(v1.Group("/nutrition-entries", authMW))

	handler.NewResource(handler.ResourceConfig[domain.NutritionMeal]{
		Name:     "nutrition meal",
		Plural:   "nutrition_meals",
		Repo:     nutritionMealRepo,
		SetOwner: func(e *domain.NutritionMeal, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.NutritionMeal) string { return e.UserID },
	}).Register(v1.Group("/nutrition-meals", authMW))

	progress := v1.Group("/progress", authMW)
	handler.NewResource(handler.ResourceConfig[domain.ProgressRecord]{
		Name:     "progress record",
		Plural:   "progress_records",
		Repo:     progressRepo,
		SetOwner: func(e *domain.ProgressRecord, id string) { e.UserID = id },
		OwnerOf:  func(e *domain.ProgressRecord) string { return e.UserID },
	}).Register(progress)
	progress.Post("/:id/photos", progressHandler.UploadPhoto)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
	})
}
