package domain

import "time"

// Workout is one logged training session.
type Workout struct {
	Model      `bson:",inline"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Title      string    `bson:"title" json:"title"`
	Notes      string    `bson:"notes" json:"notes"`
	Date       time.Time `bson:"date" json:"date"`
	DurationM  int       `bson:"duration_minutes" json:"duration_minutes"`
	CaloriesKc int       `bson:"calories_burned" json:"calories_burned"`
}

// WorkoutExercise links an exercise into a workout with its prescription.
type WorkoutExercise struct {
	Model       `bson:",inline"`
	UserID      string  `bson:"user_id" json:"user_id"`
	WorkoutID   string  `bson:"workout_id" json:"workout_id"`
	ExerciseID  string  `bson:"exercise_id" json:"exercise_id"`
	Name        string  `bson:"name" json:"name"` // denormalized for list views
	Sets        int     `bson:"sets" json:"sets"`
	Reps        int     `bson:"reps" json:"reps"`
	Weight      float64 `bson:"weight" json:"weight"`
	RestSeconds int     `bson:"rest_seconds" json:"rest_seconds"`
	Order       int     `bson:"order" json:"order"`
}

// PlanExercise is one row of a workout plan's exercise list. ClientID is the
// frontend-assigned ULID used for the identity handshake before the plan is
// saved.
type PlanExercise struct {
	ClientID    string `bson:"client_id" json:"client_id"`
	ExerciseID  string `bson:"exercise_id" json:"exercise_id"`
	Name        string `bson:"name" json:"name"`
	Day         int    `bson:"day" json:"day"`
	Sets        int    `bson:"sets" json:"sets"`
	Reps        int    `bson:"reps" json:"reps"`
	RestSeconds int    `bson:"rest_seconds" json:"rest_seconds"`
}

// WorkoutPlan is a multi-week training program owned by a user.
type WorkoutPlan struct {
	Model       `bson:",inline"`
	UserID      string         `bson:"user_id" json:"user_id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	Weeks       int            `bson:"weeks" json:"weeks"`
	Level       string         `bson:"level" json:"level"` // beginner|intermediate|advanced
	Exercises   []PlanExercise `bson:"exercises" json:"exercises"`
}

// WorkoutDefaults: newest session first.
var WorkoutDefaults = ListDefaults{
	Sort:         "date",
	Order:        OrderDesc,
	Limit:        10,
	SearchFields: []string{"title", "notes"},
	SortFields:   []string{"date", "title", "duration_minutes", "calories_burned", "created_at"},
}

var WorkoutExerciseDefaults = ListDefaults{
	Sort:         "order",
	Order:        OrderAsc,
	Limit:        50,
	SearchFields: []string{"name"},
	SortFields:   []string{"order", "name", "sets", "weight", "created_at"},
}

var WorkoutPlanDefaults = ListDefaults{
	Sort:         "name",
	Order:        OrderAsc,
	Limit:        10,
	SearchFields: []string{"name", "description"},
	SortFields:   []string{"name", "weeks", "level", "created_at"},
}
