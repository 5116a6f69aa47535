package domain

import "errors"

var ErrDuplicateExercise = errors.New("exercise name already exists")

// Exercise represents a move in the global library
type Exercise struct {
	Model       `bson:",inline"`
	Name        string `bson:"name" json:"name"`                 // Unique Index
	MuscleGroup string `bson:"muscle_group" json:"muscle_group"` // e.g., "Legs", "Chest"
	Equipment   string `bson:"equipment" json:"equipment"`       // e.g., "Barbell", "Dumbbell"
	VideoURL    string `bson:"video_url" json:"video_url"`
}

var ExerciseDefaults = ListDefaults{
	Sort:         "name",
	Order:        OrderAsc,
	Limit:        20,
	SearchFields: []string{"name", "muscle_group", "equipment"},
	SortFields:   []string{"name", "muscle_group", "equipment", "created_at"},
}
