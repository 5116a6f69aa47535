package domain

import "time"

// ProgressRecord is one body measurement check-in, optionally with photos
// stored in the media bucket (keys, not URLs).
type ProgressRecord struct {
	Model       `bson:",inline"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Date        time.Time `bson:"date" json:"date"`
	WeightKg    float64   `bson:"weight_kg" json:"weight_kg"`
	BodyFatPct  float64   `bson:"body_fat_pct" json:"body_fat_pct"`
	MuscleKg    float64   `bson:"muscle_kg" json:"muscle_kg"`
	WaistCm     float64   `bson:"waist_cm" json:"waist_cm"`
	Notes       string    `bson:"notes" json:"notes"`
	PhotoKeys   []string  `bson:"photo_keys" json:"photo_keys"`
}

var ProgressDefaults = ListDefaults{
	Sort:         "date",
	Order:        OrderDesc,
	Limit:        12,
	SearchFields: []string{"notes"},
	SortFields:   []string{"date", "weight_kg", "body_fat_pct", "created_at"},
}
