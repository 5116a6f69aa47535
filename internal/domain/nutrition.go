package domain

import "time"

// FoodItem is an entry in the global food library.
type FoodItem struct {
	Model    `bson:",inline"`
	Name     string  `bson:"name" json:"name"`
	Serving  string  `bson:"serving" json:"serving"` // e.g., "100g", "1 cup"
	Calories int     `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fat      float64 `bson:"fat" json:"fat"`
}

// MealFoodItem is one row of a meal's food list. ClientID carries the
// frontend-assigned ULID for rows created before the meal is saved.
type MealFoodItem struct {
	ClientID   string  `bson:"client_id" json:"client_id"`
	FoodItemID string  `bson:"food_item_id" json:"food_item_id"`
	Name       string  `bson:"name" json:"name"`
	Quantity   float64 `bson:"quantity" json:"quantity"`
	Calories   int     `bson:"calories" json:"calories"`
}

// NutritionMeal is a composed meal (the nested sub-form case: meal → foods).
type NutritionMeal struct {
	Model    `bson:",inline"`
	UserID   string         `bson:"user_id" json:"user_id"`
	Name     string         `bson:"name" json:"name"`
	MealType string         `bson:"meal_type" json:"meal_type"` // breakfast|lunch|dinner|snack
	Foods    []MealFoodItem `bson:"foods" json:"foods"`
}

// TotalCalories sums the composed rows.
func (m *NutritionMeal) TotalCalories() int {
	total := 0
	for _, f := range m.Foods {
		total += f.Calories
	}
	return total
}

// MealPlan groups meals into a weekly nutrition program.
type MealPlan struct {
	Model       `bson:",inline"`
	UserID      string   `bson:"user_id" json:"user_id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	MealIDs     []string `bson:"meal_ids" json:"meal_ids"`
	TargetKcal  int      `bson:"target_kcal" json:"target_kcal"`
}

// NutritionEntry is one logged intake for a day.
type NutritionEntry struct {
	Model    `bson:",inline"`
	UserID   string    `bson:"user_id" json:"user_id"`
	Date     time.Time `bson:"date" json:"date"`
	MealType string    `bson:"meal_type" json:"meal_type"`
	Name     string    `bson:"name" json:"name"`
	Calories int       `bson:"calories" json:"calories"`
	Protein  float64   `bson:"protein" json:"protein"`
	Carbs    float64   `bson:"carbs" json:"carbs"`
	Fat      float64   `bson:"fat" json:"fat"`
}

var FoodItemDefaults = ListDefaults{
	Sort:         "name",
	Order:        OrderAsc,
	Limit:        20,
	SearchFields: []string{"name"},
	SortFields:   []string{"name", "calories", "protein", "created_at"},
}

var NutritionMealDefaults = ListDefaults{
	Sort:         "name",
	Order:        OrderAsc,
	Limit:        10,
	SearchFields: []string{"name", "meal_type"},
	SortFields:   []string{"name", "meal_type", "created_at"},
}

var MealPlanDefaults = ListDefaults{
	Sort:         "name",
	Order:        OrderAsc,
	Limit:        10,
	SearchFields: []string{"name", "description"},
	SortFields:   []string{"name", "target_kcal", "created_at"},
}

var NutritionEntryDefaults = ListDefaults{
	Sort:         "date",
	Order:        OrderDesc,
	Limit:        20,
	SearchFields: []string{"name", "meal_type"},
	SortFields:   []string{"date", "calories", "meal_type", "created_at"},
}
