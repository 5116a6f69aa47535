package domain

import "time"

// Challenge is a time-boxed goal users can sign up to.
type Challenge struct {
	Model        `bson:",inline"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description" json:"description"`
	Goal         string    `bson:"goal" json:"goal"` // e.g., "Run 50km", "30 workouts"
	StartDate    time.Time `bson:"start_date" json:"start_date"`
	EndDate      time.Time `bson:"end_date" json:"end_date"`
	Participants []string  `bson:"participants" json:"participants"` // user ids
}

// Active reports whether the challenge window contains now.
func (c *Challenge) Active(now time.Time) bool {
	return !now.Before(c.StartDate) && now.Before(c.EndDate)
}

// HasParticipant checks membership without touching the database.
func (c *Challenge) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

var ChallengeDefaults = ListDefaults{
	Sort:         "start_date",
	Order:        OrderDesc,
	Limit:        10,
	SearchFields: []string{"name", "description", "goal"},
	SortFields:   []string{"start_date", "end_date", "name", "created_at"},
}
