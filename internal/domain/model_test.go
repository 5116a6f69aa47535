package domain

import (
	"testing"
	"time"
)

func TestListQueryNormalize(t *testing.T) {
	defaults := ListDefaults{
		Sort:       "date",
		Order:      OrderDesc,
		Limit:      10,
		SortFields: []string{"date", "title", "created_at"},
	}

	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{
			name: "zero query picks up all defaults",
			in:   ListQuery{},
			want: ListQuery{Page: 1, Limit: 10, Sort: "date", Order: OrderDesc},
		},
		{
			name: "negative page clamps to first",
			in:   ListQuery{Page: -3, Limit: 5, Sort: "title", Order: OrderAsc},
			want: ListQuery{Page: 1, Limit: 5, Sort: "title", Order: OrderAsc},
		},
		{
			name: "limit capped at maximum",
			in:   ListQuery{Page: 1, Limit: 500, Sort: "date", Order: OrderAsc},
			want: ListQuery{Page: 1, Limit: 100, Sort: "date", Order: OrderAsc},
		},
		{
			name: "unknown sort field falls back to default sort and order",
			in:   ListQuery{Page: 2, Limit: 10, Sort: "password", Order: OrderAsc},
			want: ListQuery{Page: 2, Limit: 10, Sort: "date", Order: OrderDesc},
		},
		{
			name: "bad order falls back to default order",
			in:   ListQuery{Page: 1, Limit: 10, Sort: "title", Order: "sideways"},
			want: ListQuery{Page: 1, Limit: 10, Sort: "title", Order: OrderDesc},
		},
		{
			name: "search is trimmed",
			in:   ListQuery{Page: 1, Limit: 10, Sort: "title", Order: OrderAsc, Search: "  bench  "},
			want: ListQuery{Page: 1, Limit: 10, Sort: "title", Order: OrderAsc, Search: "bench"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(defaults)
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestModelStampTimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var m Model
	m.StampTimes(now, true)
	if m.CreatedAt != now || m.UpdatedAt != now {
		t.Errorf("insert stamp: created=%v updated=%v, want both %v", m.CreatedAt, m.UpdatedAt, now)
	}

	later := now.Add(time.Hour)
	m.StampTimes(later, false)
	if m.CreatedAt != now {
		t.Errorf("update must not move created_at, got %v", m.CreatedAt)
	}
	if m.UpdatedAt != later {
		t.Errorf("update stamp: updated=%v, want %v", m.UpdatedAt, later)
	}
}

func TestChallengeActive(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	c := &Challenge{StartDate: start, EndDate: end}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", start.Add(-time.Minute), false},
		{"at start", start, true},
		{"mid window", start.AddDate(0, 0, 15), true},
		{"at end", end, false},
		{"after end", end.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Active(tt.now); got != tt.want {
				t.Errorf("Active(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestChallengeHasParticipant(t *testing.T) {
	c := &Challenge{Participants: []string{"u1", "u2"}}

	if !c.HasParticipant("u2") {
		t.Error("expected u2 to be a participant")
	}
	if c.HasParticipant("u3") {
		t.Error("did not expect u3 to be a participant")
	}
}
