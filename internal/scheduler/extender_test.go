package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/models"
	"github.com/quickcourt/quickcourt-api/internal/timeslot"
)

func TestNextMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midday rolls to next day",
			now:  time.Date(2026, 8, 29, 13, 45, 0, 0, loc),
			want: time.Date(2026, 8, 30, 0, 0, 0, 0, loc),
		},
		{
			name: "exactly midnight waits a full day",
			now:  time.Date(2026, 8, 29, 0, 0, 0, 0, loc),
			want: time.Date(2026, 8, 30, 0, 0, 0, 0, loc),
		},
		{
			name: "month boundary",
			now:  time.Date(2026, 8, 31, 23, 59, 59, 0, loc),
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextMidnight(tt.now); !got.Equal(tt.want) {
				t.Errorf("nextMidnight(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

// fakeCourtRepo records regenerate calls; the rest is canned data.
type fakeCourtRepo struct {
	courts      map[uint]*models.Court
	regenerated map[uint][]models.Slot
	failFor     uint
}

func (r *fakeCourtRepo) GetCourt(_ context.Context, id uint) (*models.Court, error) {
	c, ok := r.courts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCourtRepo) ListCourtIDs(_ context.Context) ([]uint, error) {
	var ids []uint
	for id := range r.courts {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeCourtRepo) RegenerateSlots(_ context.Context, courtID uint, candidates []models.Slot) error {
	if courtID == r.failFor {
		return gorm.ErrInvalidTransaction
	}
	r.regenerated[courtID] = candidates
	return nil
}

func (r *fakeCourtRepo) CreateCourt(context.Context, *models.Court, []models.Slot) error {
	return nil
}
func (r *fakeCourtRepo) UpdateCourt(context.Context, *models.Court) error { return nil }
func (r *fakeCourtRepo) ReplaceOperatingHours(context.Context, uint, []models.OperatingHours, []models.Slot) error {
	return nil
}
func (r *fakeCourtRepo) AddSlots(context.Context, uint, []models.Slot) (int64, error) {
	return 0, nil
}
func (r *fakeCourtRepo) RemoveSlot(context.Context, uint, uint) error  { return nil }
func (r *fakeCourtRepo) DeleteCourt(context.Context, uint) error       { return nil }
func (r *fakeCourtRepo) ListSlots(context.Context, uint, time.Time, time.Time) ([]models.Slot, error) {
	return nil, nil
}

func TestRunOnce(t *testing.T) {
	everyDay := []models.OperatingHours{
		{Day: "Sunday", Open: "08:00", Close: "09:00"},
		{Day: "Monday", Open: "08:00", Close: "09:00"},
		{Day: "Tuesday", Open: "08:00", Close: "09:00"},
		{Day: "Wednesday", Open: "08:00", Close: "09:00"},
		{Day: "Thursday", Open: "08:00", Close: "09:00"},
		{Day: "Friday", Open: "08:00", Close: "09:00"},
		{Day: "Saturday", Open: "08:00", Close: "09:00"},
	}

	repo := &fakeCourtRepo{
		courts: map[uint]*models.Court{
			1: {ID: 1, OperatingHours: everyDay},
			2: {ID: 2, OperatingHours: everyDay},
		},
		regenerated: map[uint][]models.Slot{},
		failFor:     2,
	}

	ext := NewSlotExtender(repo, "UTC", zap.NewNop())
	ext.RunOnce(context.Background())

	// One slot per day over the inclusive horizon.
	got := repo.regenerated[1]
	if len(got) != timeslot.HorizonDays+1 {
		t.Errorf("court 1 got %d candidates, want %d", len(got), timeslot.HorizonDays+1)
	}

	// The failing court is skipped, not fatal.
	if _, ok := repo.regenerated[2]; ok {
		t.Errorf("court 2 regenerated despite repository error")
	}
}
