package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	court "github.com/quickcourt/quickcourt-api/internal/domain/court"
	"github.com/quickcourt/quickcourt-api/internal/timeslot"
	"github.com/quickcourt/quickcourt-api/internal/timezone"
)

// SlotExtender rolls every court's slot horizon forward once a day at
// midnight in the configured timezone, so the bookable window stays at
// 90 days no matter how long the process runs.
type SlotExtender struct {
	repo court.Repository
	tz   string
	log  *zap.Logger
}

func NewSlotExtender(repo court.Repository, tz string, log *zap.Logger) *SlotExtender {
	return &SlotExtender{repo: repo, tz: tz, log: log}
}

// Start blocks until ctx is done; run it on its own goroutine.
func (s *SlotExtender) Start(ctx context.Context) {
	for {
		wait := time.Until(nextMidnight(timezone.NowIn(s.tz)))

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.RunOnce(ctx)
		}
	}
}

// RunOnce regenerates the unbooked slots of every court from its weekly
// hours over the next horizon. Booked slots are preserved; a failing
// court is logged and skipped so one bad court never stalls the rest.
func (s *SlotExtender) RunOnce(ctx context.Context) {
	ids, err := s.repo.ListCourtIDs(ctx)
	if err != nil {
		s.log.Error("slot extension: listing courts failed", zap.Error(err))
		return
	}

	today := timeslot.Normalize(timezone.NowIn(s.tz))
	horizon := today.AddDate(0, 0, timeslot.HorizonDays)

	var extended int
	for _, id := range ids {
		crt, err := s.repo.GetCourt(ctx, id)
		if err != nil {
			s.log.Warn("slot extension: court load failed",
				zap.Uint("court_id", id), zap.Error(err))
			continue
		}

		candidates := timeslot.GenerateForRange(today, horizon, crt.OperatingHours)
		if err := s.repo.RegenerateSlots(ctx, id, candidates); err != nil {
			s.log.Warn("slot extension: regenerate failed",
				zap.Uint("court_id", id), zap.Error(err))
			continue
		}
		extended++
	}

	s.log.Info("slot extension finished",
		zap.Int("courts", len(ids)),
		zap.Int("extended", extended),
		zap.String("horizon", horizon.Format("2006-01-02")),
	)
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1)
}
