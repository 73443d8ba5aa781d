package booking

import (
	"testing"
	"time"

	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		wantCode string
	}{
		{name: "confirmed can cancel", status: StatusConfirmed},
		{name: "pending can cancel", status: StatusPending},
		{name: "completed can cancel", status: StatusCompleted},
		{name: "cancelled is rejected", status: StatusCancelled, wantCode: "already_cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCancel(tt.status)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("CanCancel(%q) = %v, want nil", tt.status, err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("CanCancel(%q) = %v, want business error %q", tt.status, err, tt.wantCode)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("confirmed booking flips to cancelled", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusConfirmed)}

		if err := Cancel(b, now); err != nil {
			t.Fatalf("Cancel() = %v, want nil", err)
		}
		if b.Status != string(StatusCancelled) {
			t.Errorf("status = %q, want %q", b.Status, StatusCancelled)
		}
		if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
			t.Errorf("cancelled_at = %v, want %v", b.CancelledAt, now)
		}
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusConfirmed)}
		if err := Cancel(b, now); err != nil {
			t.Fatalf("first Cancel() = %v", err)
		}

		err := Cancel(b, now.Add(time.Hour))
		if !httperr.IsBusiness(err, "already_cancelled") {
			t.Errorf("second Cancel() = %v, want already_cancelled", err)
		}
		if !b.CancelledAt.Equal(now) {
			t.Errorf("cancelled_at moved to %v on rejected cancel", b.CancelledAt)
		}
	})
}

func TestActorMayCancel(t *testing.T) {
	b := &models.Booking{UserID: 10, FacilityID: 5}

	tests := []struct {
		name            string
		actor           Actor
		facilityOwnerID uint
		want            bool
	}{
		{name: "booking owner", actor: Actor{UserID: 10, Role: RoleUser}, want: true},
		{name: "admin", actor: Actor{UserID: 99, Role: RoleAdmin}, want: true},
		{name: "facility owner", actor: Actor{UserID: 7, Role: RoleFacilityOwner}, facilityOwnerID: 7, want: true},
		{name: "other user", actor: Actor{UserID: 11, Role: RoleUser}, want: false},
		{name: "other facility owner", actor: Actor{UserID: 8, Role: RoleFacilityOwner}, facilityOwnerID: 7, want: false},
		{name: "owner role without facility", actor: Actor{UserID: 7, Role: RoleFacilityOwner}, facilityOwnerID: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.MayCancel(b, tt.facilityOwnerID); got != tt.want {
				t.Errorf("MayCancel() = %v, want %v", got, tt.want)
			}
		})
	}
}
