package booking

import (
	"context"

	domain "github.com/quickcourt/quickcourt-api/internal/domain/booking"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return uc.repo.ListForUser(ctx, userID)
}

func (uc *ListBookings) ForOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	return uc.repo.ListForOwner(ctx, ownerID)
}

func (uc *ListBookings) All(ctx context.Context) ([]models.Booking, error) {
	return uc.repo.ListAll(ctx)
}
