package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/quickcourt/quickcourt-api/internal/domain/court"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

const slotBatchSize = 500

type CourtGormRepository struct {
	db *gorm.DB
}

func NewCourtGormRepository(db *gorm.DB) *CourtGormRepository {
	return &CourtGormRepository{db: db}
}

// lockCourt takes a row lock on the court, serializing every
// slot-mutating writer (owner edits, the extension job) per court.
func lockCourt(tx *gorm.DB, courtID uint) error {
	var court models.Court
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&court, courtID).Error
}

// --------------------------------------------------
// Court
// --------------------------------------------------

func (r *CourtGormRepository) GetCourt(
	ctx context.Context,
	courtID uint,
) (*models.Court, error) {

	var court models.Court
	if err := r.db.WithContext(ctx).
		Preload("OperatingHours").
		First(&court, courtID).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *CourtGormRepository) ListCourtIDs(
	ctx context.Context,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Court{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *CourtGormRepository) CreateCourt(
	ctx context.Context,
	c *models.Court,
	slots []models.Slot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return insertSlots(tx, c.ID, slots)
	})
}

func (r *CourtGormRepository) UpdateCourt(
	ctx context.Context,
	c *models.Court,
) error {
	return r.db.WithContext(ctx).
		Omit("OperatingHours", "Slots").
		Save(c).Error
}

func (r *CourtGormRepository) DeleteCourt(
	ctx context.Context,
	courtID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourt(tx, courtID); err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", courtID).Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", courtID).Delete(&models.OperatingHours{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Court{}, courtID).Error
	})
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

// insertSlots bulk-inserts candidates. ON CONFLICT DO NOTHING on the
// (court_id, date, time) unique index silently skips identities that
// already exist, which is exactly the merge rule: kept slots win.
func insertSlots(tx *gorm.DB, courtID uint, slots []models.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	for i := range slots {
		slots[i].CourtID = courtID
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(slots, slotBatchSize).Error
}

func (r *CourtGormRepository) RegenerateSlots(
	ctx context.Context,
	courtID uint,
	candidates []models.Slot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourt(tx, courtID); err != nil {
			return err
		}
		if err := tx.
			Where("court_id = ? AND booked = false", courtID).
			Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		return insertSlots(tx, courtID, candidates)
	})
}

func (r *CourtGormRepository) ReplaceOperatingHours(
	ctx context.Context,
	courtID uint,
	hours []models.OperatingHours,
	candidates []models.Slot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourt(tx, courtID); err != nil {
			return err
		}

		if err := tx.Where("court_id = ?", courtID).Delete(&models.OperatingHours{}).Error; err != nil {
			return err
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].CourtID = courtID
		}
		if len(hours) > 0 {
			if err := tx.Create(&hours).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("court_id = ? AND booked = false", courtID).
			Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		return insertSlots(tx, courtID, candidates)
	})
}

func (r *CourtGormRepository) AddSlots(
	ctx context.Context,
	courtID uint,
	candidates []models.Slot,
) (int64, error) {

	var added int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourt(tx, courtID); err != nil {
			return err
		}
		if len(candidates) == 0 {
			return nil
		}
		for i := range candidates {
			candidates[i].CourtID = courtID
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(candidates, slotBatchSize)
		if res.Error != nil {
			return res.Error
		}
		added = res.RowsAffected
		return nil
	})
	return added, err
}

func (r *CourtGormRepository) RemoveSlot(
	ctx context.Context,
	courtID uint,
	slotID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourt(tx, courtID); err != nil {
			return err
		}

		var slot models.Slot
		if err := tx.
			Where("id = ? AND court_id = ?", slotID, courtID).
			First(&slot).Error; err != nil {
			return err
		}
		if slot.Booked {
			return httperr.ErrBusiness("slot_booked")
		}

		return tx.Delete(&slot).Error
	})
}

func (r *CourtGormRepository) ListSlots(
	ctx context.Context,
	courtID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where(
			"court_id = ? AND date >= ? AND date <= ?",
			courtID,
			from.Format(dateLayout),
			to.Format(dateLayout),
		).
		Order("date ASC, time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*CourtGormRepository)(nil)
