package repository

import (
	"github.com/einkreativername/brightmiss/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByUserID(userID uint) (*domain.Profile, error)

	// UpdateTx loads the profile row under FOR UPDATE, applies the mutation
	// and saves, all inside one transaction. Concurrent decisions on
	// different fields of the same user serialize on the row lock, so the
	// cached ChangeRequested aggregate can never go stale.
	UpdateTx(userID uint, apply func(p *domain.Profile) error) (*domain.Profile, error)

	// ListWithPending returns every profile with at least one open change
	// request, with the owning user preloaded for display identity.
	ListWithPending() ([]domain.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(userID uint) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateTx(userID uint, apply func(p *domain.Profile) error) (*domain.Profile, error) {
	var profile domain.Profile

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			return err
		}
		if err := apply(&profile); err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListWithPending() ([]domain.Profile, error) {
	var profiles []domain.Profile

	err := r.db.
		Preload("User").
		Where(`first_name_pending IS NOT NULL
			OR last_name_pending IS NOT NULL
			OR phone_pending IS NOT NULL
			OR address_pending IS NOT NULL
			OR work_place_pending IS NOT NULL`).
		Order("updated_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
