package repository

import (
	"github.com/einkreativername/brightmiss/internal/domain"
	"gorm.io/gorm"
)

type InviteRepository interface {
	// CreateInvitedUser creates the invited user, its empty profile and the
	// invite token in one transaction.
	CreateInvitedUser(user *domain.User, token *domain.InviteToken) error
	FindByToken(token string) (*domain.InviteToken, error)

	// Redeem sets the user's password, clears the invited flag and consumes
	// the token atomically. The `used = false` guard makes a replayed
	// redemption fail instead of double-applying.
	Redeem(tokenID uint, userID uint, passwordHash string) error
	ListByUserID(userID uint, limit int) ([]domain.InviteToken, error)
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) CreateInvitedUser(user *domain.User, token *domain.InviteToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.Profile{UserID: user.ID}).Error; err != nil {
			return err
		}
		token.UserID = user.ID
		return tx.Create(token).Error
	})
}

func (r *inviteRepository) FindByToken(token string) (*domain.InviteToken, error) {
	var invite domain.InviteToken
	err := r.db.Preload("User").Where("token = ?", token).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) Redeem(tokenID uint, userID uint, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.InviteToken{}).
			Where("id = ? AND used = ?", tokenID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&domain.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"password_hash": passwordHash,
				"is_invited":    false,
			}).Error
	})
}

func (r *inviteRepository) ListByUserID(userID uint, limit int) ([]domain.InviteToken, error) {
	var tokens []domain.InviteToken
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
