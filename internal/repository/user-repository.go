package repository

import (
	"errors"

	"github.com/einkreativername/brightmiss/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	// CreateUserWithProfile creates the user and its empty profile in one
	// transaction. A duplicate email surfaces as the raw unique-violation
	// error from the store.
	CreateUserWithProfile(user *domain.User) error
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByID(userID uint) (*domain.User, error)
	SaveUser(user *domain.User) error
	ListUsers() ([]domain.User, error)

	// DeleteUser hard-deletes the user together with its profile and invite
	// tokens, so the email can be registered or invited again.
	DeleteUser(userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUserWithProfile(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Profile{UserID: user.ID}).Error
	})
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Save(user).Error
}

func (r *userRepository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user for good. The delete is unscoped: a
// soft-deleted row would keep the unique email reserved and block
// re-inviting that address.
func (r *userRepository) DeleteUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&domain.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&domain.InviteToken{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&domain.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
