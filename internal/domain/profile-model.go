package domain

import "gorm.io/gorm"

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

type SocialMediaLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Profile is one-to-one with User. The five lockable fields each carry four
// slots: the live value, a pending value while a change request is open, and
// the approved/locked flags that gate further edits behind admin review.
// ChangeRequested caches "any pending slot is non-nil" and is recomputed
// inside the same transaction as every approve/reject.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID" json:"-"`

	FirstName         string  `json:"first_name"`
	FirstNamePending  *string `json:"first_name_pending,omitempty"`
	FirstNameApproved bool    `gorm:"not null;default:false" json:"first_name_approved"`
	FirstNameLocked   bool    `gorm:"not null;default:false" json:"first_name_locked"`

	LastName         string  `json:"last_name"`
	LastNamePending  *string `json:"last_name_pending,omitempty"`
	LastNameApproved bool    `gorm:"not null;default:false" json:"last_name_approved"`
	LastNameLocked   bool    `gorm:"not null;default:false" json:"last_name_locked"`

	Phone         string  `json:"phone"`
	PhonePending  *string `json:"phone_pending,omitempty"`
	PhoneApproved bool    `gorm:"not null;default:false" json:"phone_approved"`
	PhoneLocked   bool    `gorm:"not null;default:false" json:"phone_locked"`

	Address         string  `json:"address"`
	AddressPending  *string `json:"address_pending,omitempty"`
	AddressApproved bool    `gorm:"not null;default:false" json:"address_approved"`
	AddressLocked   bool    `gorm:"not null;default:false" json:"address_locked"`

	WorkPlace         string  `json:"work_place"`
	WorkPlacePending  *string `json:"work_place_pending,omitempty"`
	WorkPlaceApproved bool    `gorm:"not null;default:false" json:"work_place_approved"`
	WorkPlaceLocked   bool    `gorm:"not null;default:false" json:"work_place_locked"`

	ChangeRequested bool `gorm:"not null;default:false" json:"change_requested"`

	// Free-form fields bypass the pending mechanism, last write wins.
	DateOfBirth       *string            `json:"date_of_birth,omitempty"`
	Bio               string             `gorm:"type:text" json:"bio"`
	City              string             `json:"city"`
	PostalCode        string             `json:"postal_code"`
	Country           string             `json:"country"`
	EmergencyContacts []EmergencyContact `gorm:"serializer:json" json:"emergency_contacts"`
	SocialMedia       []SocialMediaLink  `gorm:"serializer:json" json:"social_media"`

	ProfileImage  string   `gorm:"type:text" json:"profile_image"`
	CoverImage    string   `gorm:"type:text" json:"cover_image"`
	GalleryImages []string `gorm:"serializer:json" json:"gallery_images"`
	Videos        []string `gorm:"serializer:json" json:"videos"`

	FullLegalName  string `json:"full_legal_name"`
	SecondaryPhone string `json:"secondary_phone"`
	PrivateEmail   string `json:"private_email"`
	CloudEmail     string `json:"cloud_email"`
	IDNumber       string `json:"id_number"`
	LicensePlate   string `json:"license_plate"`

	PaymentDetails    string `gorm:"type:text" json:"payment_details"`
	AmazonWishlist    string `gorm:"type:text" json:"amazon_wishlist"`
	RemoteControlID   string `json:"remote_control_id"`
	StreamingAccounts string `gorm:"type:text" json:"streaming_accounts"`
	MobileDevice      string `json:"mobile_device"`

	VaultImages          []string `gorm:"serializer:json" json:"vault_images"`
	VaultVideos          []string `gorm:"serializer:json" json:"vault_videos"`
	IDCardImages         []string `gorm:"serializer:json" json:"id_card_images"`
	DeclarationImage     string   `gorm:"type:text" json:"declaration_image"`
	DeclarationFaceImage string   `gorm:"type:text" json:"declaration_face_image"`

	gorm.Model
}

// HasPending reports whether any lockable field still has an open request.
func (p *Profile) HasPending() bool {
	for _, f := range LockableFields {
		if *f.Pending(p) != nil {
			return true
		}
	}
	return false
}
