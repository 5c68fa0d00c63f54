package dto

import "github.com/einkreativername/brightmiss/internal/domain"

// UpdateProfileRequest is a PATCH body: nil means the field was omitted and
// must not be touched. The first five are the admin-gated fields.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	WorkPlace *string `json:"work_place,omitempty"`

	DateOfBirth       *string                   `json:"date_of_birth,omitempty"`
	Bio               *string                   `json:"bio,omitempty"`
	City              *string                   `json:"city,omitempty"`
	PostalCode        *string                   `json:"postal_code,omitempty"`
	Country           *string                   `json:"country,omitempty"`
	EmergencyContacts []domain.EmergencyContact `json:"emergency_contacts,omitempty"`
	SocialMedia       []domain.SocialMediaLink  `json:"social_media,omitempty"`
	ProfileImage      *string                   `json:"profile_image,omitempty"`
	CoverImage        *string                   `json:"cover_image,omitempty"`
	GalleryImages     []string                  `json:"gallery_images,omitempty"`
	Videos            []string                  `json:"videos,omitempty"`

	FullLegalName  *string `json:"full_legal_name,omitempty"`
	SecondaryPhone *string `json:"secondary_phone,omitempty"`
	PrivateEmail   *string `json:"private_email,omitempty"`
	CloudEmail     *string `json:"cloud_email,omitempty"`
	IDNumber       *string `json:"id_number,omitempty"`
	LicensePlate   *string `json:"license_plate,omitempty"`

	PaymentDetails    *string `json:"payment_details,omitempty"`
	AmazonWishlist    *string `json:"amazon_wishlist,omitempty"`
	RemoteControlID   *string `json:"remote_control_id,omitempty"`
	StreamingAccounts *string `json:"streaming_accounts,omitempty"`
	MobileDevice      *string `json:"mobile_device,omitempty"`

	VaultImages          []string `json:"vault_images,omitempty"`
	VaultVideos          []string `json:"vault_videos,omitempty"`
	IDCardImages         []string `json:"id_card_images,omitempty"`
	DeclarationImage     *string  `json:"declaration_image,omitempty"`
	DeclarationFaceImage *string  `json:"declaration_face_image,omitempty"`
}

// LockableValue returns the submitted value for one gated field, nil when omitted.
func (r *UpdateProfileRequest) LockableValue(name string) *string {
	switch name {
	case "firstName":
		return r.FirstName
	case "lastName":
		return r.LastName
	case "phone":
		return r.Phone
	case "address":
		return r.Address
	case "workPlace":
		return r.WorkPlace
	}
	return nil
}

type UpdateProfileResponse struct {
	Success         bool     `json:"success"`
	ChangeRequested bool     `json:"change_requested"`
	PendingFields   []string `json:"pending_fields,omitempty"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
