package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/einkreativername/brightmiss/internal/domain"
	"github.com/einkreativername/brightmiss/internal/dto"
	"github.com/einkreativername/brightmiss/internal/helper"
	"github.com/einkreativername/brightmiss/internal/helper/utils"
	"github.com/einkreativername/brightmiss/internal/interfaces"
	"github.com/einkreativername/brightmiss/internal/repository"
	"github.com/gofiber/fiber/v2"
)

const inviteTokenTTL = 7 * 24 * time.Hour

type UserService interface {
	// Auth
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (*domain.User, error)
	Authenticate(c *fiber.Ctx) (*domain.User, error)
	RedeemInvite(input dto.SetPasswordRequest) error

	// Profile
	GetProfile(userID uint) (*domain.Profile, error)
	UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)

	// Admin
	InviteUser(adminID uint, input dto.InviteRequest) (*dto.InviteResponse, error)
	ListChangeRequests() ([]dto.ChangeRequest, error)
	ResolveChangeRequest(adminID uint, input dto.ResolveChangeRequest) error
	ListUsers() ([]dto.AdminUserResponse, error)
	GetUser(userID uint) (*dto.AdminUserDetail, error)
	DeleteUser(adminID uint, userID uint) error
	IsAdmin(userID uint) (bool, error)
}

type userService struct {
	repo        repository.UserRepository
	profileRepo repository.ProfileRepository
	inviteRepo  repository.InviteRepository
	auditRepo   repository.AuditRepository

	producer interfaces.ProducerHandler
	auth     helper.Auth
	baseURL  string
}

func NewUserService(
	repo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	inviteRepo repository.InviteRepository,
	auditRepo repository.AuditRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
	baseURL string,
) UserService {
	return &userService{
		repo:        repo,
		profileRepo: profileRepo,
		inviteRepo:  inviteRepo,
		auditRepo:   auditRepo,
		producer:    producer,
		auth:        auth,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// AUTH

func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if len(name) < 2 {
		return nil, helper.Validation("name must be at least 2 characters")
	}
	if !utils.ValidEmail(email) {
		return nil, helper.Validation("invalid email address")
	}
	if len(password) < 6 {
		return nil, helper.Validation("password must be at least 6 characters")
	}

	hash, err := u.auth.HashPassword(password)
	if err != nil {
		return nil, helper.Internal(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		Role:         domain.RoleSub,
	}

	// the unique index is the source of truth for duplicate emails
	if err := u.repo.CreateUserWithProfile(user); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("user with this email already exists")
		}
		return nil, helper.Internal(err)
	}

	u.publish("user.registered", dto.UserRegisteredEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	return user, nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, helper.Unauthorized("invalid email or password")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, helper.Unauthorized("invalid email or password")
	}

	// invited users have no password until the invite is redeemed
	if user.PasswordHash == nil {
		return nil, helper.Unauthorized("invalid email or password")
	}

	if err := u.auth.VerifyPassword(password, *user.PasswordHash); err != nil {
		return nil, helper.Unauthorized("invalid email or password")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := u.repo.SaveUser(user); err != nil {
		log.Printf("stamp last login for user %d: %v", user.ID, err)
	}

	return user, nil
}

func (u *userService) Authenticate(c *fiber.Ctx) (*domain.User, error) {
	v := c.Locals("userID")
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return nil, helper.Unauthorized("")
	}
	user, err := u.repo.FindUserByID(userID)
	if err != nil || user == nil {
		return nil, helper.Unauthorized("")
	}
	return user, nil
}

func (u *userService) RedeemInvite(input dto.SetPasswordRequest) error {
	token := strings.TrimSpace(input.Token)
	password := strings.TrimSpace(input.Password)

	if token == "" {
		return helper.Validation("token is required")
	}
	if len(password) < 6 {
		return helper.Validation("password must be at least 6 characters")
	}

	invite, err := u.inviteRepo.FindByToken(utils.Sha256Hex(token))
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.NotFound("invalid invite token")
		}
		return helper.Internal(err)
	}
	if invite.Used {
		return helper.Validation("this invite has already been used")
	}
	if invite.Expired(time.Now()) {
		return helper.Validation("this invite has expired")
	}

	hash, err := u.auth.HashPassword(password)
	if err != nil {
		return helper.Internal(err)
	}

	// password write and token consumption are one transaction; a racing
	// redemption loses on the used guard
	if err := u.inviteRepo.Redeem(invite.ID, invite.UserID, hash); err != nil {
		if helper.IsNotFound(err) {
			return helper.Validation("this invite has already been used")
		}
		return helper.Internal(err)
	}

	return nil
}

// PROFILE

func (u *userService) GetProfile(userID uint) (*domain.Profile, error) {
	if userID == 0 {
		return nil, helper.Unauthorized("")
	}
	profile, err := u.profileRepo.FindByUserID(userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("profile not found")
		}
		return nil, helper.Internal(err)
	}
	return profile, nil
}

func (u *userService) UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	if userID == 0 {
		return nil, helper.Unauthorized("")
	}

	var pended []string

	_, err := u.profileRepo.UpdateTx(userID, func(p *domain.Profile) error {
		for _, f := range domain.LockableFields {
			if domain.ApplyFieldUpdate(p, f, input.LockableValue(f.Name)) {
				pended = append(pended, f.Name)
			}
		}
		applyFreeFields(p, input)
		return nil
	})
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("profile not found")
		}
		return nil, helper.Internal(err)
	}

	if len(pended) > 0 {
		log.Printf("user %d requested changes to locked fields: %v", userID, pended)
		u.publish("profile.change_requested", dto.ProfileChangeRequestedEvent{
			UserID: userID,
			Fields: pended,
		})
	}

	return &dto.UpdateProfileResponse{
		Success:         true,
		ChangeRequested: len(pended) > 0,
		PendingFields:   pended,
	}, nil
}

// applyFreeFields writes the ungated fields, last write wins. Omitted fields
// (nil pointers, nil slices) are untouched.
func applyFreeFields(p *domain.Profile, in dto.UpdateProfileRequest) {
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.PostalCode != nil {
		p.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		p.Country = *in.Country
	}
	if in.EmergencyContacts != nil {
		p.EmergencyContacts = in.EmergencyContacts
	}
	if in.SocialMedia != nil {
		p.SocialMedia = in.SocialMedia
	}
	if in.ProfileImage != nil {
		p.ProfileImage = *in.ProfileImage
	}
	if in.CoverImage != nil {
		p.CoverImage = *in.CoverImage
	}
	if in.GalleryImages != nil {
		p.GalleryImages = in.GalleryImages
	}
	if in.Videos != nil {
		p.Videos = in.Videos
	}
	if in.FullLegalName != nil {
		p.FullLegalName = *in.FullLegalName
	}
	if in.SecondaryPhone != nil {
		p.SecondaryPhone = *in.SecondaryPhone
	}
	if in.PrivateEmail != nil {
		p.PrivateEmail = *in.PrivateEmail
	}
	if in.CloudEmail != nil {
		p.CloudEmail = *in.CloudEmail
	}
	if in.IDNumber != nil {
		p.IDNumber = *in.IDNumber
	}
	if in.LicensePlate != nil {
		p.LicensePlate = *in.LicensePlate
	}
	if in.PaymentDetails != nil {
		p.PaymentDetails = *in.PaymentDetails
	}
	if in.AmazonWishlist != nil {
		p.AmazonWishlist = *in.AmazonWishlist
	}
	if in.RemoteControlID != nil {
		p.RemoteControlID = *in.RemoteControlID
	}
	if in.StreamingAccounts != nil {
		p.StreamingAccounts = *in.StreamingAccounts
	}
	if in.MobileDevice != nil {
		p.MobileDevice = *in.MobileDevice
	}
	if in.VaultImages != nil {
		p.VaultImages = in.VaultImages
	}
	if in.VaultVideos != nil {
		p.VaultVideos = in.VaultVideos
	}
	if in.IDCardImages != nil {
		p.IDCardImages = in.IDCardImages
	}
	if in.DeclarationImage != nil {
		p.DeclarationImage = *in.DeclarationImage
	}
	if in.DeclarationFaceImage != nil {
		p.DeclarationFaceImage = *in.DeclarationFaceImage
	}
}

// ADMIN

func (u *userService) InviteUser(adminID uint, input dto.InviteRequest) (*dto.InviteResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)

	if len(name) < 2 {
		return nil, helper.Validation("name must be at least 2 characters")
	}
	if !utils.ValidEmail(email) {
		return nil, helper.Validation("invalid email address")
	}

	token, err := utils.RandomToken(32)
	if err != nil {
		return nil, helper.Internal(err)
	}
	expiresAt := time.Now().Add(inviteTokenTTL)

	user := &domain.User{
		Name:      name,
		Email:     email,
		Role:      domain.RoleSub,
		IsInvited: true,
	}
	// only the hash is stored; the raw token lives in the invite URL
	invite := &domain.InviteToken{
		Token:     utils.Sha256Hex(token),
		ExpiresAt: expiresAt,
	}

	if err := u.inviteRepo.CreateInvitedUser(user, invite); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("user with this email already exists")
		}
		return nil, helper.Internal(err)
	}

	u.audit(adminID, domain.AuditActionInviteUser, "user", user.ID, "")

	inviteURL := fmt.Sprintf("%s/invite/%s", u.baseURL, token)
	u.publish("user.invited", dto.UserInvitedEvent{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		InviteURL: inviteURL,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})

	return &dto.InviteResponse{
		InviteURL: inviteURL,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			IsInvited: user.IsInvited,
		},
	}, nil
}

func (u *userService) ListChangeRequests() ([]dto.ChangeRequest, error) {
	profiles, err := u.profileRepo.ListWithPending()
	if err != nil {
		return nil, helper.Internal(err)
	}

	out := make([]dto.ChangeRequest, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		for _, f := range domain.LockableFields {
			pending := *f.Pending(p)
			if pending == nil {
				continue
			}
			out = append(out, dto.ChangeRequest{
				RequestID:  fmt.Sprintf("%d-%s", p.UserID, f.Name),
				UserID:     p.UserID,
				UserName:   p.User.Name,
				UserEmail:  p.User.Email,
				FieldName:  f.Name,
				OldValue:   *f.Value(p),
				NewValue:   *pending,
				IsApproved: *f.Approved(p),
				IsLocked:   *f.Locked(p),
			})
		}
	}
	return out, nil
}

func (u *userService) ResolveChangeRequest(adminID uint, input dto.ResolveChangeRequest) error {
	field, ok := domain.LockableFieldByName(input.FieldName)
	if !ok {
		return helper.Validation("unknown field name")
	}
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if action != "approve" && action != "reject" {
		return helper.Validation("action must be approve or reject")
	}

	_, err := u.profileRepo.UpdateTx(input.UserID, func(p *domain.Profile) error {
		var applied bool
		if action == "approve" {
			applied = domain.ApproveField(p, field)
		} else {
			applied = domain.RejectField(p, field)
		}
		if !applied {
			// replayed decision: the slot is already clear
			return helper.NotFound("no pending change for this field")
		}
		return nil
	})
	if err != nil {
		if appErr, ok := helper.AsAppError(err); ok {
			return appErr
		}
		if helper.IsNotFound(err) {
			return helper.NotFound("user profile not found")
		}
		return helper.Internal(err)
	}

	auditAction := domain.AuditActionApproveField
	if action == "reject" {
		auditAction = domain.AuditActionRejectField
	}
	u.audit(adminID, auditAction, "profile."+input.FieldName, input.UserID, input.Comment)

	u.publish("profile.change_resolved", dto.ProfileChangeResolvedEvent{
		UserID:    input.UserID,
		FieldName: input.FieldName,
		Action:    action,
		Comment:   input.Comment,
	})

	return nil
}

func (u *userService) ListUsers() ([]dto.AdminUserResponse, error) {
	users, err := u.repo.ListUsers()
	if err != nil {
		return nil, helper.Internal(err)
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		resp := toAdminUser(&users[i])
		if profile, err := u.profileRepo.FindByUserID(users[i].ID); err == nil {
			resp.Profile = profile
		}
		out = append(out, resp)
	}
	return out, nil
}

func (u *userService) GetUser(userID uint) (*dto.AdminUserDetail, error) {
	user, err := u.repo.FindUserByID(userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("user not found")
		}
		return nil, helper.Internal(err)
	}

	detail := &dto.AdminUserDetail{AdminUserResponse: toAdminUser(user)}
	if profile, err := u.profileRepo.FindByUserID(userID); err == nil {
		detail.Profile = profile
	}
	tokens, err := u.inviteRepo.ListByUserID(userID, 5)
	if err != nil {
		return nil, helper.Internal(err)
	}
	detail.InviteTokens = tokens

	return detail, nil
}

func (u *userService) DeleteUser(adminID uint, userID uint) error {
	if adminID == userID {
		return helper.Validation("you cannot delete your own account")
	}

	if err := u.repo.DeleteUser(userID); err != nil {
		if helper.IsNotFound(err) {
			return helper.NotFound("user not found")
		}
		return helper.Internal(err)
	}

	u.audit(adminID, domain.AuditActionDeleteUser, "user", userID, "")
	return nil
}

func (u *userService) IsAdmin(userID uint) (bool, error) {
	if userID == 0 {
		return false, helper.Unauthorized("")
	}
	user, err := u.repo.FindUserByID(userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return false, nil
		}
		return false, helper.Internal(err)
	}
	return user.Role == domain.RoleAdmin, nil
}

func toAdminUser(user *domain.User) dto.AdminUserResponse {
	resp := dto.AdminUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsInvited: user.IsInvited,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		s := user.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &s
	}
	return resp
}

func (u *userService) audit(actorID uint, action, entity string, entityID uint, note string) {
	if u.auditRepo == nil {
		return
	}
	entry := &domain.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if note = strings.TrimSpace(note); note != "" {
		entry.Note = &note
	}
	if err := u.auditRepo.Create(entry); err != nil {
		log.Printf("audit %s %s/%d: %v", action, entity, entityID, err)
	}
}

func (u *userService) publish(key string, event any) {
	if u.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal event %s: %v", key, err)
		return
	}
	if err := u.producer.PublishMessage([]byte(key), payload); err != nil {
		log.Printf("publish event %s: %v", key, err)
	}
}
