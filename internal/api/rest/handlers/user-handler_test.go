package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/einkreativername/brightmiss/internal/domain"
	"github.com/einkreativername/brightmiss/internal/dto"
	"github.com/einkreativername/brightmiss/internal/helper"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService lets each test override just the methods it exercises.
type stubService struct {
	register       func(dto.RegisterRequest) (*domain.User, error)
	login          func(dto.UserLogin) (*domain.User, error)
	redeemInvite   func(dto.SetPasswordRequest) error
	getProfile     func(uint) (*domain.Profile, error)
	updateProfile  func(uint, dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	inviteUser     func(uint, dto.InviteRequest) (*dto.InviteResponse, error)
	listRequests   func() ([]dto.ChangeRequest, error)
	resolveRequest func(uint, dto.ResolveChangeRequest) error
	listUsers      func() ([]dto.AdminUserResponse, error)
	getUser        func(uint) (*dto.AdminUserDetail, error)
	deleteUser     func(uint, uint) error
	isAdmin        func(uint) (bool, error)
}

func (s *stubService) Register(in dto.RegisterRequest) (*domain.User, error) {
	return s.register(in)
}

func (s *stubService) Login(in dto.UserLogin) (*domain.User, error) {
	return s.login(in)
}

func (s *stubService) Authenticate(c *fiber.Ctx) (*domain.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, helper.Unauthorized("")
	}
	return &domain.User{ID: userID, Name: "Anna", Email: "anna@example.com", Role: domain.RoleSub}, nil
}

func (s *stubService) RedeemInvite(in dto.SetPasswordRequest) error {
	return s.redeemInvite(in)
}

func (s *stubService) GetProfile(userID uint) (*domain.Profile, error) {
	return s.getProfile(userID)
}

func (s *stubService) UpdateProfile(userID uint, in dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	return s.updateProfile(userID, in)
}

func (s *stubService) InviteUser(adminID uint, in dto.InviteRequest) (*dto.InviteResponse, error) {
	return s.inviteUser(adminID, in)
}

func (s *stubService) ListChangeRequests() ([]dto.ChangeRequest, error) {
	return s.listRequests()
}

func (s *stubService) ResolveChangeRequest(adminID uint, in dto.ResolveChangeRequest) error {
	return s.resolveRequest(adminID, in)
}

func (s *stubService) ListUsers() ([]dto.AdminUserResponse, error) {
	return s.listUsers()
}

func (s *stubService) GetUser(userID uint) (*dto.AdminUserDetail, error) {
	return s.getUser(userID)
}

func (s *stubService) DeleteUser(adminID, userID uint) error {
	return s.deleteUser(adminID, userID)
}

func (s *stubService) IsAdmin(userID uint) (bool, error) {
	return s.isAdmin(userID)
}

var testAuth = helper.SetupAuth("handler-test-secret")

func newTestApp(svc *stubService) *fiber.App {
	app := fiber.New()
	NewUserHandler(svc, testAuth).SetupRoutes(app, nil)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func tokenFor(t *testing.T, userID int, role string) string {
	t.Helper()
	token, err := testAuth.GenerateToken(userID, "user@example.com", role)
	require.NoError(t, err)
	return token
}

func TestRegisterHandler(t *testing.T) {
	svc := &stubService{
		register: func(in dto.RegisterRequest) (*domain.User, error) {
			return &domain.User{ID: 1, Name: in.Name, Email: in.Email, Role: domain.RoleSub}, nil
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Anna", Email: "anna@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "user created successfully", body["message"])
}

func TestRegisterHandler_Conflict(t *testing.T) {
	svc := &stubService{
		register: func(dto.RegisterRequest) (*domain.User, error) {
			return nil, helper.Conflict("user with this email already exists")
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Anna", Email: "anna@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "user with this email already exists", body["error"])
}

func TestRegisterHandler_BadBody(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginHandler(t *testing.T) {
	svc := &stubService{
		login: func(in dto.UserLogin) (*domain.User, error) {
			return &domain.User{ID: 3, Name: "Anna", Email: in.Email, Role: domain.RoleSub}, nil
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.UserLogin{
		Email: "anna@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestLoginHandler_Unauthorized(t *testing.T) {
	svc := &stubService{
		login: func(dto.UserLogin) (*domain.User, error) {
			return nil, helper.Unauthorized("invalid email or password")
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.UserLogin{
		Email: "anna@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSetPasswordHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{helper.NotFound("invalid invite token"), http.StatusNotFound},
		{helper.Validation("this invite has expired"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		svc := &stubService{
			redeemInvite: func(dto.SetPasswordRequest) error { return tc.err },
		}
		app := newTestApp(svc)

		resp := doJSON(t, app, http.MethodPost, "/api/auth/set-password", "", dto.SetPasswordRequest{
			Token: "abc", Password: "secret1",
		})
		assert.Equal(t, tc.status, resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(&stubService{})

	for _, path := range []string{"/api/me", "/api/profile"} {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestMeHandler(t *testing.T) {
	app := newTestApp(&stubService{})

	resp := doJSON(t, app, http.MethodGet, "/api/me", tokenFor(t, 5, domain.RoleSub), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 5, body["id"])
}

func TestUpdateProfileHandler(t *testing.T) {
	var gotUserID uint
	svc := &stubService{
		updateProfile: func(userID uint, in dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
			gotUserID = userID
			return &dto.UpdateProfileResponse{
				Success:         true,
				ChangeRequested: true,
				PendingFields:   []string{"phone"},
			}, nil
		},
	}
	app := newTestApp(svc)

	phone := "456"
	resp := doJSON(t, app, http.MethodPatch, "/api/profile", tokenFor(t, 5, domain.RoleSub),
		dto.UpdateProfileRequest{Phone: &phone})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(5), gotUserID)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["change_requested"])
}

func TestAdminRoutesForbiddenForSub(t *testing.T) {
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return false, nil },
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", tokenFor(t, 5, domain.RoleSub), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminRoleRecheckedAgainstStore(t *testing.T) {
	// the token claims ADMIN but the store says otherwise
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return false, nil },
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", tokenFor(t, 5, domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInviteHandler(t *testing.T) {
	var gotAdminID uint
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return true, nil },
		inviteUser: func(adminID uint, in dto.InviteRequest) (*dto.InviteResponse, error) {
			gotAdminID = adminID
			return &dto.InviteResponse{
				InviteURL: "https://portal.example.com/invite/abc",
				User:      dto.UserResponse{ID: 2, Email: in.Email, IsInvited: true},
			}, nil
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/invite", tokenFor(t, 1, domain.RoleAdmin),
		dto.InviteRequest{Name: "Berta", Email: "berta@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(1), gotAdminID)

	body := decodeBody(t, resp)
	assert.Equal(t, "https://portal.example.com/invite/abc", body["invite_url"])
}

func TestResolveChangeRequestHandler(t *testing.T) {
	var got dto.ResolveChangeRequest
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return true, nil },
		resolveRequest: func(adminID uint, in dto.ResolveChangeRequest) error {
			got = in
			return nil
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPatch, "/api/admin/profile-requests", tokenFor(t, 1, domain.RoleAdmin),
		dto.ResolveChangeRequest{UserID: 5, FieldName: "phone", Action: "reject", Comment: "nope"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "phone", got.FieldName)
	assert.Equal(t, "reject", got.Action)
	assert.Equal(t, "nope", got.Comment)
}

func TestResolveChangeRequestHandler_Replay(t *testing.T) {
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return true, nil },
		resolveRequest: func(uint, dto.ResolveChangeRequest) error {
			return helper.NotFound("no pending change for this field")
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodPatch, "/api/admin/profile-requests", tokenFor(t, 1, domain.RoleAdmin),
		dto.ResolveChangeRequest{UserID: 5, FieldName: "phone", Action: "approve"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUserHandler_InvalidID(t *testing.T) {
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return true, nil },
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodDelete, "/api/admin/users/abc", tokenFor(t, 1, domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUserHandler(t *testing.T) {
	var gotAdmin, gotUser uint
	svc := &stubService{
		isAdmin: func(uint) (bool, error) { return true, nil },
		deleteUser: func(adminID, userID uint) error {
			gotAdmin, gotUser = adminID, userID
			return nil
		},
	}
	app := newTestApp(svc)

	resp := doJSON(t, app, http.MethodDelete, "/api/admin/users/7", tokenFor(t, 1, domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(1), gotAdmin)
	assert.Equal(t, uint(7), gotUser)
}
