package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// UsersController handles registration, login and member management.
type UsersController struct {
	auth    AuthService
	users   UserStore
	library LibraryService
}

// NewUsersController creates a new UsersController.
func NewUsersController(authService AuthService, users UserStore, library LibraryService) *UsersController {
	return &UsersController{
		auth:    authService,
		users:   users,
		library: library,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a member.
// POST /api/users
func (uc *UsersController) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.auth.Register(req)
	if err != nil {
		respondStoreError(c, err, "register user")
		return
	}
	respondCreated(c, user)
}

// Login checks credentials and returns the member.
// POST /api/users/login
func (uc *UsersController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.auth.Login(req.Email, req.Password)
	if errors.Is(err, entities.ErrUserNotFound) {
		// Unknown emails look the same as wrong passwords.
		err = auth.ErrInvalidPassword
	}
	if err != nil {
		respondStoreError(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ResetPassword replaces the password of the member with the given email.
// POST /api/users/reset-password
func (uc *UsersController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.auth.ResetPassword(req.Email, req.Password); err != nil {
		respondStoreError(c, err, "reset password")
		return
	}
	respondSuccess(c, "password updated")
}

// ListUsers returns all members ordered by name.
// GET /api/users
func (uc *UsersController) ListUsers(c *gin.Context) {
	users, err := uc.users.ListUsers()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one member.
// GET /api/users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.GetUserByID(id)
	if err != nil {
		respondStoreError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser changes name, email or password.
// PATCH /api/users/:id
func (uc *UsersController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req auth.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.auth.ChangeProfile(id, req)
	if err != nil {
		respondStoreError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a member and everything they own except materials.
// DELETE /api/users/:id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := uc.users.DeleteUser(id); err != nil {
		respondStoreError(c, err, "delete user")
		return
	}
	respondSuccess(c, "user deleted")
}

// Profile returns a member with their loans, reviews and favourites.
// GET /api/users/:id/profile
func (uc *UsersController) Profile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := uc.library.Profile(id)
	if err != nil {
		respondStoreError(c, err, "load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
