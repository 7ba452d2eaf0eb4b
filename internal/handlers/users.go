package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/models"
	"github.com/insightdesk/portal-api/internal/validation"
)

// UserHandler resolves trusted caller identities. There are no credentials:
// login is an email lookup that hands back the user record and role, and the
// resulting userId is what every other endpoint scopes by.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler { return &UserHandler{DB: db} }

type userResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName"`
	IsActive bool   `json:"isActive"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		RoleID:   u.RoleID,
		RoleName: u.Role.RoleName,
		IsActive: u.IsActive,
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	var user models.User
	err := h.DB.Preload("Role").
		Where("email = ? AND is_active = ?", req.Email, true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "User not found or inactive")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

// GET /api/users/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := h.DB.Preload("Role").
		Where("user_id = ? AND is_active = ?", mux.Vars(r)["userId"], true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	err := h.DB.Preload("Role").
		Where("is_active = ?", true).
		Order("username asc").
		Find(&users).Error
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.JSON(w, http.StatusOK, out)
}
