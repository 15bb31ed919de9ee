package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=admin gym trainer member"`
	// Gym profile fields, only meaningful when role == gym.
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Description string `json:"description,omitempty"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        domain.Role        `json:"role"`
	CreatedAt   time.Time          `json:"createdAt"`
	Address     string             `json:"address,omitempty"`
	City        string             `json:"city,omitempty"`
	Description string             `json:"description,omitempty"`
	MemberIDs   []string           `json:"memberIds,omitempty"`
	TrainerIDs  []string           `json:"trainerIds,omitempty"`
	GymID       *string            `json:"gymId,omitempty"`
	Membership  *MembershipPayload `json:"membership,omitempty"`
}

// MembershipPayload carries the membership block with its derived status.
type MembershipPayload struct {
	Duration  domain.DurationLabel    `json:"duration"`
	StartDate time.Time               `json:"startDate"`
	EndDate   time.Time               `json:"endDate"`
	Status    domain.MembershipStatus `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain.User to the wire DTO.
func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	resp := UserResponse{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		Address:     u.Address,
		City:        u.City,
		Description: u.Description,
	}
	for _, id := range u.MemberIDs {
		resp.MemberIDs = append(resp.MemberIDs, id.Hex())
	}
	for _, id := range u.TrainerIDs {
		resp.TrainerIDs = append(resp.TrainerIDs, id.Hex())
	}
	if u.GymID != nil {
		hex := u.GymID.Hex()
		resp.GymID = &hex
	}
	if u.Membership != nil {
		resp.Membership = &MembershipPayload{
			Duration:  u.Membership.Duration,
			StartDate: u.Membership.StartDate,
			EndDate:   u.Membership.EndDate,
			Status:    u.Membership.StatusAt(time.Now()),
		}
	}
	return resp
}

// MapUsersToResponse converts a slice of domain.User to UserResponse DTOs.
func MapUsersToResponse(users []domain.User) []UserResponse {
	userResponses := make([]UserResponse, len(users))
	for i, u := range users {
		userResponses[i] = MapUserToResponse(&u)
	}
	return userResponses
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user (admin, gym, trainer, or member)
// @Description Creates a new user account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse "User created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var gymProfile *service.GymProfile
	if req.Role == domain.RoleGym {
		gymProfile = &service.GymProfile{
			Address:     req.Address,
			City:        req.City,
			Description: req.Description,
		}
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, gymProfile)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if _, ok := domain.KindOf(err); ok {
			handleServiceError(c, err)
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if _, ok := domain.KindOf(err); ok {
			handleServiceError(c, err)
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}
