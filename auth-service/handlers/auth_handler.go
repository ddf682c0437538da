package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models"
	"paddock-backend/shared/middleware"
	utils "paddock-backend/shared/utils/auth"
)

// RegisterRequest represents request body for registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest represents request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents request body for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func profileResponse(p *models.Profile) gin.H {
	return gin.H{
		"id":            p.ID,
		"email":         p.Email,
		"first_name":    p.FirstName,
		"last_name":     p.LastName,
		"full_name":     p.FullName(),
		"is_superadmin": p.IsSuperadmin,
	}
}

func issueTokens(ctx *gin.Context, p *models.Profile, status int, message string) {
	accessToken, err := utils.GenerateJWT(p.ID, p.Email, p.IsSuperadmin)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate token",
			"message": err.Error(),
		})
		return
	}

	refreshToken, err := utils.GenerateRefreshJWT(p.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate refresh token",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data": gin.H{
			"user":          profileResponse(p),
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	})
}

// Register creates a new profile
// @Summary Register a new user
// @Description Create a profile and issue an initial token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration information"
// @Success 201 {object} map[string]interface{} "Created profile with tokens"
// @Failure 400 {object} map[string]string "Invalid email or weak password"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if err := utils.ValidateEmail(email); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to hash password",
			"message": err.Error(),
		})
		return
	}

	profile := models.Profile{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := database.DB.Create(&profile).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create profile",
			"message": err.Error(),
		})
		return
	}

	issueTokens(ctx, &profile, http.StatusCreated, "Registration successful")
}

// Login authenticates a user
// @Summary Log in
// @Description Authenticate by email and password and issue a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Profile with tokens"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	var profile models.Profile
	err := database.DB.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&profile).Error
	if err != nil || !utils.CheckPassword(req.Password, profile.Password) {
		// Same response for unknown email and wrong password
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	issueTokens(ctx, &profile, http.StatusOK, "Login successful")
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]interface{} "New token pair"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func Refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	userID, err := utils.ValidateRefreshJWT(req.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	var profile models.Profile
	if err := database.DB.First(&profile, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Profile no longer exists"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load profile",
			"message": err.Error(),
		})
		return
	}

	issueTokens(ctx, &profile, http.StatusOK, "Token refreshed")
}

// Me returns the authenticated user's profile
// @Summary Get my profile
// @Description Get the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/me [get]
func Me(ctx *gin.Context) {
	var profile models.Profile
	if err := database.DB.First(&profile, middleware.CurrentUserID(ctx)).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profileResponse(&profile),
	})
}
