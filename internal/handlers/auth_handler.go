package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/cache"
	"github.com/quickcourt/quickcourt-api/internal/config"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/models"
	"github.com/quickcourt/quickcourt-api/internal/queue"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	cache  *cache.RedisCache
	notify *queue.Publisher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, rc *cache.RedisCache, notify *queue.Publisher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, cache: rc, notify: notify}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

type VerifyOTPRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

type ResendOTPRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Role is fixed at signup; only an admin can change it later, and
	// nobody signs up as an admin.
	role := req.Role
	if role == "" {
		role = "user"
	}
	if role != "user" && role != "facility_owner" {
		httperr.BadRequest(c, "invalid_role", "Role must be user or facility_owner.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "A user with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Avatar:       req.Avatar,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	if err := h.issueOTP(c, &user); err != nil {
		httperr.Internal(c, "failed_to_issue_otp", "Could not issue verification code.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Verification code sent. Please verify your account.",
		"user_id": user.ID,
	})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, req.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	code, err := h.cache.GetOTP(c.Request.Context(), user.ID)
	if err != nil || code != req.OTP {
		httperr.BadRequest(c, "invalid_or_expired_otp", "Invalid or expired verification code.")
		return
	}

	user.Verified = true
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_verify_user", "Could not verify user.")
		return
	}
	_ = h.cache.DeleteOTP(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Account verified successfully. Please login."})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, req.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.Verified {
		httperr.BadRequest(c, "already_verified", "Account is already verified.")
		return
	}

	if err := h.issueOTP(c, &user); err != nil {
		httperr.Internal(c, "failed_to_issue_otp", "Could not issue verification code.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New verification code sent."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	if user.Banned {
		httperr.Forbidden(c, "banned", "This account has been banned. Contact an administrator.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	if !user.Verified {
		httperr.Unauthorized(c, "account_not_verified", "Account not verified. Please verify your email first.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}
	refresh, err := h.generateRefreshToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": refresh,
		"user":          publicUser(&user),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.config.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		httperr.Forbidden(c, "invalid_refresh_token", "Invalid or expired refresh token.")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		httperr.Forbidden(c, "invalid_refresh_token", "Invalid or expired refresh token.")
		return
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		httperr.Forbidden(c, "invalid_refresh_token", "Invalid or expired refresh token.")
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(sub)).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "User not found.")
		return
	}

	// A ban or revoked verification must cut token renewal off, not just
	// fresh logins.
	if code, blocked := accountBlocked(&user); blocked {
		if code == "banned" {
			httperr.Forbidden(c, code, "This account has been banned. Contact an administrator.")
		} else {
			httperr.Unauthorized(c, code, "Account not verified. Please verify your email first.")
		}
		return
	}

	newToken, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}
	newRefresh, err := h.generateRefreshToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         newToken,
		"refresh_token": newRefresh,
		"user":          publicUser(&user),
	})
}

// --------- Helpers ---------

func (h *AuthHandler) issueOTP(c *gin.Context, user *models.User) error {
	otp := fmt.Sprintf("%06d", 100000+rand.Intn(900000))

	if err := h.cache.SetOTP(c.Request.Context(), user.ID, otp); err != nil {
		return err
	}

	h.notify.Publish(c.Request.Context(), queue.Event{
		Type: queue.EventOTPIssued,
		Data: map[string]any{
			"user_id": user.ID,
			"email":   user.Email,
			"code":    otp,
		},
	})
	return nil
}

// accountBlocked reports why an account may not be issued tokens.
func accountBlocked(user *models.User) (code string, blocked bool) {
	if user.Banned {
		return "banned", true
	}
	if !user.Verified {
		return "account_not_verified", true
	}
	return "", false
}

func publicUser(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"avatar":   user.Avatar,
		"verified": user.Verified,
		"banned":   user.Banned,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func (h *AuthHandler) generateRefreshToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTRefreshSecret))
}
