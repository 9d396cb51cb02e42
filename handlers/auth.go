package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"finai/db"
	"finai/middleware"
	"finai/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil || blank(input.FirstName, input.LastName, input.Email, input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All input fields are required"})
		return
	}

	email := db.NormalizeEmail(input.Email)
	if _, err := h.Users.GetUserByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists. Please login"})
		return
	} else if !errors.Is(err, db.ErrUserNotFound) {
		respondError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := h.Users.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	if !h.issueSession(c, user) {
		return
	}
	log.Printf("[auth] registered user %s", user.ID)
	h.notify(func(n Notifications) { n.Welcome(user) })
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil || blank(input.Email, input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All input fields are required"})
		return
	}

	user, err := h.Users.GetUserByEmail(c.Request.Context(), db.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	if !h.issueSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.Users.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	user.Token = ""

	var response struct {
		*models.User
		Features []string `json:"features"`
	}
	response.User = user
	response.Features = h.planFor(user.SubscriptionTier).Features
	c.JSON(http.StatusOK, response)
}

// issueSession signs a token for user, stores it and sets the auth cookie.
func (h *Handler) issueSession(c *gin.Context, user *models.User) bool {
	token, err := h.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return false
	}
	if err := h.Users.UpdateToken(c.Request.Context(), user.ID, token); err != nil {
		respondError(c, err)
		return false
	}
	user.Token = token
	c.SetCookie(middleware.AuthCookie, token, int(h.TokenTTL.Seconds()), "/", "", false, true)
	return true
}

func blank(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
