package controllers

import (
	"net/http"

	"github.com/SierraFuelsDev/fuelwarden/middlewares"
	"github.com/SierraFuelsDev/fuelwarden/services"
	"github.com/SierraFuelsDev/fuelwarden/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct {
	Registry *services.SessionRegistry
	// Base handles the calls that need no session: recovery and OAuth URLs.
	Base *services.AuthContext
}

func NewAuthController(registry *services.SessionRegistry, base *services.AuthContext) *AuthController {
	return &AuthController{Registry: registry, Base: base}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) issueToken(c *gin.Context, auth *services.AuthContext, status int) {
	key := uuid.NewString()
	token, err := utils.GenerateSessionToken(key, auth.User().ID, auth.Session().Secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	ac.Registry.Put(key, auth)

	c.JSON(status, gin.H{
		"token":                  token,
		"user":                   auth.User(),
		"hasCompletedOnboarding": auth.HasCompletedOnboarding(),
	})
}

// Register creates the account and signs the new user straight in; there is
// no separate first login.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth := ac.Registry.NewContext()
	if err := auth.SignUp(c.Request.Context(), input.Email, input.Password, input.Name); err != nil {
		respondError(c, err)
		return
	}
	ac.issueToken(c, auth, http.StatusCreated)
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth := ac.Registry.NewContext()
	if err := auth.SignIn(c.Request.Context(), input.Email, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	ac.issueToken(c, auth, http.StatusOK)
}

// Logout clears local state even when the upstream session delete fails.
func (ac *AuthController) Logout(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)
	auth.SignOut(c.Request.Context())
	ac.Registry.Delete(c.GetString(middlewares.ContextSessionKey))
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"user":                   auth.User(),
		"state":                  auth.State(),
		"hasCompletedOnboarding": auth.HasCompletedOnboarding(),
	})
}

type RecoveryInput struct {
	Email    string `json:"email" binding:"required,email"`
	ResetURL string `json:"resetUrl" binding:"required,url"`
}

func (ac *AuthController) Recovery(c *gin.Context) {
	var input RecoveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ac.Base.CreateRecovery(c.Request.Context(), input.Email, input.ResetURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recovery email sent"})
}

// OAuthURL hands back the provider redirect for the hosted OAuth flow.
func (ac *AuthController) OAuthURL(c *gin.Context) {
	provider := c.Param("provider")
	success := c.Query("success")
	failure := c.Query("failure")
	if provider == "" || success == "" || failure == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider, success and failure are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": ac.Base.OAuth2URL(provider, success, failure)})
}
