package controllers

import (
	"net/http"

	"github.com/SierraFuelsDev/fuelwarden/middlewares"
	"github.com/SierraFuelsDev/fuelwarden/models"

	"github.com/gin-gonic/gin"
)

type ProfileController struct{}

func NewProfileController() *ProfileController { return &ProfileController{} }

func (pc *ProfileController) GetProfile(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)
	profile, err := auth.DB().GetUserProfile(c.Request.Context(), auth.User().ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (pc *ProfileController) CreateProfile(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile.UserID = auth.User().ID

	created, err := auth.DB().CreateUserProfile(c.Request.Context(), &profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProfile applies a partial update to the existing profile document.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	existing, err := auth.DB().GetUserProfile(c.Request.Context(), auth.User().ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}

	var upd models.UserProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := auth.DB().UpdateUserProfile(c.Request.Context(), existing.ID, &upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpsertProfile writes the whole profile, creating or replacing as needed.
func (pc *ProfileController) UpsertProfile(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile.UserID = auth.User().ID

	saved, err := auth.DB().UpsertUserProfile(c.Request.Context(), &profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (pc *ProfileController) DeleteProfile(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	existing, err := auth.DB().GetUserProfile(c.Request.Context(), auth.User().ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}
	if err := auth.DB().DeleteUserProfile(c.Request.Context(), existing.ID, auth.User().ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
