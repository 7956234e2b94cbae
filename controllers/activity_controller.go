package controllers

import (
	"net/http"

	"github.com/SierraFuelsDev/fuelwarden/middlewares"
	"github.com/SierraFuelsDev/fuelwarden/models"

	"github.com/gin-gonic/gin"
)

type ActivityController struct{}

func NewActivityController() *ActivityController { return &ActivityController{} }

func (ac *ActivityController) GetSchedule(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	sched, err := auth.DB().GetActivitySchedule(c.Request.Context(), auth.User().ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if sched == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no activity schedule yet"})
		return
	}
	c.JSON(http.StatusOK, sched)
}

// UpsertSchedule replaces the weekly schedule wholesale. Blank rows are
// dropped by the service before persistence.
func (ac *ActivityController) UpsertSchedule(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var sched models.ActivitySchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sched.UserID = auth.User().ID

	saved, err := auth.DB().UpsertActivitySchedule(c.Request.Context(), &sched)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (ac *ActivityController) DeleteSchedule(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	existing, err := auth.DB().GetActivitySchedule(c.Request.Context(), auth.User().ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no activity schedule yet"})
		return
	}
	if err := auth.DB().DeleteActivitySchedule(c.Request.Context(), existing.ID, auth.User().ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity schedule deleted"})
}
