package controllers

import (
	"net/http"

	"github.com/SierraFuelsDev/fuelwarden/middlewares"
	"github.com/SierraFuelsDev/fuelwarden/models"
	"github.com/SierraFuelsDev/fuelwarden/services"

	"github.com/gin-gonic/gin"
)

type MealController struct{}

func NewMealController() *MealController { return &MealController{} }

func (mc *MealController) CreateMealLog(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var log models.MealLog
	if err := c.ShouldBindJSON(&log); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.UserID = auth.User().ID

	created, err := auth.DB().CreateMealLog(c.Request.Context(), &log)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMealLogs returns the user's logs, optionally narrowed by ?date=.
func (mc *MealController) ListMealLogs(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	logs, err := auth.DB().GetUserMealLogs(c.Request.Context(), auth.User().ID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
}

func (mc *MealController) UpdateMealLog(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var upd services.MealLogUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := auth.DB().UpdateMealLog(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (mc *MealController) DeleteMealLog(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	if err := auth.DB().DeleteMealLog(c.Request.Context(), c.Param("id"), auth.User().ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal log deleted"})
}

func (mc *MealController) CreateMealPlan(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var plan models.MealPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan.UserID = auth.User().ID

	created, err := auth.DB().CreateMealPlan(c.Request.Context(), &plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (mc *MealController) ListMealPlans(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	plans, err := auth.DB().GetUserMealPlans(c.Request.Context(), auth.User().ID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

func (mc *MealController) UpdateMealPlan(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	var upd services.MealPlanUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := auth.DB().UpdateMealPlan(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (mc *MealController) DeleteMealPlan(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	if err := auth.DB().DeleteMealPlan(c.Request.Context(), c.Param("id"), auth.User().ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}
