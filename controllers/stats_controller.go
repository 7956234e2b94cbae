package controllers

import (
	"net/http"

	"github.com/SierraFuelsDev/fuelwarden/middlewares"

	"github.com/gin-gonic/gin"
)

type StatsController struct{}

func NewStatsController() *StatsController { return &StatsController{} }

func (sc *StatsController) GetUserStats(c *gin.Context) {
	auth := middlewares.AuthFromContext(c)

	stats, err := auth.DB().GetUserStats(c.Request.Context(), auth.User().ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
