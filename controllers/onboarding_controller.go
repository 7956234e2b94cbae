package controllers

import (
	"net/http"

	"github.com/SierraFuelsDev/fuelwarden/middlewares"
	"github.com/SierraFuelsDev/fuelwarden/services"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	Registry *services.SessionRegistry
}

func NewOnboardingController(registry *services.SessionRegistry) *OnboardingController {
	return &OnboardingController{Registry: registry}
}

func (oc *OnboardingController) form(c *gin.Context) *services.OnboardingForm {
	auth := middlewares.AuthFromContext(c)
	return oc.Registry.Form(c.GetString(middlewares.ContextSessionKey), auth)
}

func stateJSON(f *services.OnboardingForm) gin.H {
	return gin.H{
		"step":        f.Step(),
		"draft":       f.Draft(),
		"fieldErrors": f.FieldErrors(),
		"submitting":  f.Submitting(),
		"completed":   f.Completed(),
	}
}

func (oc *OnboardingController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, stateJSON(oc.form(c)))
}

// Next merges the submitted answers, validates the current step and advances
// on success. Validation failures come back as fieldErrors with a 422.
func (oc *OnboardingController) Next(c *gin.Context) {
	f := oc.form(c)

	var draft services.OnboardingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f.Merge(&draft)

	if !f.Next() {
		c.JSON(http.StatusUnprocessableEntity, stateJSON(f))
		return
	}
	c.JSON(http.StatusOK, stateJSON(f))
}

// Previous steps back without validating; at the first step it is a no-op.
func (oc *OnboardingController) Previous(c *gin.Context) {
	f := oc.form(c)
	f.Previous()
	c.JSON(http.StatusOK, stateJSON(f))
}

func (oc *OnboardingController) Submit(c *gin.Context) {
	f := oc.form(c)

	var draft services.OnboardingDraft
	if err := c.ShouldBindJSON(&draft); err == nil {
		f.Merge(&draft)
	}

	if err := f.Submit(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateJSON(f))
}
