package main

import (
	"github.com/SierraFuelsDev/fuelwarden/config"
	"github.com/SierraFuelsDev/fuelwarden/controllers"
	"github.com/SierraFuelsDev/fuelwarden/routes"
	"github.com/SierraFuelsDev/fuelwarden/services"
	"github.com/SierraFuelsDev/fuelwarden/store"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	base := store.New(cfg.StoreEndpoint, cfg.StoreProject, cfg.StoreAPIKey)
	hub := services.NewRealtimeHub()

	bind := func(secret string) (services.AccountAPI, *services.DatabaseService) {
		sc := base.WithSession(secret)
		return sc, services.NewDatabaseService(sc, cfg.DatabaseID, hub, sugar)
	}
	registry := services.NewSessionRegistry(func() *services.AuthContext {
		return services.NewAuthContext(base, bind, sugar)
	})
	baseAuth := services.NewAuthContext(base, bind, sugar)

	r := routes.SetupRouter(registry, routes.Controllers{
		Auth:       controllers.NewAuthController(registry, baseAuth),
		Profile:    controllers.NewProfileController(),
		Meal:       controllers.NewMealController(),
		Activity:   controllers.NewActivityController(),
		Onboarding: controllers.NewOnboardingController(registry),
		Stats:      controllers.NewStatsController(),
		Realtime:   controllers.NewRealtimeController(hub),
	})

	sugar.Infow("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
