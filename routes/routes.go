package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/matchday/roster-system/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// The UI is served from a different origin; the API has always been
	// wide open for it.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Post("/", playerHandler.CreatePlayer)
		r.Put("/{playerID}", playerHandler.UpdatePlayer)
		r.Delete("/{playerID}", playerHandler.DeletePlayer)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Post("/", matchHandler.CreateMatch)
		r.Put("/{matchID}", matchHandler.UpdateMatch)
		r.Delete("/{matchID}", matchHandler.DeleteMatch)

		// Availability is a sub-resource of a match.
		r.Patch("/{matchID}/availability", availabilityHandler.SetAvailability)
		r.Post("/{matchID}/availability/toggle", availabilityHandler.ToggleAvailability)
	})

	router.Route("/maintenance", func(r chi.Router) {
		r.Post("/cleanup", maintenanceHandler.CleanupPastMatches)
		r.Post("/reconcile", maintenanceHandler.ReconcileAvailability)
	})

	router.Get("/ws", webSocketHandler.ServeWs)
}
