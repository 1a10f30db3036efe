package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/saverfox/saverfox/internal/transport/httpapi/handler"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
	"github.com/saverfox/saverfox/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger         *logger.Logger
	APIPrefix      string
	AllowedOrigins []string

	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	WalletHandler     *handler.WalletHandler
	ShopHandler       *handler.ShopHandler
	MissionHandler    *handler.MissionHandler
	TamagotchiHandler *handler.TamagotchiHandler
	GoalHandler       *handler.GoalHandler
	AdventureHandler  *handler.AdventureHandler
	HealthHandler     *handler.HealthHandler

	JWTMiddleware func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	r.Route(prefix, func(r chi.Router) {
		// Public routes (no authentication required)
		r.Get("/health", handler.GetHealth)
		if cfg.HealthHandler != nil {
			r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.ProfileHandler != nil {
					r.Post("/profile", cfg.ProfileHandler.CreateProfile)
					r.Get("/profile", cfg.ProfileHandler.GetProfile)
					r.Get("/characters/starter", cfg.ProfileHandler.GetStarterCharacters)
					r.Post("/characters/choose", cfg.ProfileHandler.ChooseCharacter)
				}

				if cfg.WalletHandler != nil {
					r.Get("/wallet", cfg.WalletHandler.GetBalance)
					r.Get("/wallet/history", cfg.WalletHandler.GetHistory)
				}

				if cfg.ShopHandler != nil {
					r.Route("/shop", func(r chi.Router) {
						r.Get("/characters", cfg.ShopHandler.GetCharacters)
						r.Get("/foods", cfg.ShopHandler.GetFoods)
						r.Get("/inventory", cfg.ShopHandler.GetInventory)
						r.Post("/buy", cfg.ShopHandler.Buy)
					})
				}

				if cfg.MissionHandler != nil {
					r.Route("/missions", func(r chi.Router) {
						r.Get("/today", cfg.MissionHandler.GetToday)
						r.Post("/log-expense", cfg.MissionHandler.LogExpense)
						r.Post("/log-saving", cfg.MissionHandler.LogSaving)
						r.Get("/expenses", cfg.MissionHandler.GetExpenses)
						r.Get("/savings", cfg.MissionHandler.GetSavings)
					})
				}

				if cfg.TamagotchiHandler != nil {
					r.Route("/tamagotchi", func(r chi.Router) {
						r.Get("/", cfg.TamagotchiHandler.GetTamagotchi)
						r.Patch("/", cfg.TamagotchiHandler.Rename)
						r.Post("/feed", cfg.TamagotchiHandler.Feed)
					})
				}

				if cfg.GoalHandler != nil {
					r.Route("/goals", func(r chi.Router) {
						r.Post("/", cfg.GoalHandler.CreateGoal)
						r.Get("/", cfg.GoalHandler.GetGoals)
						r.Get("/active", cfg.GoalHandler.GetActiveGoals)
						r.Get("/completed", cfg.GoalHandler.GetCompletedGoals)
						r.Post("/{id}/progress", cfg.GoalHandler.AddProgress)
						r.Delete("/{id}", cfg.GoalHandler.DeleteGoal)
					})
				}

				if cfg.AdventureHandler != nil {
					r.Route("/adventure", func(r chi.Router) {
						r.Post("/generate", cfg.AdventureHandler.Generate)
						r.Post("/submit-choice", cfg.AdventureHandler.SubmitChoice)
						r.Get("/", cfg.AdventureHandler.GetHistory)
						r.Get("/{id}", cfg.AdventureHandler.GetAdventure)
					})
				}
			})
		}
	})

	return r
}
