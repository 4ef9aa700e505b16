package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/makremffff/index.html-bota/docs"
	"github.com/makremffff/index.html-bota/internal/config"
	actionshandlers "github.com/makremffff/index.html-bota/internal/handlers/actions"
	"github.com/makremffff/index.html-bota/internal/service"
	"github.com/makremffff/index.html-bota/pkg/utils"
)

type ActionHandler interface {
	HandleAction(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	ActionHandler ActionHandler
}

func New(s *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		ActionHandler: actionshandlers.New(
			s.RewardService,
			s.TokenService,
			s.CommissionQueue,
			cfg.BotToken,
			cfg.InternalKey,
			cfg.Economy.AuthTTL,
			cfg.Economy.TokenTTL,
		),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Post("/", h.ActionHandler.HandleAction)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
