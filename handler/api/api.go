package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/service/dashboard"
)

type Server struct {
	authz     core.AuthService
	accounts  core.AccountService
	transferz core.TransferService
	transfers core.TransferStore
	dashboard *dashboard.Dashboard
	logger    *slog.Logger
}

func New(
	authz core.AuthService,
	accounts core.AccountService,
	transferz core.TransferService,
	transfers core.TransferStore,
	dash *dashboard.Dashboard,
	logger *slog.Logger,
) *Server {
	return &Server{
		authz:     authz,
		accounts:  accounts,
		transferz: transferz,
		transfers: transfers,
		dashboard: dash,
		logger:    logger.With("server", "api"),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(instrument)

	r.Post("/login", s.handleLogin)
	r.Post("/verify", s.handleVerify)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/logout", s.handleLogout)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Get("/{index}", s.handleGetCard)
			r.Post("/{index}/transfer", s.handleTransferTo)
		})
		r.Post("/transfer", s.handleTransfer)
		r.Get("/transfers", s.handleListTransfers)
	})

	return r
}
