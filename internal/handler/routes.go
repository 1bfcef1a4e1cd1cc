package handler

import "github.com/go-chi/chi/v5"

// Handlers groups the API handlers mounted under /api/v1
type Handlers struct {
	Project *ProjectHandler
	Box     *BoxHandler
	Vault   *VaultHandler
	Admin   *AdminHandler
}

// RegisterRoutes mounts the API routes on r
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.Project.HandleCreateProject)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.Project.HandleGetProject)
			r.Patch("/", h.Project.HandleUpdateProject)
			r.Post("/fund", h.Project.HandleFundVault)

			r.Route("/boxes", func(r chi.Router) {
				r.Post("/", h.Box.HandleCreateBox())
				r.Route("/{boxID}", func(r chi.Router) {
					r.Get("/", h.Box.HandleGetBox)
					r.Post("/commit", h.Box.HandleCommitBox())
					r.Post("/reveal", h.Box.HandleRevealBox)
					r.Post("/settle", h.Box.HandleSettleBox())
					r.Post("/refund", h.Box.HandleRefundBox())
				})
			})

			r.Get("/vault", h.Vault.HandleGetSummary)
			r.Post("/vault/withdraw", h.Vault.HandleWithdrawEarnings)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/config", h.Admin.HandleGetConfig)
		r.Put("/config", h.Admin.HandlePutConfig)
		r.Post("/treasury/withdraw", h.Admin.HandleWithdrawTreasury)
		r.Post("/ledger/credit", h.Admin.HandleCreditAccount)
	})
}
