package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/clientvault/clientvault/internal/middleware"
)

// Handlers bundles every route family served by the API.
type Handlers struct {
	Clients   *ClientHandler
	UserTypes *UserTypeHandler
	FileTypes *FileTypeHandler
	Users     *UserHandler
	Files     *FileHandler
	Docs      *DocHandler
	Activity  *ActivityHandler
}

// NewRouter constructs the HTTP handler serving the API under /api.
//
// POST /api/login is the only public endpoint. Every other route requires a
// valid bearer token, and mutations on clients, taxonomies, and users, plus
// file and document deletion, additionally require the Admin user type.
func NewRouter(h Handlers, verifier middleware.TokenVerifier, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoint
		r.Post("/login", h.Users.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier))

			r.Get("/clients", h.Clients.GetAll)
			r.Get("/usertypes", h.UserTypes.GetAll)
			r.Get("/filetypes", h.FileTypes.GetAll)
			r.Get("/users", h.Users.GetAll)

			r.Post("/upload", h.Files.Upload)
			r.Get("/files", h.Files.GetAll)
			r.Put("/files/{id}", h.Files.Update)
			r.Get("/download/{id}", h.Files.Download)

			r.Post("/docupload", h.Docs.Upload)
			r.Get("/docfiles", h.Docs.GetAll)
			r.Put("/docfiles/{id}", h.Docs.Update)
			r.Get("/docdownload/{id}", h.Docs.Download)

			r.Post("/log/login", h.Activity.LogLogin)
			r.Post("/log/download", h.Activity.LogDownload)
			r.Get("/all", h.Activity.GetAll)
			r.Get("/user/{userName}", h.Activity.GetForUser)

			// Admin group: privileged mutations
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/clients", h.Clients.Create)
				r.Put("/clients/{id}", h.Clients.Update)
				r.Delete("/clients/{id}", h.Clients.Delete)

				r.Post("/usertypes", h.UserTypes.Create)
				r.Put("/usertypes/{id}", h.UserTypes.Update)
				r.Delete("/usertypes/{id}", h.UserTypes.Delete)

				r.Post("/filetypes", h.FileTypes.Create)
				r.Put("/filetypes/{id}", h.FileTypes.Update)
				r.Delete("/filetypes/{id}", h.FileTypes.Delete)

				r.Post("/users", h.Users.Create)
				r.Put("/users/{id}", h.Users.Update)
				r.Delete("/users/{id}", h.Users.Delete)

				r.Delete("/deletefile/{fileName}", h.Files.Delete)
				r.Delete("/docdeletefile/{fileName}", h.Docs.Delete)
			})
		})
	})

	return r
}
