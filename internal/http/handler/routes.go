package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when no manifest database is configured.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(db, docSvc))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/generar-word", GenerateWord(docSvc))
	api.Post("/generar-latex", GenerateLatex(docSvc))
	api.Get("/descargar/:filename", DownloadDocument(docSvc))
	api.Get("/limpiar-temp", CleanupTemp(docSvc))
	api.Get("/documentos", ListDocuments(docSvc))
	api.Delete("/documentos/:filename", DeleteDocument(docSvc))
}
