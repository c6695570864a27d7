package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"regapi/internal/service"
	"regapi/internal/web"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db is nil when the in-memory store is in use; the health endpoint
// only pings when a database is actually configured.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.SubmissionService) {
	// Server-rendered pages and the legacy form endpoint
	app.Get("/", Index())
	app.Get("/views/terms.html", Terms())
	app.Post("/submit", SubmitForm(svc))

	// Embedded static assets (/css/*, /js/*)
	app.Use("/css", filesystem.New(filesystem.Config{Root: http.FS(web.Static), PathPrefix: "css"}))
	app.Use("/js", filesystem.New(filesystem.Config{Root: http.FS(web.Static), PathPrefix: "js"}))

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// REST API. Static segments before the :id route so "bulk-delete"
	// and "export" are not captured as ids.
	api := app.Group("/api")
	api.Post("/submissions/bulk-delete", BulkDeleteSubmissions(svc))
	api.Post("/submissions/export", ExportSubmissions(svc))
	api.Post("/submissions", CreateSubmission(svc))
	api.Get("/submissions", ListSubmissions(svc))
	api.Get("/submissions/:id", GetSubmission(svc))
	api.Put("/submissions/:id", ReplaceSubmission(svc))
	api.Patch("/submissions/:id", PatchSubmission(svc))
	api.Delete("/submissions/:id", DeleteSubmission(svc))
	api.Get("/stats", GetStats(svc))
}

// HealthCheck reports readiness. With a database configured it checks
// connectivity; the in-memory store has no dependency to probe.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "Dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// MetricsHandler exposes the Prometheus registry over /metrics.
func MetricsHandler(h http.Handler) fiber.Handler {
	return adaptor.HTTPHandler(h)
}
