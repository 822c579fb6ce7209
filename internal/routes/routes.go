package routes

import (
	"ga4-report-service/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, reportController controller.ReportController) {
	app.Get("/", reportController.Liveness)
	app.Get("/health", reportController.Health)

	app.Get("/refresh", reportController.Refresh)
	app.Get("/ga4/overview", reportController.Overview)
	app.Get("/snapshots", reportController.Snapshots)
}
