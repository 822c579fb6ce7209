package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"

	"ga4-report-service/internal/model"
	"ga4-report-service/internal/service"
)

// LivenessMessage is the plain text body of GET /.
const LivenessMessage = "✅ Velzai GA4 backend is live!"

const defaultSnapshotLimit = 10

type ReportController interface {
	Liveness(c *fiber.Ctx) error
	Health(c *fiber.Ctx) error
	Refresh(c *fiber.Ctx) error
	Overview(c *fiber.Ctx) error
	Snapshots(c *fiber.Ctx) error
}

// reportController exposes HTTP handlers for the report endpoints.
type reportController struct {
	reportService service.ReportService
}

// NewReportController builds a ReportController.
func NewReportController(svc service.ReportService) ReportController {
	return &reportController{reportService: svc}
}

func (h *reportController) Liveness(c *fiber.Ctx) error {
	return c.SendString(LivenessMessage)
}

func (h *reportController) Health(c *fiber.Ctx) error {
	status := h.reportService.Status()
	return c.JSON(fiber.Map{
		"status":  "ok",
		"ga4":     status.GA4,
		"archive": status.Archive,
	})
}

// Refresh returns the simplified report.
func (h *reportController) Refresh(c *fiber.Ctx) error {
	summary, err := h.reportService.Summarize(c.UserContext())
	if err != nil {
		log.Errorf("❌ GA4 API error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: refreshErrorMessage(err)})
	}
	return c.JSON(summary)
}

// Overview returns the raw report wrapped in a success envelope.
func (h *reportController) Overview(c *fiber.Ctx) error {
	overview, err := h.reportService.Overview(c.UserContext())
	if err != nil {
		log.Errorf("❌ GA4 overview error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(model.OverviewError{Success: false, Error: err.Error()})
	}
	return c.JSON(overview)
}

// Snapshots lists archived summaries.
func (h *reportController) Snapshots(c *fiber.Ctx) error {
	limit := defaultSnapshotLimit
	if raw := utils.Trim(c.Query("limit"), ' '); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: "invalid limit"})
		}
		limit = parsed
	}

	snapshots, err := h.reportService.RecentSnapshots(c.UserContext(), limit)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: validationErr.Message})
		case errors.Is(err, service.ErrArchiveDisabled):
			return c.Status(fiber.StatusServiceUnavailable).JSON(model.ErrorResponse{Error: err.Error()})
		default:
			log.Errorf("fetch snapshots: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: "Failed to fetch snapshots"})
		}
	}

	return c.JSON(model.SnapshotList{Snapshots: snapshots})
}

func refreshErrorMessage(err error) string {
	var malformed *service.MalformedResponseError
	switch {
	case errors.Is(err, service.ErrClientNotInitialized):
		return service.ErrClientNotInitialized.Error()
	case errors.As(err, &malformed):
		return "Malformed GA4 response"
	default:
		return "Failed to fetch GA4 data"
	}
}
