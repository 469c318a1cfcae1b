package journal

import (
	"errors"

	"journal-loader/core/logger"
	"journal-loader/core/reconcile"
	"journal-loader/feature/journal/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for journal syncs.
type Handler struct {
	service *Service
	baseDir string
}

// NewHandler creates a new HTTP handler. Local locators in requests must lie
// under baseDir; with an empty baseDir only s3:// locators are accepted.
func NewHandler(service *Service, baseDir string) *Handler {
	return &Handler{service: service, baseDir: baseDir}
}

// RegisterRoutes registers the journal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/journals")
	group.Post("/sync", h.HandleSync)
	group.Get("/sync/last", h.HandleLastSync)
}

// HandleSync runs a sync with the sources given in the body and returns its summary.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	req, err := h.confine(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	summary, err := h.service.Run(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, reconcile.ErrConfiguration) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, ErrSyncInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Journal sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(summary)
}

// HandleLastSync returns the summary of the last completed sync.
func (h *Handler) HandleLastSync(c *fiber.Ctx) error {
	summary, ok := h.service.LastRun()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no sync has completed yet",
		})
	}
	return c.JSON(summary)
}

// confine rewrites the local locators of req to paths inside the base dir.
func (h *Handler) confine(req Request) (Request, error) {
	out := Request{DryRun: req.DryRun}
	for _, lists := range []struct {
		in  []string
		out *[]string
	}{{req.Medline, &out.Medline}, {req.PMC, &out.PMC}} {
		for _, loc := range lists.in {
			if !sources.IsRemote(loc) {
				path, err := sources.ConfineLocal(h.baseDir, loc)
				if err != nil {
					return Request{}, err
				}
				loc = path
			}
			*lists.out = append(*lists.out, loc)
		}
	}
	return out, nil
}
