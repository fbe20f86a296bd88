// FILE: internal/controller/devotion_controller.go
package controller

import (
	"time"

	"soulstart-be/internal/pkg/serverutils"
	"soulstart-be/internal/service"
	"soulstart-be/pkg/devotion"

	"github.com/gofiber/fiber/v2"
)

type IDevotionController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
	Message(ctx *fiber.Ctx) error
	Today(ctx *fiber.Ctx) error
}

type devotionController struct {
	devotionService service.IDevotionService
}

func NewDevotionController(devotionService service.IDevotionService) IDevotionController {
	return &devotionController{
		devotionService: devotionService,
	}
}

func (c *devotionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/devotion/v1")
	h.Get("/resolve", c.Resolve)
	h.Get("/message", c.Message)
	h.Get("/today", c.Today)
}

// queryDate reads the optional date query parameter. Empty means today.
func queryDate(ctx *fiber.Ctx) (time.Time, bool) {
	raw := ctx.Query("date", "")
	if raw == "" {
		return time.Now(), true
	}
	return devotion.ParseDate(raw)
}

func (c *devotionController) Resolve(ctx *fiber.Ctx) error {
	date, ok := queryDate(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "date must be a recognized calendar date, e.g. 2025-01-02"))
	}
	slot := devotion.NormalizeSlot(ctx.Query("slot", ""))

	res := c.devotionService.Resolve(ctx.Context(), date, slot)
	return ctx.JSON(serverutils.SuccessResponse("Success resolve devotion", res))
}

func (c *devotionController) Message(ctx *fiber.Ctx) error {
	date, ok := queryDate(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "date must be a recognized calendar date, e.g. 2025-01-02"))
	}
	slot := devotion.NormalizeSlot(ctx.Query("slot", ""))

	res := c.devotionService.Message(ctx.Context(), date, slot)
	return ctx.JSON(serverutils.SuccessResponse("Success render devotion message", res))
}

func (c *devotionController) Today(ctx *fiber.Ctx) error {
	res := c.devotionService.Today(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success resolve today devotions", res))
}
