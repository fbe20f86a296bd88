// FILE: internal/controller/dispatch_controller.go
package controller

import (
	"errors"
	"time"

	"soulstart-be/internal/dto"
	"soulstart-be/internal/pkg/serverutils"
	"soulstart-be/internal/service"
	"soulstart-be/pkg/devotion"

	"github.com/gofiber/fiber/v2"
)

type IDispatchController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Job(ctx *fiber.Ctx) error
}

type dispatchController struct {
	dispatchService service.IDispatchService
}

func NewDispatchController(dispatchService service.IDispatchService) IDispatchController {
	return &dispatchController{
		dispatchService: dispatchService,
	}
}

func (c *dispatchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dispatch/v1")
	h.Post("/send", c.Send)
	h.Get("/jobs/:id", c.Job)
}

func (c *dispatchController) Send(ctx *fiber.Ctx) error {
	var req dto.DispatchSendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	// 1. Fold legacy spellings before validation so "custom" still works.
	req.Mode = service.NormalizeMode(req.Mode)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// 2. Default to today, otherwise accept any recognized date format.
	date := devotion.ISODate(time.Now())
	if req.Date != "" {
		normalized, ok := devotion.NormalizeDate(req.Date)
		if !ok {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "date must be a recognized calendar date, e.g. 2025-01-02"))
		}
		date = normalized
	}

	res, err := c.dispatchService.Send(ctx.Context(), req.Mode, date)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Dispatch job queued", res))
}

func (c *dispatchController) Job(ctx *fiber.Ctx) error {
	jobID := ctx.Params("id")

	res, err := c.dispatchService.Job(ctx.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Dispatch job not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dispatch job", res))
}
