// FILE: internal/controller/content_controller.go
package controller

import (
	"soulstart-be/internal/pkg/serverutils"
	"soulstart-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	Verses(ctx *fiber.Ctx) error
	Studies(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
}

func NewContentController(contentService service.IContentService) IContentController {
	return &contentController{
		contentService: contentService,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Get("/verses", c.Verses)
	h.Get("/studies", c.Studies)
}

func (c *contentController) Verses(ctx *fiber.Ctx) error {
	res := c.contentService.Verses(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get verses", res))
}

func (c *contentController) Studies(ctx *fiber.Ctx) error {
	res := c.contentService.Studies(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get studies", res))
}
