package controller

import (
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Revoke(ctx *fiber.Ctx) error
	ShowShared(ctx *fiber.Ctx) error
}

type shareController struct {
	shareService service.IShareService
}

func NewShareController(shareService service.IShareService) IShareController {
	return &shareController{
		shareService: shareService,
	}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1/:workspaceId/document/:documentId/share")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Delete(":id", c.Revoke)

	// Public, token is the only credential.
	r.Get("/share/v1/:token", c.ShowShared)
}

func (c *shareController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	var req dto.CreateShareLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shareService.CreateLink(ctx.Context(), userId, workspaceId, documentId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create share link", res))
}

func (c *shareController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	res, err := c.shareService.ListLinks(ctx.Context(), userId, workspaceId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list share links", res))
}

func (c *shareController) Revoke(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))
	linkId, _ := uuid.Parse(ctx.Params("id"))

	if err := c.shareService.RevokeLink(ctx.Context(), userId, workspaceId, documentId, linkId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success revoke share link", fiber.Map{}))
}

func (c *shareController) ShowShared(ctx *fiber.Ctx) error {
	res, err := c.shareService.GetSharedDocument(ctx.Context(), ctx.Params("token"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show shared document", res))
}
