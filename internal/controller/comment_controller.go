package controller

import (
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICommentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type commentController struct {
	commentService service.ICommentService
}

func NewCommentController(commentService service.ICommentService) ICommentController {
	return &commentController{
		commentService: commentService,
	}
}

func (c *commentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1/:workspaceId/document/:documentId/comment")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Put(":id/resolve", c.Resolve)
	h.Delete(":id", c.Delete)
}

func (c *commentController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	var req dto.CreateCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commentService.Create(ctx.Context(), userId, workspaceId, documentId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create comment", res))
}

func (c *commentController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	res, err := c.commentService.List(ctx.Context(), userId, workspaceId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list comments", res))
}

func (c *commentController) Resolve(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))
	commentId, _ := uuid.Parse(ctx.Params("id"))

	if err := c.commentService.Resolve(ctx.Context(), userId, workspaceId, documentId, commentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve comment", fiber.Map{}))
}

func (c *commentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("documentId"))
	commentId, _ := uuid.Parse(ctx.Params("id"))

	if err := c.commentService.Delete(ctx.Context(), userId, workspaceId, documentId, commentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete comment", fiber.Map{}))
}
