package controller

import (
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	searchService   service.ISearchService
}

func NewDocumentController(documentService service.IDocumentService, searchService service.ISearchService) IDocumentController {
	return &documentController{
		documentService: documentService,
		searchService:   searchService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1/:workspaceId/document")
	h.Use(serverutils.JwtMiddleware)
	h.Get("search", c.Search)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Put(":id/move", c.Move)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))

	var req dto.CreateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Create(ctx.Context(), userId, workspaceId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))

	var projectId *uuid.UUID
	if raw := ctx.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return serverutils.BadRequest("Invalid project_id")
		}
		projectId = &id
	}

	res, err := c.documentService.List(ctx.Context(), userId, workspaceId, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.Get(ctx.Context(), userId, workspaceId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))

	var req dto.UpdateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id, _ = uuid.Parse(ctx.Params("id"))

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Update(ctx.Context(), userId, workspaceId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update document", res))
}

func (c *documentController) Move(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))

	var req dto.MoveDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id, _ = uuid.Parse(ctx.Params("id"))

	if err := c.documentService.Move(ctx.Context(), userId, workspaceId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move document", fiber.Map{}))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))
	documentId, _ := uuid.Parse(ctx.Params("id"))

	if err := c.documentService.Delete(ctx.Context(), userId, workspaceId, documentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete document", fiber.Map{}))
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("workspaceId"))

	res, err := c.searchService.Search(ctx.Context(), userId, workspaceId, ctx.Query("q"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}
