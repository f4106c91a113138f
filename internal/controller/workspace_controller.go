package controller

import (
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListMembers(ctx *fiber.Ctx) error
	UpdateMemberRole(ctx *fiber.Ctx) error
	RemoveMember(ctx *fiber.Ctx) error
	CreateInvite(ctx *fiber.Ctx) error
	ListInvites(ctx *fiber.Ctx) error
	RevokeInvite(ctx *fiber.Ctx) error
	AcceptInvite(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
}

func NewWorkspaceController(workspaceService service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Post("invite/accept", c.AcceptInvite)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Get(":id/member", c.ListMembers)
	h.Put(":id/member/:memberId", c.UpdateMemberRole)
	h.Delete(":id/member/:memberId", c.RemoveMember)
	h.Post(":id/invite", c.CreateInvite)
	h.Get(":id/invite", c.ListInvites)
	h.Delete(":id/invite/:inviteId", c.RevokeInvite)
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create workspace", res))
}

func (c *workspaceController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.workspaceService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list workspaces", res))
}

func (c *workspaceController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.workspaceService.Get(ctx.Context(), userId, workspaceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show workspace", res))
}

func (c *workspaceController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.UpdateWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id, _ = uuid.Parse(ctx.Params("id"))

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update workspace", res))
}

func (c *workspaceController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))

	if err := c.workspaceService.Delete(ctx.Context(), userId, workspaceId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete workspace", fiber.Map{}))
}

func (c *workspaceController) ListMembers(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.workspaceService.ListMembers(ctx.Context(), userId, workspaceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list members", res))
}

func (c *workspaceController) UpdateMemberRole(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))
	memberId, _ := uuid.Parse(ctx.Params("memberId"))

	var req dto.UpdateMemberRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.workspaceService.UpdateMemberRole(ctx.Context(), userId, workspaceId, memberId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update member role", fiber.Map{}))
}

func (c *workspaceController) RemoveMember(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))
	memberId, _ := uuid.Parse(ctx.Params("memberId"))

	if err := c.workspaceService.RemoveMember(ctx.Context(), userId, workspaceId, memberId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove member", fiber.Map{}))
}

func (c *workspaceController) CreateInvite(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.CreateInviteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.CreateInvite(ctx.Context(), userId, workspaceId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create invite", res))
}

func (c *workspaceController) ListInvites(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.workspaceService.ListInvites(ctx.Context(), userId, workspaceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list invites", res))
}

func (c *workspaceController) RevokeInvite(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	workspaceId, _ := uuid.Parse(ctx.Params("id"))
	inviteId, _ := uuid.Parse(ctx.Params("inviteId"))

	if err := c.workspaceService.RevokeInvite(ctx.Context(), userId, workspaceId, inviteId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success revoke invite", fiber.Map{}))
}

func (c *workspaceController) AcceptInvite(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.AcceptInviteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.AcceptInvite(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success accept invite", res))
}
