package handlers

import (
	"freshkeep/domain"
	"freshkeep/internal/api/presenters"
	"freshkeep/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		AddEntry(c *fiber.Ctx) error
		UpdateEntry(c *fiber.Ctx) error
		DeleteEntry(c *fiber.Ctx) error
		GetWeeklyMenu(c *fiber.Ctx) error
		CheckAvailability(c *fiber.Ctx) error
		GenerateShoppingList(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) AddEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddMenuEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMenuEntry, err)
	}

	res, err := h.menuService.AddEntry(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMenuEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMenuEntry)
}

func (h *menuHandler) UpdateEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")
	req := new(domain.UpdateMenuEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuEntry, err)
	}

	res, err := h.menuService.UpdateEntry(c.Context(), entryID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuEntry)
}

func (h *menuHandler) DeleteEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")

	if err := h.menuService.DeleteEntry(c.Context(), entryID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMenuEntry, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuEntry)
}

func (h *menuHandler) GetWeeklyMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	weekStart := c.Query("week_start_date")

	res, err := h.menuService.GetWeeklyMenu(c.Context(), userID, weekStart)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeeklyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeeklyMenu)
}

func (h *menuHandler) CheckAvailability(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")
	servings := queryInt(c, "servings", 2)

	res, err := h.menuService.CheckAvailability(c.Context(), recipeID, servings, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckAvailability, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckAvailability)
}

func (h *menuHandler) GenerateShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	weekStart := c.Query("week_start_date")

	res, err := h.menuService.GenerateShoppingList(c.Context(), userID, weekStart)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMenuShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMenuShoppingList)
}
