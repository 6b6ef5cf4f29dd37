package locations

import (
	"errors"

	locsvc "nearvisit-backend/internal/application/locations"
	"nearvisit-backend/internal/middleware"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers serves /api/location. List and single-record responses are bare
// JSON; deletes answer {"message"}.
type Handlers struct {
	Service *locsvc.Service
}

type nameRequest struct {
	Name string `json:"name" form:"name"`
}

type cityRequest struct {
	Name    string `json:"name" form:"name"`
	StateID string `json:"stateId" form:"stateId"`
}

type subcategoryRequest struct {
	Name       string `json:"name" form:"name"`
	CategoryID string `json:"categoryId" form:"categoryId"`
}

// --- States ---

func (h *Handlers) ListStates(c *fiber.Ctx) error {
	states, err := h.Service.ListStates(c.UserContext())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(states)
}

func (h *Handlers) CreateState(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	state, err := h.Service.CreateState(c.UserContext(), req.Name)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (h *Handlers) UpdateState(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrStateNotFound.Error())
	}
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	state, err := h.Service.UpdateState(c.UserContext(), id, req.Name)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(state)
}

func (h *Handlers) DeleteState(c *fiber.Ctx) error {
	if id, ok := pathID(c); ok {
		if err := h.Service.DeleteState(c.UserContext(), id); err != nil {
			return serverError(c, err)
		}
	}
	return c.JSON(response.MessageBody{Message: "State deleted"})
}

// --- Cities ---

func (h *Handlers) ListCities(c *fiber.Ctx) error {
	cities, err := h.Service.ListCities(c.UserContext())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(cities)
}

func (h *Handlers) ListCitiesByState(c *fiber.Ctx) error {
	stateID, err := uuid.Parse(c.Params("stateId"))
	if err != nil {
		return c.JSON([]struct{}{})
	}
	cities, err := h.Service.ListCitiesByState(c.UserContext(), stateID)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list cities by state failed")
		return response.ServerError(c, "Failed to load cities")
	}
	return c.JSON(cities)
}

func (h *Handlers) CreateCity(c *fiber.Ctx) error {
	var req cityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	stateID, err := optionalID(req.StateID)
	if err != nil {
		return response.BadRequest(c, "stateId must be a valid id")
	}
	var sid uuid.UUID
	if stateID != nil {
		sid = *stateID
	}
	city, err := h.Service.CreateCity(c.UserContext(), req.Name, sid)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(city)
}

func (h *Handlers) UpdateCity(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrCityNotFound.Error())
	}
	var req cityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	stateID, err := optionalID(req.StateID)
	if err != nil {
		return response.BadRequest(c, "stateId must be a valid id")
	}
	city, err := h.Service.UpdateCity(c.UserContext(), id, req.Name, stateID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(city)
}

func (h *Handlers) DeleteCity(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrCityNotFound.Error())
	}
	if err := h.Service.DeleteCity(c.UserContext(), id); err != nil {
		return mapError(c, err)
	}
	return c.JSON(response.MessageBody{Message: "City deleted successfully"})
}

// --- Categories ---

func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Service.ListCategories(c.UserContext())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(cats)
}

func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	cat, err := h.Service.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *Handlers) UpdateCategory(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrCategoryNotFound.Error())
	}
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	cat, err := h.Service.UpdateCategory(c.UserContext(), id, req.Name)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(cat)
}

func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrCategoryNotFound.Error())
	}
	if err := h.Service.DeleteCategory(c.UserContext(), id); err != nil {
		return mapError(c, err)
	}
	return c.JSON(response.MessageBody{Message: "Category deleted"})
}

// --- Subcategories ---

func (h *Handlers) ListSubcategories(c *fiber.Ctx) error {
	subs, err := h.Service.ListSubcategories(c.UserContext())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(subs)
}

func (h *Handlers) ListSubcategoriesByCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.JSON([]struct{}{})
	}
	subs, err := h.Service.ListSubcategoriesByCategory(c.UserContext(), categoryID)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list subcategories by category failed")
		return response.ServerError(c, "Failed to load subcategories")
	}
	return c.JSON(subs)
}

func (h *Handlers) CreateSubcategory(c *fiber.Ctx) error {
	var req subcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	categoryID, err := optionalID(req.CategoryID)
	if err != nil {
		return response.BadRequest(c, "categoryId must be a valid id")
	}
	var cid uuid.UUID
	if categoryID != nil {
		cid = *categoryID
	}
	sub, err := h.Service.CreateSubcategory(c.UserContext(), req.Name, cid)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *Handlers) UpdateSubcategory(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrSubcategoryNotFound.Error())
	}
	var req subcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	categoryID, err := optionalID(req.CategoryID)
	if err != nil {
		return response.BadRequest(c, "categoryId must be a valid id")
	}
	sub, err := h.Service.UpdateSubcategory(c.UserContext(), id, req.Name, categoryID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(sub)
}

func (h *Handlers) DeleteSubcategory(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return response.NotFound(c, locsvc.ErrSubcategoryNotFound.Error())
	}
	if err := h.Service.DeleteSubcategory(c.UserContext(), id); err != nil {
		return mapError(c, err)
	}
	return c.JSON(response.MessageBody{Message: "Subcategory deleted"})
}

func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// optionalID parses s; an empty s yields nil.
func optionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, locsvc.ErrNameRequired),
		errors.Is(err, locsvc.ErrStateRequired),
		errors.Is(err, locsvc.ErrCategoryRequired),
		errors.Is(err, locsvc.ErrStateExists):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, locsvc.ErrStateNotFound),
		errors.Is(err, locsvc.ErrCityNotFound),
		errors.Is(err, locsvc.ErrCategoryNotFound),
		errors.Is(err, locsvc.ErrSubcategoryNotFound):
		return response.NotFound(c, err.Error())
	default:
		return serverError(c, err)
	}
}

func serverError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Str("path", c.Path()).Msg("location request failed")
	return response.ServerError(c, "")
}
