package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lists/internal/listerror"
	"github.com/mdouchement/lists/internal/lists"
	"github.com/mdouchement/lists/internal/model"
	"github.com/mdouchement/lists/internal/server/serializer"
)

// list contains all list handlers.
type list struct {
	scoper
}

type (
	createListParams struct {
		ID          string `json:"id"          validate:"omitempty,max=256"`
		Name        string `json:"name"        validate:"required"`
		Description string `json:"description"`
		Type        string `json:"type"        validate:"required,list_type"`
	}

	updateListParams struct {
		ID          string  `json:"id"          validate:"required"`
		Name        *string `json:"name"        validate:"omitempty,min=1"`
		Description *string `json:"description"`
	}

	listIDParams struct {
		ID string `query:"id" validate:"required"`
	}
)

///// Create
////
//

// Create creates a list. A given id must not be already used.
func (h *list) Create(c echo.Context) error {
	var params createListParams
	if err := bind(c, &params); err != nil {
		return err
	}

	ctx := c.Request().Context()
	scope := h.scope(c)

	if params.ID != "" {
		existing, err := lists.GetList(ctx, scope, params.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return listerror.Conflict(fmt.Sprintf("list id: %q already exists", params.ID))
		}
	}

	list, err := lists.CreateList(ctx, scope, lists.CreateListParams{
		ID:          params.ID,
		Name:        params.Name,
		Description: params.Description,
		Type:        model.Type(params.Type),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.List(list))
}

///// Show
////
//

// Show renders the list for the given id.
func (h *list) Show(c echo.Context) error {
	var params listIDParams
	if err := bind(c, &params); err != nil {
		return err
	}

	list, err := lists.GetList(c.Request().Context(), h.scope(c), params.ID)
	if err != nil {
		return err
	}
	if list == nil {
		return listNotFound(params.ID)
	}

	return c.JSON(http.StatusOK, serializer.List(list))
}

///// Update
////
//

// Update changes the name and/or the description of a list.
// Missing or null fields are left unchanged.
func (h *list) Update(c echo.Context) error {
	var params updateListParams
	if err := bind(c, &params); err != nil {
		return err
	}

	list, err := lists.UpdateList(c.Request().Context(), h.scope(c), lists.UpdateListParams{
		ID:          params.ID,
		Name:        model.SetToPtr(params.Name),
		Description: model.SetToPtr(params.Description),
	})
	if err != nil {
		return err
	}
	if list == nil {
		return listNotFound(params.ID)
	}

	return c.JSON(http.StatusOK, serializer.List(list))
}

///// Delete
////
//

// Delete deletes the list for the given id and renders it.
func (h *list) Delete(c echo.Context) error {
	var params listIDParams
	if err := bind(c, &params); err != nil {
		return err
	}

	list, err := lists.DeleteList(c.Request().Context(), h.scope(c), params.ID)
	if err != nil {
		return err
	}
	if list == nil {
		return listNotFound(params.ID)
	}

	return c.JSON(http.StatusOK, serializer.List(list))
}

//
// Helpers
//

// bind binds and validates the request parameters.
func bind(c echo.Context, params any) error {
	if err := c.Bind(params); err != nil {
		return err
	}
	return c.Validate(params)
}

func listNotFound(id string) error {
	return listerror.NotFound(fmt.Sprintf("list id: %q not found", id))
}
