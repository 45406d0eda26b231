package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lists/internal/listerror"
	"github.com/mdouchement/lists/internal/lists"
	"github.com/mdouchement/lists/internal/model"
	"github.com/mdouchement/lists/internal/server/serializer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// item contains all list item handlers.
type item struct {
	scoper
	importBatchSize int
	exportPageSize  int
}

type (
	createListItemParams struct {
		ID     string `json:"id"      validate:"omitempty,max=256"`
		ListID string `json:"list_id" validate:"required"`
		Value  string `json:"value"   validate:"required"`
	}

	// Either an id or a list_id along with a value.
	findListItemParams struct {
		ID     string `query:"id"      validate:"required_without=ListID,excluded_with=ListID"`
		ListID string `query:"list_id" validate:"required_without=ID,required_with=Value"`
		Value  string `query:"value"   validate:"required_with=ListID"`
	}

	importListItemsParams struct {
		ListID string `query:"list_id" validate:"required_without=Type,excluded_with=Type"`
		Type   string `query:"type"    validate:"omitempty,list_type"`
	}

	exportListItemsParams struct {
		ListID string `query:"list_id" validate:"required"`
	}
)

///// Create
////
//

// Create adds a value to an existing list.
func (h *item) Create(c echo.Context) error {
	var params createListItemParams
	if err := bind(c, &params); err != nil {
		return err
	}

	ctx := c.Request().Context()
	scope := h.scope(c)

	list, err := lists.GetList(ctx, scope, params.ListID)
	if err != nil {
		return err
	}
	if list == nil {
		return listNotFound(params.ListID)
	}

	value, err := list.Type.ParseValue(params.Value)
	if err != nil {
		return listerror.InvalidValue(err.Error())
	}

	if params.ID != "" {
		existing, err := lists.GetListItem(ctx, scope, params.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return listerror.Conflict(fmt.Sprintf("list item id: %q already exists", params.ID))
		}
	}

	item, err := lists.CreateListItem(ctx, scope, lists.CreateListItemParams{
		ID:     params.ID,
		ListID: list.ID,
		Type:   list.Type,
		Value:  value,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.ListItem(item))
}

///// Show
////
//

// Show renders the item for the given id, or the items of a list holding the given value.
func (h *item) Show(c echo.Context) error {
	var params findListItemParams
	if err := bind(c, &params); err != nil {
		return err
	}

	ctx := c.Request().Context()
	scope := h.scope(c)

	if params.ID != "" {
		item, err := lists.GetListItem(ctx, scope, params.ID)
		if err != nil {
			return err
		}
		if item == nil {
			return listItemNotFound(params.ID)
		}

		return c.JSON(http.StatusOK, serializer.ListItem(item))
	}

	list, value, err := h.listAndValue(c, params.ListID, params.Value)
	if err != nil {
		return err
	}

	items, err := lists.GetListItemsByValues(ctx, scope, list.ID, list.Type, []string{value})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return listItemValueNotFound(list.ID, value)
	}

	return c.JSON(http.StatusOK, serializer.ListItems(items))
}

///// Delete
////
//

// Delete deletes the item for the given id, or all the items of a list holding the given value.
func (h *item) Delete(c echo.Context) error {
	var params findListItemParams
	if err := bind(c, &params); err != nil {
		return err
	}

	ctx := c.Request().Context()
	scope := h.scope(c)

	if params.ID != "" {
		item, err := lists.DeleteListItem(ctx, scope, params.ID)
		if err != nil {
			return err
		}
		if item == nil {
			return listItemNotFound(params.ID)
		}

		return c.JSON(http.StatusOK, serializer.ListItem(item))
	}

	list, value, err := h.listAndValue(c, params.ListID, params.Value)
	if err != nil {
		return err
	}

	items, err := lists.DeleteListItemsByValue(ctx, scope, list.ID, list.Type, value)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return listItemValueNotFound(list.ID, value)
	}

	return c.JSON(http.StatusOK, serializer.ListItems(items))
}

///// Import
////
//

// Import adds the values of the uploaded file, one per line, to a list.
// When only a type is given, the list is named after the file and created if needed.
func (h *item) Import(c echo.Context) error {
	var params importListItemsParams
	err := echo.QueryParamsBinder(c).
		String("list_id", &params.ListID).
		String("type", &params.Type).
		BindError()
	if err != nil {
		return listerror.InvalidParameters("Could not parse parameters.")
	}
	if err = c.Validate(&params); err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return listerror.InvalidParameters("file is required")
	}

	ctx := c.Request().Context()
	scope := h.scope(c)

	id := params.ListID
	if id == "" {
		id = file.Filename
	}

	list, err := lists.GetList(ctx, scope, id)
	if err != nil {
		return err
	}

	switch {
	case list == nil && params.ListID != "":
		return listNotFound(params.ListID)
	case list == nil:
		list, err = lists.CreateList(ctx, scope, lists.CreateListParams{
			ID:          file.Filename,
			Name:        file.Filename,
			Description: fmt.Sprintf("File uploaded from file system of %s", file.Filename),
			Type:        model.Type(params.Type),
		})
		if err != nil {
			return err
		}
	case params.Type != "" && list.Type != model.Type(params.Type):
		return listerror.Conflict(fmt.Sprintf("list id: %q already exists with type %s", list.ID, list.Type))
	}

	src, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "could not open uploaded file")
	}
	defer src.Close()

	n, err := lists.ImportListItems(ctx, scope, list.ID, list.Type, src, h.importBatchSize)
	if err != nil {
		var verr *lists.ValidationError
		if errors.As(err, &verr) {
			return listerror.InvalidValue(fmt.Sprintf("%s (%d values imported)", verr, n))
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"list":     serializer.List(list),
		"imported": n,
	})
}

///// Export
////
//

// Export streams the values of a list, one per line.
func (h *item) Export(c echo.Context) error {
	var params exportListItemsParams
	err := echo.QueryParamsBinder(c).
		String("list_id", &params.ListID).
		BindError()
	if err != nil {
		return listerror.InvalidParameters("Could not parse parameters.")
	}
	if err = c.Validate(&params); err != nil {
		return err
	}

	ctx := c.Request().Context()
	scope := h.scope(c)

	list, err := lists.GetList(ctx, scope, params.ListID)
	if err != nil {
		return err
	}
	if list == nil {
		return listNotFound(params.ListID)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", list.ID))
	res.WriteHeader(http.StatusOK)

	n, err := lists.ExportListItems(ctx, scope, list.ID, res, h.exportPageSize)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"list_id": list.ID, "exported": n}).Debug("List exported")
	return nil
}

//
// Helpers
//

func (h *item) listAndValue(c echo.Context, listID, raw string) (*model.List, string, error) {
	list, err := lists.GetList(c.Request().Context(), h.scope(c), listID)
	if err != nil {
		return nil, "", err
	}
	if list == nil {
		return nil, "", listNotFound(listID)
	}

	value, err := list.Type.ParseValue(raw)
	if err != nil {
		return nil, "", listerror.InvalidValue(err.Error())
	}

	return list, value, nil
}

func listItemNotFound(id string) error {
	return listerror.NotFound(fmt.Sprintf("list item id: %q not found", id))
}

func listItemValueNotFound(listID, value string) error {
	return listerror.NotFound(fmt.Sprintf("list id: %q item of value %q not found", listID, value))
}
