package lists

import (
	"context"

	"github.com/mdouchement/lists/internal/database"
	"github.com/mdouchement/lists/internal/model"
)

// CreateListItemParams are the inputs of CreateListItem.
// An empty ID lets the storage assign one.
type CreateListItemParams struct {
	ID     string
	ListID string
	Type   model.Type
	Value  string
}

// CreateListItemsBulk stores one item per value in a single bulk request, in the given order.
// Nothing is sent when values is empty. The list is not checked for existence.
func CreateListItemsBulk(ctx context.Context, s Scope, listID string, t model.Type, values []string) error {
	if err := s.check(); err != nil {
		return err
	}

	if len(values) == 0 {
		return nil
	}

	now := timeNow()
	ops := make([]database.BulkOperation, 0, len(values))
	for _, v := range values {
		ops = append(ops, database.BulkOperation{
			Action:   database.BulkCreate,
			Document: encodeListItem("", listID, t, v, s.User, now),
		})
	}

	return s.DB.BulkListItems(ctx, s.ListItemIndex, ops)
}

// CreateListItem stores a single item.
func CreateListItem(ctx context.Context, s Scope, p CreateListItemParams) (*model.ListItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc := encodeListItem(p.ID, p.ListID, p.Type, p.Value, s.User, timeNow())
	id, err := s.DB.IndexListItem(ctx, s.ListItemIndex, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id

	return decodeListItem(doc), nil
}

// GetListItem returns the item for the given id or nil when it does not exist.
func GetListItem(ctx context.Context, s Scope, id string) (*model.ListItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc, err := s.DB.FindListItem(ctx, s.ListItemIndex, id)
	if err != nil {
		if s.DB.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return decodeListItem(doc), nil
}

// GetListItemsByValues returns the items of the list holding one of the given values.
func GetListItemsByValues(ctx context.Context, s Scope, listID string, t model.Type, values []string) ([]*model.ListItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	docs, err := s.DB.FindListItemsByValue(ctx, s.ListItemIndex, listID, t, values)
	if err != nil {
		return nil, err
	}

	return decodeListItems(docs), nil
}

// DeleteListItem deletes the item and returns it as it was before the deletion,
// or nil when it does not exist.
func DeleteListItem(ctx context.Context, s Scope, id string) (*model.ListItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc, err := s.DB.FindListItem(ctx, s.ListItemIndex, id)
	if err != nil {
		if s.DB.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if err = s.DB.DeleteListItem(ctx, s.ListItemIndex, id); err != nil {
		return nil, err
	}

	return decodeListItem(doc), nil
}

// DeleteListItemsByValue deletes every item of the list holding value and returns them.
func DeleteListItemsByValue(ctx context.Context, s Scope, listID string, t model.Type, value string) ([]*model.ListItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	docs, err := s.DB.FindListItemsByValue(ctx, s.ListItemIndex, listID, t, []string{value})
	if err != nil {
		return nil, err
	}

	deleted := make([]*model.ListItem, 0, len(docs))
	for _, doc := range docs {
		if err = s.DB.DeleteListItem(ctx, s.ListItemIndex, doc.ID); err != nil {
			if s.DB.IsNotFound(err) {
				// Deleted concurrently
				continue
			}
			return deleted, err
		}
		deleted = append(deleted, decodeListItem(doc))
	}

	return deleted, nil
}
