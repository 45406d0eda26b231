package lists

import (
	"context"

	"github.com/mdouchement/lists/internal/model"
)

type (
	// CreateListParams are the inputs of CreateList.
	// An empty ID lets the storage assign one.
	CreateListParams struct {
		ID          string
		Name        string
		Description string
		Type        model.Type
	}

	// UpdateListParams are the inputs of UpdateList.
	UpdateListParams struct {
		ID          string
		Name        model.Update[string]
		Description model.Update[string]
	}
)

// CreateList stores a new list. There is no uniqueness check on the ID, an existing list is overwritten.
func CreateList(ctx context.Context, s Scope, p CreateListParams) (*model.List, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc := encodeList(p, s.User)
	id, err := s.DB.IndexList(ctx, s.ListIndex, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id

	return decodeList(doc), nil
}

// GetList returns the list for the given id or nil when it does not exist.
func GetList(ctx context.Context, s Scope, id string) (*model.List, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc, err := s.DB.FindList(ctx, s.ListIndex, id)
	if err != nil {
		if s.DB.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return decodeList(doc), nil
}

// UpdateList applies a partial update on the list and returns the updated list,
// or nil when it does not exist.
func UpdateList(ctx context.Context, s Scope, p UpdateListParams) (*model.List, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc, err := s.DB.FindList(ctx, s.ListIndex, p.ID)
	if err != nil {
		if s.DB.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	patch := listPatch(p, s.User)
	if _, err = s.DB.UpdateList(ctx, s.ListIndex, p.ID, patch); err != nil {
		return nil, err
	}

	// The result is built from the read document, the storage is not queried again.
	patch.Apply(doc)
	return decodeList(doc), nil
}

// DeleteList deletes the list and returns it as it was before the deletion,
// or nil when it does not exist. Items of the list are kept.
func DeleteList(ctx context.Context, s Scope, id string) (*model.List, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	doc, err := s.DB.FindList(ctx, s.ListIndex, id)
	if err != nil {
		if s.DB.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if err = s.DB.DeleteList(ctx, s.ListIndex, id); err != nil {
		return nil, err
	}

	return decodeList(doc), nil
}
