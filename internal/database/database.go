package database

import (
	"context"

	"github.com/mdouchement/lists/internal/model"
)

type (
	// A Client can interacts with the document store.
	// Every method takes the name of the index it targets, there is no default index.
	Client interface {
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		ListInteraction
		ListItemInteraction
	}

	// A ListInteraction defines all the methods used to interact with a list document.
	ListInteraction interface {
		// FindList returns the list for the given id.
		FindList(ctx context.Context, index, id string) (*ListDocument, error)
		// IndexList creates or overwrites the list. An id is assigned when the document has none.
		// It returns the id of the document.
		IndexList(ctx context.Context, index string, doc *ListDocument) (string, error)
		// UpdateList applies the patch on the list for the given id.
		UpdateList(ctx context.Context, index, id string, patch ListPatch) (string, error)
		// DeleteList deletes the list for the given id.
		DeleteList(ctx context.Context, index, id string) error
	}

	// A ListItemInteraction defines all the methods used to interact with list item document(s).
	ListItemInteraction interface {
		// FindListItem returns the list item for the given id.
		FindListItem(ctx context.Context, index, id string) (*ListItemDocument, error)
		// FindListItemsByValue returns the items of the list holding one of the given values.
		FindListItemsByValue(ctx context.Context, index, listID string, t model.Type, values []string) ([]*ListItemDocument, error)
		// FindListItemsByListID returns at most limit items of the list ordered by tie breaker id.
		// Only items with a tie breaker id greater than after are returned.
		FindListItemsByListID(ctx context.Context, index, listID, after string, limit int) ([]*ListItemDocument, error)
		// IndexListItem creates or overwrites the list item. An id is assigned when the document has none.
		IndexListItem(ctx context.Context, index string, doc *ListItemDocument) (string, error)
		// BulkListItems performs all the operations in one request, in the given order.
		BulkListItems(ctx context.Context, index string, ops []BulkOperation) error
		// DeleteListItem deletes the list item for the given id.
		DeleteListItem(ctx context.Context, index, id string) error
	}
)
