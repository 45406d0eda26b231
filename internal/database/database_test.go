package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/mdouchement/lists/internal/database"
	"github.com/mdouchement/lists/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient runs the behaviors every backend must share.
func testClient(t *testing.T, db database.Client) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("lists", func(t *testing.T) {
		list := &database.ListDocument{
			Base: database.Base{
				CreatedAt:    now,
				UpdatedAt:    now,
				CreatedBy:    "george",
				UpdatedBy:    "george",
				TieBreakerID: "tie-list",
			},
			Name:        "blocked",
			Description: "blocked addresses",
			Type:        model.TypeIP,
		}

		id, err := db.IndexList(ctx, "lists-contract", list)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, list.ID)

		found, err := db.FindList(ctx, "lists-contract", id)
		require.NoError(t, err)
		assert.Equal(t, "blocked", found.Name)
		assert.Equal(t, "blocked addresses", found.Description)
		assert.Equal(t, model.TypeIP, found.Type)
		assert.Equal(t, "george", found.CreatedBy)
		assert.WithinDuration(t, now, found.CreatedAt, time.Millisecond)

		_, err = db.FindList(ctx, "lists-contract-other", id)
		assert.True(t, db.IsNotFound(err))

		name := "denied"
		later := now.Add(time.Minute)
		_, err = db.UpdateList(ctx, "lists-contract", id, database.ListPatch{
			Name:      &name,
			UpdatedAt: later,
			UpdatedBy: "elsa",
		})
		require.NoError(t, err)

		found, err = db.FindList(ctx, "lists-contract", id)
		require.NoError(t, err)
		assert.Equal(t, "denied", found.Name)
		assert.Equal(t, "blocked addresses", found.Description)
		assert.Equal(t, "elsa", found.UpdatedBy)
		assert.Equal(t, "george", found.CreatedBy)
		assert.WithinDuration(t, later, found.UpdatedAt, time.Millisecond)

		_, err = db.UpdateList(ctx, "lists-contract", "unknown", database.ListPatch{Name: &name})
		assert.True(t, db.IsNotFound(err))

		require.NoError(t, db.DeleteList(ctx, "lists-contract", id))

		_, err = db.FindList(ctx, "lists-contract", id)
		assert.True(t, db.IsNotFound(err))

		err = db.DeleteList(ctx, "lists-contract", id)
		assert.True(t, db.IsNotFound(err))
	})

	t.Run("list items", func(t *testing.T) {
		var ops []database.BulkOperation
		for _, v := range []struct{ list, value, tie string }{
			{"list-1", "x", "tie-a"},
			{"list-1", "y", "tie-b"},
			{"list-1", "z", "tie-c"},
			{"list-2", "x", "tie-d"},
		} {
			doc := &database.ListItemDocument{
				Base: database.Base{
					CreatedAt:    now,
					UpdatedAt:    now,
					TieBreakerID: v.tie,
				},
				ListID: v.list,
			}
			doc.SetValue(model.TypeKeyword, v.value)
			ops = append(ops, database.BulkOperation{Action: database.BulkCreate, Document: doc})
		}

		require.NoError(t, db.BulkListItems(ctx, "items-contract", ops))
		for _, op := range ops {
			assert.NotEmpty(t, op.Document.ID)
		}

		items, err := db.FindListItemsByValue(ctx, "items-contract", "list-1", model.TypeKeyword, []string{"z", "x", "nope"})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "tie-a", items[0].TieBreakerID)
		assert.Equal(t, "tie-c", items[1].TieBreakerID)
		typ, value := items[1].Value()
		assert.Equal(t, model.TypeKeyword, typ)
		assert.Equal(t, "z", value)

		items, err = db.FindListItemsByValue(ctx, "items-contract", "list-1", model.TypeIP, []string{"x"})
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = db.FindListItemsByValue(ctx, "items-contract-other", "list-1", model.TypeKeyword, []string{"x"})
		require.NoError(t, err)
		assert.Empty(t, items)

		page, err := db.FindListItemsByListID(ctx, "items-contract", "list-1", "", 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "tie-a", page[0].TieBreakerID)
		assert.Equal(t, "tie-b", page[1].TieBreakerID)

		page, err = db.FindListItemsByListID(ctx, "items-contract", "list-1", "tie-b", 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "tie-c", page[0].TieBreakerID)

		page, err = db.FindListItemsByListID(ctx, "items-contract", "list-1", "tie-c", 2)
		require.NoError(t, err)
		assert.Empty(t, page)

		id := ops[0].Document.ID
		item, err := db.FindListItem(ctx, "items-contract", id)
		require.NoError(t, err)
		assert.Equal(t, "list-1", item.ListID)
		assert.Equal(t, "x", item.Keyword)

		require.NoError(t, db.DeleteListItem(ctx, "items-contract", id))

		_, err = db.FindListItem(ctx, "items-contract", id)
		assert.True(t, db.IsNotFound(err))

		err = db.DeleteListItem(ctx, "items-contract", id)
		assert.True(t, db.IsNotFound(err))

		items, err = db.FindListItemsByValue(ctx, "items-contract", "list-1", model.TypeKeyword, []string{"x"})
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = db.FindListItemsByValue(ctx, "items-contract", "list-2", model.TypeKeyword, []string{"x"})
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("colliding list ids", func(t *testing.T) {
		var ops []database.BulkOperation
		for _, v := range []struct{ list, value, tie string }{
			{"a:keyword:b", "c", "tie-c1"},
			{"a", "b:keyword:c", "tie-c2"},
			{"a", "x", "tie-c3"},
			{"a:keyword:x", "z", "tie-c4"},
		} {
			doc := &database.ListItemDocument{
				Base:   database.Base{TieBreakerID: v.tie},
				ListID: v.list,
			}
			doc.SetValue(model.TypeKeyword, v.value)
			ops = append(ops, database.BulkOperation{Action: database.BulkCreate, Document: doc})
		}
		require.NoError(t, db.BulkListItems(ctx, "items-colliding", ops))

		items, err := db.FindListItemsByValue(ctx, "items-colliding", "a", model.TypeKeyword, []string{"b:keyword:c"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].ListID)
		assert.Equal(t, "tie-c2", items[0].TieBreakerID)

		items, err = db.FindListItemsByValue(ctx, "items-colliding", "a:keyword:b", model.TypeKeyword, []string{"c"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "a:keyword:b", items[0].ListID)

		items, err = db.FindListItemsByValue(ctx, "items-colliding", "a", model.TypeKeyword, []string{"c", "x", "z"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "tie-c3", items[0].TieBreakerID)

		page, err := db.FindListItemsByListID(ctx, "items-colliding", "a", "", 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		for _, item := range page {
			assert.Equal(t, "a", item.ListID)
		}

		page, err = db.FindListItemsByListID(ctx, "items-colliding", "a:keyword:x", "", 0)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "tie-c4", page[0].TieBreakerID)
	})

	t.Run("single list item", func(t *testing.T) {
		doc := &database.ListItemDocument{
			Base:   database.Base{ID: "fixed-id", TieBreakerID: "tie-single"},
			ListID: "list-3",
		}
		doc.SetValue(model.TypeIP, "127.0.0.1")

		id, err := db.IndexListItem(ctx, "items-contract", doc)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", id)

		doc.SetValue(model.TypeIP, "127.0.0.2")
		_, err = db.IndexListItem(ctx, "items-contract", doc)
		require.NoError(t, err)

		items, err := db.FindListItemsByValue(ctx, "items-contract", "list-3", model.TypeIP, []string{"127.0.0.1"})
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = db.FindListItemsByValue(ctx, "items-contract", "list-3", model.TypeIP, []string{"127.0.0.2"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "fixed-id", items[0].ID)
	})

	t.Run("bulk", func(t *testing.T) {
		assert.NoError(t, db.BulkListItems(ctx, "items-contract", nil))

		err := db.BulkListItems(ctx, "items-contract", []database.BulkOperation{
			{Action: "index", Document: &database.ListItemDocument{ListID: "list-4"}},
		})
		assert.EqualError(t, err, `unsupported bulk action "index" at position 0`)
	})
}
