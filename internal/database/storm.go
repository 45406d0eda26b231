package database

import (
	"context"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/lists/internal/model"
	"github.com/pkg/errors"
)

// Each index is a storm node (a top-level bucket) named after the index.
type strm struct {
	db *storm.DB
}

// DefaultStormCodec is the format used to store data in the database when none is given.
var DefaultStormCodec codec.MarshalUnmarshaler = msgpack.Codec

func stormCodec(c codec.MarshalUnmarshaler) func(*storm.Options) error {
	if c == nil {
		c = DefaultStormCodec
	}
	return storm.Codec(c)
}

// StormInit initializes the given indices in the Storm database.
func StormInit(database string, c codec.MarshalUnmarshaler, listIndices, listItemIndices []string) error {
	db, err := storm.Open(database, stormCodec(c))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, index := range listIndices {
		if err := db.From(index).Init(&ListDocument{}); err != nil {
			return errors.Wrapf(err, "could not init list index %s", index)
		}
	}

	for _, index := range listItemIndices {
		if err := db.From(index).Init(&ListItemDocument{}); err != nil {
			return errors.Wrapf(err, "could not init list item index %s", index)
		}
	}

	return nil
}

// StormReIndex reindex the given indices of the Storm database.
func StormReIndex(database string, c codec.MarshalUnmarshaler, listIndices, listItemIndices []string) error {
	db, err := storm.Open(database, stormCodec(c))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, index := range listIndices {
		if err := db.From(index).ReIndex(&ListDocument{}); err != nil {
			return errors.Wrapf(err, "could not ReIndex lists of %s", index)
		}
	}

	for _, index := range listItemIndices {
		if err := db.From(index).ReIndex(&ListItemDocument{}); err != nil {
			return errors.Wrapf(err, "could not ReIndex list items of %s", index)
		}
	}

	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string, c codec.MarshalUnmarshaler) (Client, error) {
	db, err := storm.Open(database, stormCodec(c))
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

func (c *strm) node(index string) storm.Node {
	return c.db.From(index)
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindList returns the list for the given id.
func (c *strm) FindList(_ context.Context, index, id string) (*ListDocument, error) {
	var list ListDocument
	if err := c.node(index).One("ID", id, &list); err != nil {
		return nil, errors.Wrap(err, "could not find list")
	}
	return &list, nil
}

// IndexList creates or overwrites the list.
func (c *strm) IndexList(_ context.Context, index string, doc *ListDocument) (string, error) {
	id := ensureID(doc)
	return id, errors.Wrap(c.node(index).Save(doc), "could not save list")
}

// UpdateList applies the patch on the list for the given id.
func (c *strm) UpdateList(_ context.Context, index, id string, patch ListPatch) (string, error) {
	tx, err := c.node(index).Begin(true)
	if err != nil {
		return "", errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	var list ListDocument
	if err = tx.One("ID", id, &list); err != nil {
		return "", errors.Wrap(err, "could not find list to update")
	}

	patch.Apply(&list)
	if err = tx.Save(&list); err != nil {
		return "", errors.Wrap(err, "could not update list")
	}

	return id, errors.Wrap(tx.Commit(), "could not commit list update")
}

// DeleteList deletes the list for the given id.
func (c *strm) DeleteList(_ context.Context, index, id string) error {
	err := c.node(index).DeleteStruct(&ListDocument{Base: Base{ID: id}})
	return errors.Wrap(err, "could not delete list")
}

// FindListItem returns the list item for the given id.
func (c *strm) FindListItem(_ context.Context, index, id string) (*ListItemDocument, error) {
	var item ListItemDocument
	if err := c.node(index).One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find list item")
	}
	return &item, nil
}

// FindListItemsByValue returns the items of the list holding one of the given values.
func (c *strm) FindListItemsByValue(_ context.Context, index, listID string, t model.Type, values []string) ([]*ListItemDocument, error) {
	items := make([]*ListItemDocument, 0)

	field, _ := valueField(t)
	if field == "" || len(values) == 0 {
		return items, nil
	}

	err := c.node(index).Select(q.Eq("ListID", listID), q.In(field, values)).OrderBy("TieBreakerID").Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find list items by value")
	}
	return items, nil
}

// FindListItemsByListID returns at most limit items of the list ordered by tie breaker id.
func (c *strm) FindListItemsByListID(_ context.Context, index, listID, after string, limit int) ([]*ListItemDocument, error) {
	query := []q.Matcher{q.Eq("ListID", listID)}
	if after != "" {
		query = append(query, q.Gt("TieBreakerID", after))
	}

	items := make([]*ListItemDocument, 0)
	stmt := c.node(index).Select(query...).OrderBy("TieBreakerID")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find list items")
	}
	return items, nil
}

// IndexListItem creates or overwrites the list item.
func (c *strm) IndexListItem(_ context.Context, index string, doc *ListItemDocument) (string, error) {
	id := ensureID(doc)
	return id, errors.Wrap(c.node(index).Save(doc), "could not save list item")
}

// BulkListItems performs all the operations in one write transaction.
func (c *strm) BulkListItems(_ context.Context, index string, ops []BulkOperation) error {
	tx, err := c.node(index).Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	for i, op := range ops {
		if op.Action != BulkCreate {
			return errors.Errorf("unsupported bulk action %q at position %d", op.Action, i)
		}

		ensureID(op.Document)
		if err = tx.Save(op.Document); err != nil {
			return errors.Wrapf(err, "could not create list item at position %d", i)
		}
	}

	return errors.Wrap(tx.Commit(), "could not commit bulk")
}

// DeleteListItem deletes the list item for the given id.
func (c *strm) DeleteListItem(_ context.Context, index, id string) error {
	err := c.node(index).DeleteStruct(&ListItemDocument{Base: Base{ID: id}})
	return errors.Wrap(err, "could not delete list item")
}
