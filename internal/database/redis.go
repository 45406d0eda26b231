package database

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/mdouchement/lists/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Key layout, per index:
//
//	<index>:doc:<id>                              JSON document
//	<index>:zl:<len>:<list_id>                    ZSET of "<tie_breaker_id>|<id>" scored 0 (lexicographic order)
//	<index>:vals:<field>:<len>:<list_id>:<value>  SET of item ids holding the value
//
// <len> is the byte length of the list id, so that free-form ids and values can't collide.
type rds struct {
	client *redis.Client
}

// RedisOpen returns a new Redis connection.
func RedisOpen(ctx context.Context, opts *redis.Options) (Client, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "could not ping Redis")
	}

	return &rds{
		client: client,
	}, nil
}

func docKey(index, id string) string {
	return index + ":doc:" + id
}

func byListKey(index, listID string) string {
	return index + ":zl:" + strconv.Itoa(len(listID)) + ":" + listID
}

func byValueKey(index, listID, field, value string) string {
	return index + ":vals:" + field + ":" + strconv.Itoa(len(listID)) + ":" + listID + ":" + value
}

func member(d *ListItemDocument) string {
	return d.TieBreakerID + "|" + d.ID
}

// Close the database.
func (c *rds) Close() error {
	return c.client.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *rds) IsNotFound(err error) bool {
	return errors.Cause(err) == redis.Nil
}

func (c *rds) get(ctx context.Context, key string, v any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// FindList returns the list for the given id.
func (c *rds) FindList(ctx context.Context, index, id string) (*ListDocument, error) {
	var list ListDocument
	if err := c.get(ctx, docKey(index, id), &list); err != nil {
		return nil, errors.Wrap(err, "could not find list")
	}
	return &list, nil
}

// IndexList creates or overwrites the list.
func (c *rds) IndexList(ctx context.Context, index string, doc *ListDocument) (string, error) {
	id := ensureID(doc)

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "could not encode list")
	}

	return id, errors.Wrap(c.client.Set(ctx, docKey(index, id), payload, 0).Err(), "could not save list")
}

// UpdateList applies the patch on the list for the given id.
func (c *rds) UpdateList(ctx context.Context, index, id string, patch ListPatch) (string, error) {
	key := docKey(index, id)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}

		var list ListDocument
		if err = json.Unmarshal(raw, &list); err != nil {
			return err
		}
		patch.Apply(&list)

		payload, err := json.Marshal(&list)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return "", errors.Wrap(err, "could not update list")
	}

	return id, nil
}

// DeleteList deletes the list for the given id.
func (c *rds) DeleteList(ctx context.Context, index, id string) error {
	n, err := c.client.Del(ctx, docKey(index, id)).Result()
	if err != nil {
		return errors.Wrap(err, "could not delete list")
	}
	if n == 0 {
		return errors.Wrap(redis.Nil, "could not delete list")
	}
	return nil
}

// FindListItem returns the list item for the given id.
func (c *rds) FindListItem(ctx context.Context, index, id string) (*ListItemDocument, error) {
	var item ListItemDocument
	if err := c.get(ctx, docKey(index, id), &item); err != nil {
		return nil, errors.Wrap(err, "could not find list item")
	}
	return &item, nil
}

// FindListItemsByValue returns the items of the list holding one of the given values.
func (c *rds) FindListItemsByValue(ctx context.Context, index, listID string, t model.Type, values []string) ([]*ListItemDocument, error) {
	_, field := valueField(t)
	if field == "" || len(values) == 0 {
		return make([]*ListItemDocument, 0), nil
	}

	keys := make([]string, 0, len(values))
	for _, v := range values {
		keys = append(keys, byValueKey(index, listID, field, v))
	}

	ids, err := c.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "could not find list items by value")
	}

	docs, err := c.items(ctx, index, ids)
	if err != nil {
		return nil, err
	}

	// The sets may reference documents rewritten since they were indexed.
	items := make([]*ListItemDocument, 0, len(docs))
	for _, doc := range docs {
		typ, v := doc.Value()
		if doc.ListID == listID && typ == t && slices.Contains(values, v) {
			items = append(items, doc)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].TieBreakerID < items[j].TieBreakerID
	})
	return items, nil
}

// FindListItemsByListID returns at most limit items of the list ordered by tie breaker id.
// Members whose document vanished are skipped and the page is filled from the following members.
func (c *rds) FindListItemsByListID(ctx context.Context, index, listID, after string, limit int) ([]*ListItemDocument, error) {
	lower := "-"
	if after != "" {
		// Skips every member of the after tie breaker id, whatever their item id.
		lower = "(" + after + "|\xff"
	}

	items := make([]*ListItemDocument, 0)
	for {
		var count int
		if limit > 0 {
			count = limit - len(items)
		}

		members, err := c.client.ZRangeByLex(ctx, byListKey(index, listID), &redis.ZRangeBy{
			Min:   lower,
			Max:   "+",
			Count: int64(count),
		}).Result()
		if err != nil {
			return nil, errors.Wrap(err, "could not find list items")
		}

		ids := make([]string, 0, len(members))
		for _, m := range members {
			if i := strings.LastIndexByte(m, '|'); i >= 0 {
				ids = append(ids, m[i+1:])
			}
		}

		docs, err := c.items(ctx, index, ids)
		if err != nil {
			return nil, err
		}
		items = append(items, docs...)

		if count == 0 || len(members) < count || len(items) >= limit {
			return items, nil
		}
		lower = "(" + members[len(members)-1]
	}
}

// items fetches the documents of the given ids, in the same order, skipping vanished ones.
func (c *rds) items(ctx context.Context, index string, ids []string) ([]*ListItemDocument, error) {
	items := make([]*ListItemDocument, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, docKey(index, id))
	}

	raws, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch list items")
	}

	for _, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			continue
		}

		var item ListItemDocument
		if err = json.Unmarshal([]byte(s), &item); err != nil {
			return nil, errors.Wrap(err, "could not decode list item")
		}
		items = append(items, &item)
	}

	return items, nil
}

// IndexListItem creates or overwrites the list item.
func (c *rds) IndexListItem(ctx context.Context, index string, doc *ListItemDocument) (string, error) {
	id := ensureID(doc)

	previous, err := c.FindListItem(ctx, index, id)
	if err != nil && !c.IsNotFound(err) {
		return "", err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "could not encode list item")
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil {
			c.unindex(ctx, pipe, index, previous)
		}
		pipe.Set(ctx, docKey(index, id), payload, 0)
		c.index(ctx, pipe, index, doc)
		return nil
	})
	return id, errors.Wrap(err, "could not save list item")
}

// BulkListItems performs all the operations in one MULTI/EXEC transaction.
func (c *rds) BulkListItems(ctx context.Context, index string, ops []BulkOperation) error {
	payloads := make([][]byte, len(ops))
	for i, op := range ops {
		if op.Action != BulkCreate {
			return errors.Errorf("unsupported bulk action %q at position %d", op.Action, i)
		}

		ensureID(op.Document)
		payload, err := json.Marshal(op.Document)
		if err != nil {
			return errors.Wrapf(err, "could not encode list item at position %d", i)
		}
		payloads[i] = payload
	}

	if len(ops) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, op := range ops {
			pipe.Set(ctx, docKey(index, op.Document.ID), payloads[i], 0)
			c.index(ctx, pipe, index, op.Document)
		}
		return nil
	})
	return errors.Wrap(err, "could not perform bulk")
}

// DeleteListItem deletes the list item for the given id.
func (c *rds) DeleteListItem(ctx context.Context, index, id string) error {
	item, err := c.FindListItem(ctx, index, id)
	if err != nil {
		return errors.Wrap(err, "could not delete list item")
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, docKey(index, id))
		c.unindex(ctx, pipe, index, item)
		return nil
	})
	return errors.Wrap(err, "could not delete list item")
}

func (c *rds) index(ctx context.Context, pipe redis.Pipeliner, index string, d *ListItemDocument) {
	pipe.ZAdd(ctx, byListKey(index, d.ListID), redis.Z{Score: 0, Member: member(d)})

	t, v := d.Value()
	if _, field := valueField(t); field != "" {
		pipe.SAdd(ctx, byValueKey(index, d.ListID, field, v), d.ID)
	}
}

func (c *rds) unindex(ctx context.Context, pipe redis.Pipeliner, index string, d *ListItemDocument) {
	pipe.ZRem(ctx, byListKey(index, d.ListID), member(d))

	t, v := d.Value()
	if _, field := valueField(t); field != "" {
		pipe.SRem(ctx, byValueKey(index, d.ListID, field, v), d.ID)
	}
}
