package database

import (
	"context"

	"github.com/mdouchement/lists/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Each index is a MongoDB collection named after the index.
type mgo struct {
	client   *mongo.Client
	database *mongo.Database
}

// MongoOpen returns a new MongoDB connection.
func MongoOpen(ctx context.Context, uri, database string) (Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to MongoDB")
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "could not ping MongoDB")
	}

	return &mgo{
		client:   client,
		database: client.Database(database),
	}, nil
}

// MongoInit creates the indexes used to query list items.
func MongoInit(ctx context.Context, uri, database string, listItemIndices []string) error {
	c, err := MongoOpen(ctx, uri, database)
	if err != nil {
		return err
	}
	defer c.Close()

	db := c.(*mgo).database
	for _, index := range listItemIndices {
		_, err = db.Collection(index).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "list_id", Value: 1}, {Key: "tie_breaker_id", Value: 1}}},
			{Keys: bson.D{{Key: "list_id", Value: 1}, {Key: "ip", Value: 1}}},
			{Keys: bson.D{{Key: "list_id", Value: 1}, {Key: "keyword", Value: 1}}},
		})
		if err != nil {
			return errors.Wrapf(err, "could not create indexes of %s", index)
		}
	}

	return nil
}

func (c *mgo) collection(index string) *mongo.Collection {
	return c.database.Collection(index)
}

// Close the database.
func (c *mgo) Close() error {
	return c.client.Disconnect(context.Background())
}

// IsNotFound returns true if err is a not found error.
func (c *mgo) IsNotFound(err error) bool {
	return errors.Cause(err) == mongo.ErrNoDocuments
}

// FindList returns the list for the given id.
func (c *mgo) FindList(ctx context.Context, index, id string) (*ListDocument, error) {
	var list ListDocument
	if err := c.collection(index).FindOne(ctx, bson.M{"_id": id}).Decode(&list); err != nil {
		return nil, errors.Wrap(err, "could not find list")
	}
	return &list, nil
}

// IndexList creates or overwrites the list.
func (c *mgo) IndexList(ctx context.Context, index string, doc *ListDocument) (string, error) {
	id := ensureID(doc)
	_, err := c.collection(index).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return id, errors.Wrap(err, "could not save list")
}

// UpdateList applies the patch on the list for the given id.
func (c *mgo) UpdateList(ctx context.Context, index, id string, patch ListPatch) (string, error) {
	res, err := c.collection(index).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return "", errors.Wrap(err, "could not update list")
	}
	if res.MatchedCount == 0 {
		return "", errors.Wrap(mongo.ErrNoDocuments, "could not find list to update")
	}
	return id, nil
}

// DeleteList deletes the list for the given id.
func (c *mgo) DeleteList(ctx context.Context, index, id string) error {
	return c.delete(ctx, index, id, "could not delete list")
}

// FindListItem returns the list item for the given id.
func (c *mgo) FindListItem(ctx context.Context, index, id string) (*ListItemDocument, error) {
	var item ListItemDocument
	if err := c.collection(index).FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, errors.Wrap(err, "could not find list item")
	}
	return &item, nil
}

// FindListItemsByValue returns the items of the list holding one of the given values.
func (c *mgo) FindListItemsByValue(ctx context.Context, index, listID string, t model.Type, values []string) ([]*ListItemDocument, error) {
	_, field := valueField(t)
	if field == "" || len(values) == 0 {
		return make([]*ListItemDocument, 0), nil
	}

	filter := bson.M{
		"list_id": listID,
		field:     bson.M{"$in": values},
	}
	return c.findItems(ctx, index, filter, 0)
}

// FindListItemsByListID returns at most limit items of the list ordered by tie breaker id.
func (c *mgo) FindListItemsByListID(ctx context.Context, index, listID, after string, limit int) ([]*ListItemDocument, error) {
	filter := bson.M{"list_id": listID}
	if after != "" {
		filter["tie_breaker_id"] = bson.M{"$gt": after}
	}
	return c.findItems(ctx, index, filter, limit)
}

func (c *mgo) findItems(ctx context.Context, index string, filter bson.M, limit int) ([]*ListItemDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "tie_breaker_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := c.collection(index).Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "could not find list items")
	}
	defer cursor.Close(ctx)

	items := make([]*ListItemDocument, 0)
	if err = cursor.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "could not decode list items")
	}
	return items, nil
}

// IndexListItem creates or overwrites the list item.
func (c *mgo) IndexListItem(ctx context.Context, index string, doc *ListItemDocument) (string, error) {
	id := ensureID(doc)
	_, err := c.collection(index).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return id, errors.Wrap(err, "could not save list item")
}

// BulkListItems performs all the operations in one ordered bulk write.
func (c *mgo) BulkListItems(ctx context.Context, index string, ops []BulkOperation) error {
	models := make([]mongo.WriteModel, 0, len(ops))
	for i, op := range ops {
		if op.Action != BulkCreate {
			return errors.Errorf("unsupported bulk action %q at position %d", op.Action, i)
		}

		ensureID(op.Document)
		models = append(models, mongo.NewInsertOneModel().SetDocument(op.Document))
	}

	if len(models) == 0 {
		return nil
	}

	_, err := c.collection(index).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return errors.Wrap(err, "could not perform bulk")
}

// DeleteListItem deletes the list item for the given id.
func (c *mgo) DeleteListItem(ctx context.Context, index, id string) error {
	return c.delete(ctx, index, id, "could not delete list item")
}

func (c *mgo) delete(ctx context.Context, index, id, message string) error {
	res, err := c.collection(index).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, message)
	}
	if res.DeletedCount == 0 {
		return errors.Wrap(mongo.ErrNoDocuments, message)
	}
	return nil
}
