package database

import (
	"context"
	"time"

	"github.com/mdouchement/lists/internal/model"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type instrumented struct {
	Client

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bulked     prometheus.Counter
}

// Instrument wraps the client and records every storage request in the given registerer.
func Instrument(c Client, reg prometheus.Registerer) (Client, error) {
	i := &instrumented{
		Client: c,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lists",
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Number of storage requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lists",
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Duration of storage requests by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		bulked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lists",
			Subsystem: "storage",
			Name:      "bulk_documents_total",
			Help:      "Number of documents sent through bulk requests.",
		}),
	}

	for _, collector := range []prometheus.Collector{i.operations, i.duration, i.bulked} {
		if err := reg.Register(collector); err != nil {
			return nil, errors.Wrap(err, "could not register storage metrics")
		}
	}

	return i, nil
}

func (c *instrumented) observe(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		if c.Client.IsNotFound(err) {
			outcome = "not_found"
		}
	}

	c.operations.WithLabelValues(operation, outcome).Inc()
	c.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (c *instrumented) FindList(ctx context.Context, index, id string) (doc *ListDocument, err error) {
	defer func(start time.Time) { c.observe("find_list", start, err) }(time.Now())
	return c.Client.FindList(ctx, index, id)
}

func (c *instrumented) IndexList(ctx context.Context, index string, doc *ListDocument) (id string, err error) {
	defer func(start time.Time) { c.observe("index_list", start, err) }(time.Now())
	return c.Client.IndexList(ctx, index, doc)
}

func (c *instrumented) UpdateList(ctx context.Context, index, id string, patch ListPatch) (_ string, err error) {
	defer func(start time.Time) { c.observe("update_list", start, err) }(time.Now())
	return c.Client.UpdateList(ctx, index, id, patch)
}

func (c *instrumented) DeleteList(ctx context.Context, index, id string) (err error) {
	defer func(start time.Time) { c.observe("delete_list", start, err) }(time.Now())
	return c.Client.DeleteList(ctx, index, id)
}

func (c *instrumented) FindListItem(ctx context.Context, index, id string) (doc *ListItemDocument, err error) {
	defer func(start time.Time) { c.observe("find_list_item", start, err) }(time.Now())
	return c.Client.FindListItem(ctx, index, id)
}

func (c *instrumented) FindListItemsByValue(ctx context.Context, index, listID string, t model.Type, values []string) (docs []*ListItemDocument, err error) {
	defer func(start time.Time) { c.observe("find_list_items_by_value", start, err) }(time.Now())
	return c.Client.FindListItemsByValue(ctx, index, listID, t, values)
}

func (c *instrumented) FindListItemsByListID(ctx context.Context, index, listID, after string, limit int) (docs []*ListItemDocument, err error) {
	defer func(start time.Time) { c.observe("find_list_items_by_list_id", start, err) }(time.Now())
	return c.Client.FindListItemsByListID(ctx, index, listID, after, limit)
}

func (c *instrumented) IndexListItem(ctx context.Context, index string, doc *ListItemDocument) (id string, err error) {
	defer func(start time.Time) { c.observe("index_list_item", start, err) }(time.Now())
	return c.Client.IndexListItem(ctx, index, doc)
}

func (c *instrumented) BulkListItems(ctx context.Context, index string, ops []BulkOperation) (err error) {
	defer func(start time.Time) { c.observe("bulk_list_items", start, err) }(time.Now())
	c.bulked.Add(float64(len(ops)))
	return c.Client.BulkListItems(ctx, index, ops)
}

func (c *instrumented) DeleteListItem(ctx context.Context, index, id string) (err error) {
	defer func(start time.Time) { c.observe("delete_list_item", start, err) }(time.Now())
	return c.Client.DeleteListItem(ctx, index, id)
}
