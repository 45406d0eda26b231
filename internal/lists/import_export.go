package lists

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/mdouchement/lists/internal/model"
	"github.com/pkg/errors"
)

const (
	// DefaultImportBatchSize is the number of values sent per bulk request by ImportListItems.
	DefaultImportBatchSize = 100
	// DefaultExportPageSize is the number of items fetched per request by ExportListItems.
	DefaultExportPageSize = 100
	// MaxImportLineSize is the maximum size in bytes of an imported line.
	MaxImportLineSize = 1 << 20
)

// ImportListItems reads one value per line from r and stores them in the list,
// batchSize values per bulk request. Blank lines are skipped.
// It returns the number of stored values. When a value is invalid, the import stops
// with a ValidationError and the batches already sent are kept.
func ImportListItems(ctx context.Context, s Scope, listID string, t model.Type, r io.Reader, batchSize int) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}

	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}

	var imported int
	batch := make([]string, 0, batchSize)
	flush := func() error {
		if err := CreateListItemsBulk(ctx, s, listID, t, batch); err != nil {
			return err
		}
		imported += len(batch)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxImportLineSize)

	var line int
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		v, err := t.ParseValue(raw)
		if err != nil {
			return imported, &ValidationError{Line: line, Err: err}
		}

		batch = append(batch, v)
		if len(batch) < batchSize {
			continue
		}

		if err = flush(); err != nil {
			return imported, err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return imported, &ValidationError{Line: line + 1, Err: errors.Errorf("value exceeds %d bytes", MaxImportLineSize)}
		}
		return imported, errors.Wrap(err, "could not read values")
	}

	return imported, flush()
}

// ExportListItems writes the values of the list to w, one per line, ordered by tie breaker id.
// It returns the number of written values.
func ExportListItems(ctx context.Context, s Scope, listID string, w io.Writer, pageSize int) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}

	if pageSize <= 0 {
		pageSize = DefaultExportPageSize
	}

	bw := bufio.NewWriter(w)

	var exported int
	var after string
	for {
		docs, err := s.DB.FindListItemsByListID(ctx, s.ListItemIndex, listID, after, pageSize)
		if err != nil {
			return exported, err
		}

		for _, doc := range docs {
			_, v := doc.Value()
			if _, err = bw.WriteString(v + "\n"); err != nil {
				return exported, errors.Wrap(err, "could not write value")
			}
			exported++
		}

		if len(docs) < pageSize {
			break
		}
		after = docs[len(docs)-1].TieBreakerID
	}

	return exported, errors.Wrap(bw.Flush(), "could not write values")
}
