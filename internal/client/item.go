package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdouchement/lists/pkg/listsclient"
	"github.com/pkg/errors"
)

// AddItem adds a value to a list and prints the created item.
func AddItem(ctx context.Context, client listsclient.Client, listID, value string) error {
	item, err := client.CreateListItem(ctx, listsclient.CreateListItemParams{ListID: listID, Value: value})
	if err != nil {
		return err
	}
	return render(item)
}

// ShowItem prints the item for the given id.
func ShowItem(ctx context.Context, client listsclient.Client, id string) error {
	item, err := client.GetListItem(ctx, id)
	if err != nil {
		return err
	}
	return render(item)
}

// FindItems prints the items of a list holding value.
func FindItems(ctx context.Context, client listsclient.Client, listID, value string) error {
	items, err := client.FindListItems(ctx, listID, value)
	if err != nil {
		return err
	}
	return render(items)
}

// RemoveItem deletes the item for the given id and prints it.
func RemoveItem(ctx context.Context, client listsclient.Client, id string) error {
	item, err := client.DeleteListItem(ctx, id)
	if err != nil {
		return err
	}
	return render(item)
}

// RemoveItemsByValue deletes the items of a list holding value and prints them.
func RemoveItemsByValue(ctx context.Context, client listsclient.Client, listID, value string) error {
	items, err := client.DeleteListItemsByValue(ctx, listID, value)
	if err != nil {
		return err
	}
	return render(items)
}

// Import uploads filename to the given list, or to a list named after the file when typ is set.
func Import(ctx context.Context, client listsclient.Client, filename, listID, typ string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "could not open file")
	}
	defer f.Close()

	result, err := client.ImportListItems(ctx, listsclient.ImportParams{
		ListID:   listID,
		Type:     typ,
		Filename: filepath.Base(filename),
		Reader:   f,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d values imported into %s\n", result.Imported, result.List.ID)
	return nil
}

// Export writes the values of a list to filename, or to stdout when filename is empty.
func Export(ctx context.Context, client listsclient.Client, listID, filename string) error {
	if filename == "" {
		return client.ExportListItems(ctx, listID, stdout)
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", filename)
	}
	defer f.Close()

	if err = client.ExportListItems(ctx, listID, f); err != nil {
		return err
	}
	return errors.Wrap(f.Sync(), "could not store values")
}
