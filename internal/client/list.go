package client

import (
	"context"

	"github.com/mdouchement/lists/pkg/listsclient"
)

// CreateList creates a list and prints it.
func CreateList(ctx context.Context, client listsclient.Client, params listsclient.CreateListParams) error {
	list, err := client.CreateList(ctx, params)
	if err != nil {
		return err
	}
	return render(list)
}

// ShowList prints the list for the given id.
func ShowList(ctx context.Context, client listsclient.Client, id string) error {
	list, err := client.GetList(ctx, id)
	if err != nil {
		return err
	}
	return render(list)
}

// UpdateList updates a list and prints the result.
func UpdateList(ctx context.Context, client listsclient.Client, params listsclient.UpdateListParams) error {
	list, err := client.UpdateList(ctx, params)
	if err != nil {
		return err
	}
	return render(list)
}

// DeleteList deletes a list and prints it.
func DeleteList(ctx context.Context, client listsclient.Client, id string) error {
	list, err := client.DeleteList(ctx, id)
	if err != nil {
		return err
	}
	return render(list)
}
