package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mdouchement/lists/internal/client"
	"github.com/mdouchement/lists/pkg/listsclient"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

var space string

func main() {
	c := &cobra.Command{
		Use:     "listsctl",
		Short:   "Lists client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.PersistentFlags().StringVarP(&space, "space", "s", "", "Space of the lists (overrides the configured one)")
	c.AddCommand(configureCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(listCmd())
	c.AddCommand(itemCmd())
	c.AddCommand(importCmd())
	c.AddCommand(exportCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		cancel()
		os.Exit(1)
	}
}

var (
	configureCmd = &cobra.Command{
		Use:   "configure",
		Short: "Configure the lists server to talk to",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Configure()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the configured lists server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}
)

func listCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "Manage lists",
		Args:  cobra.NoArgs,
	}

	var create listsclient.CreateListParams
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			create.Name = args[0]
			return client.CreateList(cmd.Context(), lc, create)
		},
	}
	createCmd.Flags().StringVar(&create.ID, "id", "", "List id (generated when empty)")
	createCmd.Flags().StringVarP(&create.Description, "description", "d", "", "List description")
	createCmd.Flags().StringVarP(&create.Type, "type", "t", "", "Type of the values (ip, keyword, ...)")
	createCmd.MarkFlagRequired("type")

	var name, description string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the name and/or the description of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}

			params := listsclient.UpdateListParams{ID: args[0]}
			if cmd.Flags().Changed("name") {
				params.Name = &name
			}
			if cmd.Flags().Changed("description") {
				params.Description = &description
			}
			return client.UpdateList(cmd.Context(), lc, params)
		},
	}
	updateCmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	updateCmd.Flags().StringVarP(&description, "description", "d", "", "New description")

	c.AddCommand(createCmd)
	c.AddCommand(updateCmd)
	c.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.ShowList(cmd.Context(), lc, args[0])
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.DeleteList(cmd.Context(), lc, args[0])
		},
	})

	return c
}

func itemCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "item",
		Short: "Manage list items",
		Args:  cobra.NoArgs,
	}

	c.AddCommand(&cobra.Command{
		Use:   "add LIST_ID VALUE",
		Short: "Add a value to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.AddItem(cmd.Context(), lc, args[0], args[1])
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show a list item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.ShowItem(cmd.Context(), lc, args[0])
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "find LIST_ID VALUE",
		Short: "Find the items of a list holding a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.FindItems(cmd.Context(), lc, args[0], args[1])
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "remove ID | LIST_ID VALUE",
		Short: "Remove an item, or all the items of a list holding a value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return client.RemoveItem(cmd.Context(), lc, args[0])
			}
			return client.RemoveItemsByValue(cmd.Context(), lc, args[0], args[1])
		},
	})

	return c
}

func importCmd() *cobra.Command {
	var listID, typ string
	c := &cobra.Command{
		Use:   "import FILENAME",
		Short: "Import the values of a file, one per line",
		Long:  "Import the values of a file, one per line, into an existing list (--list) or into a list named after the file (--type).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.Import(cmd.Context(), lc, args[0], listID, typ)
		},
	}
	c.Flags().StringVarP(&listID, "list", "l", "", "Id of the list to import into")
	c.Flags().StringVarP(&typ, "type", "t", "", "Type of the list named after the file")
	c.MarkFlagsOneRequired("list", "type")
	c.MarkFlagsMutuallyExclusive("list", "type")

	return c
}

func exportCmd() *cobra.Command {
	var output string
	c := &cobra.Command{
		Use:   "export LIST_ID",
		Short: "Export the values of a list, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := client.Connect(space)
			if err != nil {
				return err
			}
			return client.Export(cmd.Context(), lc, args[0], output)
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "Destination file (stdout when empty)")

	return c
}
