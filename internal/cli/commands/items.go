package commands

import (
	"context"
	"flag"
	"fmt"

	"BwClient/internal/api"
	"BwClient/internal/config"
	"BwClient/internal/model"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "List items" }
func (itemsCmd) Usage() string {
	return "items [-search s] [-org id] [-collection id] [-folder id] [-url u] [-trash] [-exact]"
}

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var q api.ItemQuery
	var org, col, folder string
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.StringVar(&q.Search, "search", "", "search text")
	fs.StringVar(&org, "org", "", "organization id")
	fs.StringVar(&col, "collection", "", "collection id")
	fs.StringVar(&folder, "folder", "", "folder id (\"null\" for no folder)")
	fs.StringVar(&q.URL, "url", "", "login URL")
	fs.BoolVar(&q.Trash, "trash", false, "list deleted items")
	fs.BoolVar(&q.Exact, "exact", false, "keep only exact name matches")
	if err := parseFlags(fs, args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	q.OrganizationID = model.OrganizationID(org)
	q.CollectionID = model.CollectionID(col)
	q.FolderID = model.FolderID(folder)

	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	list, err := c.ListItems(ctx, q)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}
	for _, it := range list {
		printItemLine(it)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item-get" }
func (itemGetCmd) Description() string { return "Show an item by id" }
func (itemGetCmd) Usage() string       { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	it, err := c.GetItem(ctx, model.ItemID(args[0]))
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

type itemFindCmd struct{}

func (itemFindCmd) Name() string        { return "item-find" }
func (itemFindCmd) Description() string { return "Show the item with exactly this name" }
func (itemFindCmd) Usage() string       { return "item-find <name>" }

func (itemFindCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	it, err := c.FindItem(ctx, api.ItemQuery{Search: args[0], Exact: true})
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

type itemAddNoteCmd struct{}

func (itemAddNoteCmd) Name() string        { return "item-add-note" }
func (itemAddNoteCmd) Description() string { return "Create a secure note" }
func (itemAddNoteCmd) Usage() string       { return "item-add-note [-folder id] <name> <text>" }

func (itemAddNoteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("item-add-note", flag.ContinueOnError)
	folder := fs.String("folder", "", "folder id")
	if err := parseFlags(fs, args); err != nil || fs.NArg() != 2 {
		return ErrUsage
	}
	name, text := fs.Arg(0), fs.Arg(1)
	n := &model.NewSecureNoteItem{NewItemBase: model.NewItemBase{Name: name, Notes: &text}}
	if *folder != "" {
		id := model.FolderID(*folder)
		n.FolderID = &id
	}

	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	it, err := c.PostItem(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created %s (%s)\n", it.Common().ID, it.Common().Name)
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Move an item to the trash" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := c.DeleteItem(ctx, model.ItemID(args[0])); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s\n", args[0])
	return nil
}

type itemRestoreCmd struct{}

func (itemRestoreCmd) Name() string        { return "item-restore" }
func (itemRestoreCmd) Description() string { return "Restore an item from the trash" }
func (itemRestoreCmd) Usage() string       { return "item-restore <id>" }

func (itemRestoreCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := c.RestoreItem(ctx, model.ItemID(args[0])); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Restored %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemGetCmd{})
	RegisterCmd(itemFindCmd{})
	RegisterCmd(itemAddNoteCmd{})
	RegisterCmd(itemDeleteCmd{})
	RegisterCmd(itemRestoreCmd{})
}
