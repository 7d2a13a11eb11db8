package commands

import (
	"context"
	"flag"
	"fmt"

	"BwClient/internal/api"
	"BwClient/internal/config"
	"BwClient/internal/model"
)

type foldersCmd struct{}

func (foldersCmd) Name() string        { return "folders" }
func (foldersCmd) Description() string { return "List folders" }
func (foldersCmd) Usage() string       { return "folders [-search s] [-exact]" }

func (foldersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var q api.FolderQuery
	fs := flag.NewFlagSet("folders", flag.ContinueOnError)
	fs.StringVar(&q.Search, "search", "", "search text")
	fs.BoolVar(&q.Exact, "exact", false, "keep only exact name matches")
	if err := parseFlags(fs, args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	list, err := c.ListFolders(ctx, q)
	if err != nil {
		return err
	}
	for _, f := range list {
		fmt.Fprintf(Out, "- %s  %s\n", f.ID, f.Name)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

type folderAddCmd struct{}

func (folderAddCmd) Name() string        { return "folder-add" }
func (folderAddCmd) Description() string { return "Create a folder" }
func (folderAddCmd) Usage() string       { return "folder-add <name>" }

func (folderAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	f, err := c.PostFolder(ctx, model.NewFolder{Name: args[0]})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created %s (%s)\n", f.ID, f.Name)
	return nil
}

type folderRenameCmd struct{}

func (folderRenameCmd) Name() string        { return "folder-rename" }
func (folderRenameCmd) Description() string { return "Rename a folder" }
func (folderRenameCmd) Usage() string       { return "folder-rename <id> <name>" }

func (folderRenameCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	f, err := c.GetFolder(ctx, model.FolderID(args[0]))
	if err != nil {
		return err
	}
	old := f.Name
	f.Name = args[1]
	if f, err = c.PutFolder(ctx, f); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Renamed %s: %s -> %s\n", f.ID, old, f.Name)
	return nil
}

type folderDeleteCmd struct{}

func (folderDeleteCmd) Name() string        { return "folder-delete" }
func (folderDeleteCmd) Description() string { return "Delete a folder (items are kept)" }
func (folderDeleteCmd) Usage() string       { return "folder-delete <id>" }

func (folderDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := c.DeleteFolder(ctx, model.FolderID(args[0])); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(foldersCmd{})
	RegisterCmd(folderAddCmd{})
	RegisterCmd(folderRenameCmd{})
	RegisterCmd(folderDeleteCmd{})
}
