package commands

import (
	"context"
	"flag"
	"fmt"

	"BwClient/internal/api"
	"BwClient/internal/config"
	"BwClient/internal/model"
)

type orgsCmd struct{}

func (orgsCmd) Name() string        { return "orgs" }
func (orgsCmd) Description() string { return "List organizations" }
func (orgsCmd) Usage() string       { return "orgs [-search s] [-exact]" }

func (orgsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var q api.OrganizationQuery
	fs := flag.NewFlagSet("orgs", flag.ContinueOnError)
	fs.StringVar(&q.Search, "search", "", "search text")
	fs.BoolVar(&q.Exact, "exact", false, "keep only exact name matches")
	if err := parseFlags(fs, args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	list, err := c.ListOrganizations(ctx, q)
	if err != nil {
		return err
	}
	for _, o := range list {
		state := "enabled"
		if !o.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(Out, "- %s  %s  (%s)\n", o.ID, o.Name, state)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

type collectionsCmd struct{}

func (collectionsCmd) Name() string        { return "collections" }
func (collectionsCmd) Description() string { return "List collections" }
func (collectionsCmd) Usage() string       { return "collections [-search s] [-org id] [-exact]" }

func (collectionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var q api.CollectionQuery
	var org string
	fs := flag.NewFlagSet("collections", flag.ContinueOnError)
	fs.StringVar(&q.Search, "search", "", "search text")
	fs.StringVar(&org, "org", "", "organization id")
	fs.BoolVar(&q.Exact, "exact", false, "keep only exact name matches")
	if err := parseFlags(fs, args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	q.OrganizationID = model.OrganizationID(org)

	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	list, err := c.ListCollections(ctx, q)
	if err != nil {
		return err
	}
	for _, col := range list {
		fmt.Fprintf(Out, "- %s  %s  org=%s", col.ID, col.Name, col.OrgID)
		if len(col.Groups) > 0 {
			fmt.Fprintf(Out, "  groups=%d", len(col.Groups))
		}
		fmt.Fprintln(Out)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func init() {
	RegisterCmd(orgsCmd{})
	RegisterCmd(collectionsCmd{})
}
