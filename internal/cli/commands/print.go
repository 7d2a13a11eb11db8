package commands

import (
	"fmt"
	"strings"
	"time"

	"BwClient/internal/model"
)

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func printItemLine(it model.Item) {
	b := it.Common()
	mark := ""
	if b.Meta.DeletedAt != nil {
		mark = " (deleted)"
	}
	fmt.Fprintf(Out, "- %s  %-10s  %s%s\n", b.ID, it.Type(), b.Name, mark)
}

// printItem shows one item. Secrets print as the redaction placeholder.
func printItem(it model.Item) {
	b := it.Common()
	fmt.Fprintf(Out, "id:        %s\n", b.ID)
	fmt.Fprintf(Out, "type:      %s\n", it.Type())
	fmt.Fprintf(Out, "name:      %s\n", b.Name)
	if b.FolderID != nil {
		fmt.Fprintf(Out, "folder:    %s\n", *b.FolderID)
	}
	if b.OrgID != nil {
		fmt.Fprintf(Out, "org:       %s\n", *b.OrgID)
	}
	if len(b.CollectionIDs) > 0 {
		ids := make([]string, len(b.CollectionIDs))
		for i, id := range b.CollectionIDs {
			ids[i] = string(id)
		}
		fmt.Fprintf(Out, "collections: %s\n", strings.Join(ids, ", "))
	}
	fmt.Fprintf(Out, "favorite:  %t\n", b.Favorite)
	fmt.Fprintf(Out, "notes:     %s\n", orDash(b.Notes))
	fmt.Fprintf(Out, "created:   %s\n", stamp(b.Meta.CreatedAt))
	fmt.Fprintf(Out, "revised:   %s\n", stamp(b.Meta.RevisedAt))
	if b.Meta.DeletedAt != nil {
		fmt.Fprintf(Out, "deleted:   %s\n", stamp(*b.Meta.DeletedAt))
	}

	switch v := it.(type) {
	case *model.LoginItem:
		fmt.Fprintf(Out, "username:  %s\n", orDash(v.Login.Username))
		if v.Login.Password != nil {
			fmt.Fprintf(Out, "password:  %s\n", *v.Login.Password)
		}
		if v.Login.Totp != nil {
			fmt.Fprintln(Out, "totp:      set")
		}
		for _, u := range v.Login.URIs {
			fmt.Fprintf(Out, "uri:       %s\n", u.URI)
		}
		if n := len(v.Meta.PasswordHistory); n > 0 {
			fmt.Fprintf(Out, "history:   %d previous passwords\n", n)
		}
	case *model.CardItem, *model.IdentityItem:
		fmt.Fprintf(Out, "%s details are not shown\n", it.Type())
	}

	for _, f := range b.Fields {
		printField(f)
	}
}

func printField(f model.Field) {
	switch v := f.(type) {
	case model.TextField:
		fmt.Fprintf(Out, "field %s: %s\n", orDash(v.Name), orDash(v.Value))
	case model.HiddenField:
		val := "-"
		if v.Value != nil {
			val = v.Value.String()
		}
		fmt.Fprintf(Out, "field %s: %s\n", orDash(v.Name), val)
	case model.BoolField:
		fmt.Fprintf(Out, "field %s: %t\n", orDash(v.Name), v.Value)
	case model.LinkField:
		fmt.Fprintf(Out, "field %s: -> %s\n", orDash(v.Name), v.LinkedID)
	}
}
