package api

import (
	"fmt"
	"net/url"

	"BwClient/internal/model"
)

// ItemQuery filters ListItems/FindItem. Zero-valued filters are not sent.
type ItemQuery struct {
	Search         string
	OrganizationID model.OrganizationID
	CollectionID   model.CollectionID
	FolderID       model.FolderID
	URL            string
	// Trash lists deleted items instead of live ones.
	Trash bool
	// Exact keeps only items named exactly Search. The daemon's own search
	// is a substring match.
	Exact bool
}

func (q ItemQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "organizationId", string(q.OrganizationID))
	setIf(v, "collectionId", string(q.CollectionID))
	setIf(v, "folderid", string(q.FolderID))
	setIf(v, "url", q.URL)
	// the daemon only knows trash=true; false must be left out
	if q.Trash {
		v.Set("trash", "true")
	}
	setIf(v, "search", q.Search)
	return v
}

// FolderQuery filters ListFolders/FindFolder.
type FolderQuery struct {
	Search string
	Exact  bool
}

func (q FolderQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "search", q.Search)
	return v
}

// OrganizationQuery filters ListOrganizations/FindOrganization.
type OrganizationQuery struct {
	Search string
	Exact  bool
}

func (q OrganizationQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "search", q.Search)
	return v
}

// CollectionQuery filters ListCollections/FindCollection. Setting
// OrganizationID switches to the organization-scoped endpoint.
type CollectionQuery struct {
	Search         string
	OrganizationID model.OrganizationID
	Exact          bool
}

func (q CollectionQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "organizationId", string(q.OrganizationID))
	setIf(v, "search", q.Search)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// exactNames keeps the entries named exactly search. With no search term
// nothing can match.
func exactNames[T any](list []T, search string, name func(T) string) []T {
	out := make([]T, 0, len(list))
	if search == "" {
		return out
	}
	for _, v := range list {
		if name(v) == search {
			out = append(out, v)
		}
	}
	return out
}

// exactlyOne is the cardinality check behind every Find* call.
func exactlyOne[T any](op string, found []T) (T, error) {
	var zero T
	switch len(found) {
	case 0:
		return zero, &Error{Kind: ErrNotFound, Op: op, Message: "no match"}
	case 1:
		return found[0], nil
	default:
		return zero, &Error{Kind: ErrAmbiguous, Op: op, Message: fmt.Sprintf("%d matches", len(found))}
	}
}
