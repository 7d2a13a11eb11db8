package model

import "encoding/json"

// Object tags the daemon puts on non-item objects.
const (
	FolderObject        = "folder"
	OrganizationObject  = "organization"
	CollectionObject    = "collection"
	OrgCollectionObject = "org-collection"
)

// Folder is a personal folder.
type Folder struct {
	ID   FolderID `json:"id"`
	Name string   `json:"name"`
}

// NewFolder is the creation payload for a folder.
type NewFolder struct {
	Name string `json:"name"`
}

func (f Folder) MarshalJSON() ([]byte, error) {
	type plain Folder
	return json.Marshal(struct {
		Object string `json:"object"`
		plain
	}{FolderObject, plain(f)})
}

func (f *Folder) UnmarshalJSON(data []byte) error {
	if _, err := decodeObjectTag(data, FolderObject); err != nil {
		return err
	}
	type plain Folder
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return AsDecodeError(err)
	}
	*f = Folder(p)
	return nil
}

// Organization is read-only from the client side.
type Organization struct {
	ID      OrganizationID `json:"id"`
	Name    string         `json:"name"`
	Status  int            `json:"status"`
	Type    int            `json:"type"`
	Enabled bool           `json:"enabled"`
}

func (o Organization) MarshalJSON() ([]byte, error) {
	type plain Organization
	return json.Marshal(struct {
		Object string `json:"object"`
		plain
	}{OrganizationObject, plain(o)})
}

func (o *Organization) UnmarshalJSON(data []byte) error {
	if _, err := decodeObjectTag(data, OrganizationObject); err != nil {
		return err
	}
	type plain Organization
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return AsDecodeError(err)
	}
	*o = Organization(p)
	return nil
}

// GroupLink grants a group access to a collection.
type GroupLink struct {
	ID            GroupID `json:"id"`
	ReadOnly      bool    `json:"readOnly"`
	HidePasswords bool    `json:"hidePasswords"`
}

// Collection belongs to exactly one organization. Object is either
// "collection" or "org-collection", depending on the endpoint it came from.
type Collection struct {
	Object string         `json:"object"`
	ID     CollectionID   `json:"id"`
	OrgID  OrganizationID `json:"organizationId"`
	Name   string         `json:"name"`
	ExtID  *string        `json:"externalId"`
	Groups []GroupLink    `json:"groups,omitempty"`
}

func (c Collection) MarshalJSON() ([]byte, error) {
	type plain Collection
	p := plain(c)
	if p.Object == "" {
		p.Object = CollectionObject
	}
	return json.Marshal(p)
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	if _, err := decodeObjectTag(data, CollectionObject, OrgCollectionObject); err != nil {
		return err
	}
	type plain Collection
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return AsDecodeError(err)
	}
	*c = Collection(p)
	return nil
}

// NewCollection is the creation payload for a collection.
type NewCollection struct {
	OrgID  OrganizationID `json:"organizationId"`
	Name   string         `json:"name"`
	ExtID  *string        `json:"externalId"`
	Groups []GroupLink    `json:"groups,omitempty"`
}
