package model

import (
	"encoding/json"
	"strconv"
	"time"

	"BwClient/internal/secret"
)

// ItemType is the "type" discriminator of a vault item.
type ItemType int

const (
	ItemTypeLogin      ItemType = 1
	ItemTypeSecureNote ItemType = 2
	ItemTypeCard       ItemType = 3
	ItemTypeIdentity   ItemType = 4
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeLogin:
		return "login"
	case ItemTypeSecureNote:
		return "secureNote"
	case ItemTypeCard:
		return "card"
	case ItemTypeIdentity:
		return "identity"
	}
	return "ItemType(" + strconv.Itoa(int(t)) + ")"
}

// subKey is the wire key of the variant sub-object.
func (t ItemType) subKey() string {
	return t.String()
}

var itemTypes = []ItemType{ItemTypeLogin, ItemTypeSecureNote, ItemTypeCard, ItemTypeIdentity}

// ItemObject is the "object" tag the daemon puts on items.
const ItemObject = "item"

// Item is one of *LoginItem, *SecureNoteItem, *CardItem or *IdentityItem.
type Item interface {
	Type() ItemType
	Common() *ItemBase
	isItem()
}

// ItemBase holds the fields every item kind shares.
type ItemBase struct {
	ID            ItemID          `json:"id"`
	OrgID         *OrganizationID `json:"organizationId"`
	CollectionIDs []CollectionID  `json:"collectionIds"`
	FolderID      *FolderID       `json:"folderId"`
	Name          string          `json:"name"`
	Notes         *string         `json:"notes"`
	Favorite      bool            `json:"favorite"`
	Reprompt      int             `json:"reprompt"`
	Fields        Fields          `json:"fields,omitempty"`

	// Meta is read from the daemon and never sent back.
	Meta ItemMeta `json:"-"`
}

// ItemMeta is the read-only part of an item.
type ItemMeta struct {
	PasswordHistory []PasswordHistory `json:"passwordHistory"`
	RevisedAt       time.Time         `json:"revisionDate"`
	CreatedAt       time.Time         `json:"creationDate"`
	DeletedAt       *time.Time        `json:"deletedDate"`
}

// Common gives access to the shared fields of any item variant.
func (b *ItemBase) Common() *ItemBase { return b }

// PasswordHistory is a previous password of a login item.
type PasswordHistory struct {
	LastUsedDate time.Time     `json:"lastUsedDate"`
	Password     *secret.Value `json:"password"`
}

func (p PasswordHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LastUsedDate time.Time `json:"lastUsedDate"`
		Password     *string   `json:"password"`
	}{p.LastUsedDate, secret.RevealPtr(p.Password)})
}

// LoginURI is one URI attached to a login.
type LoginURI struct {
	Match *int
	URI   string
	// Extra holds the keys this client does not model, e.g. "uriChecksum".
	// They are sent back untouched.
	Extra map[string]json.RawMessage
}

func (u *LoginURI) UnmarshalJSON(data []byte) error {
	var known struct {
		Match *int   `json:"match"`
		URI   string `json:"uri"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "match")
	delete(all, "uri")
	*u = LoginURI{Match: known.Match, URI: known.URI}
	if len(all) > 0 {
		u.Extra = all
	}
	return nil
}

func (u LoginURI) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(u.Extra)+2)
	for k, v := range u.Extra {
		out[k] = v
	}
	match, err := json.Marshal(u.Match)
	if err != nil {
		return nil, err
	}
	uri, err := json.Marshal(u.URI)
	if err != nil {
		return nil, err
	}
	// modelled keys win over a stale copy in Extra
	out["match"] = match
	out["uri"] = uri
	return json.Marshal(out)
}

// LoginData is the "login" sub-object.
type LoginData struct {
	URIs     []LoginURI    `json:"uris"`
	Username *string       `json:"username"`
	Password *secret.Value `json:"password"`
	Totp     *string       `json:"totp"`
}

func (l LoginData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URIs     []LoginURI `json:"uris"`
		Username *string    `json:"username"`
		Password *string    `json:"password"`
		Totp     *string    `json:"totp"`
	}{l.URIs, l.Username, secret.RevealPtr(l.Password), l.Totp})
}

// SecureNoteData is the "secureNote" sub-object.
type SecureNoteData struct {
	Type int `json:"type"`
}

type LoginItem struct {
	ItemBase
	Login LoginData
}

type SecureNoteItem struct {
	ItemBase
	SecureNote SecureNoteData
}

// CardItem keeps the card sub-object as the daemon sent it.
type CardItem struct {
	ItemBase
	Card json.RawMessage
}

// IdentityItem keeps the identity sub-object as the daemon sent it.
type IdentityItem struct {
	ItemBase
	Identity json.RawMessage
}

func (LoginItem) Type() ItemType      { return ItemTypeLogin }
func (SecureNoteItem) Type() ItemType { return ItemTypeSecureNote }
func (CardItem) Type() ItemType       { return ItemTypeCard }
func (IdentityItem) Type() ItemType   { return ItemTypeIdentity }

func (LoginItem) isItem()      {}
func (SecureNoteItem) isItem() {}
func (CardItem) isItem()       {}
func (IdentityItem) isItem()   {}

func (i LoginItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Object string `json:"object"`
		ItemBase
		Type  ItemType  `json:"type"`
		Login LoginData `json:"login"`
	}{ItemObject, i.ItemBase, ItemTypeLogin, i.Login})
}

func (i SecureNoteItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Object string `json:"object"`
		ItemBase
		Type       ItemType       `json:"type"`
		SecureNote SecureNoteData `json:"secureNote"`
	}{ItemObject, i.ItemBase, ItemTypeSecureNote, i.SecureNote})
}

func (i CardItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Object string `json:"object"`
		ItemBase
		Type ItemType        `json:"type"`
		Card json.RawMessage `json:"card"`
	}{ItemObject, i.ItemBase, ItemTypeCard, rawOrNull(i.Card)})
}

func (i IdentityItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Object string `json:"object"`
		ItemBase
		Type     ItemType        `json:"type"`
		Identity json.RawMessage `json:"identity"`
	}{ItemObject, i.ItemBase, ItemTypeIdentity, rawOrNull(i.Identity)})
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

// subObjects holds the raw variant sub-objects of an item or new item.
type subObjects struct {
	Login      json.RawMessage `json:"login"`
	SecureNote json.RawMessage `json:"secureNote"`
	Card       json.RawMessage `json:"card"`
	Identity   json.RawMessage `json:"identity"`
}

func (s subObjects) get(t ItemType) json.RawMessage {
	switch t {
	case ItemTypeLogin:
		return s.Login
	case ItemTypeSecureNote:
		return s.SecureNote
	case ItemTypeCard:
		return s.Card
	case ItemTypeIdentity:
		return s.Identity
	}
	return nil
}

// only fails when a sub-object of another variant is set.
func (s subObjects) only(t ItemType) error {
	for _, other := range itemTypes {
		if other != t && present(s.get(other)) {
			return &DecodeError{Field: other.subKey(), Err: errNotAllowed}
		}
	}
	return nil
}

// DecodeItem decodes an item, branching on "type". Unknown types fail.
func DecodeItem(data []byte) (Item, error) {
	tag, err := decodeTag(data, "type")
	if err != nil {
		return nil, err
	}
	t := ItemType(tag)
	switch t {
	case ItemTypeLogin, ItemTypeSecureNote, ItemTypeCard, ItemTypeIdentity:
	default:
		return nil, unexpected("type", []byte(strconv.Itoa(tag)))
	}
	if _, err := decodeObjectTag(data, ItemObject); err != nil {
		return nil, err
	}

	var w struct {
		ItemBase
		subObjects
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, AsDecodeError(err)
	}
	if err := json.Unmarshal(data, &w.Meta); err != nil {
		return nil, AsDecodeError(err)
	}
	if err := w.only(t); err != nil {
		return nil, err
	}
	sub := w.get(t)
	if !present(sub) {
		return nil, missing(t.subKey())
	}

	switch t {
	case ItemTypeLogin:
		it := &LoginItem{ItemBase: w.ItemBase}
		if err := json.Unmarshal(sub, &it.Login); err != nil {
			return nil, WithPath("login", err)
		}
		return it, nil
	case ItemTypeSecureNote:
		it := &SecureNoteItem{ItemBase: w.ItemBase}
		if err := json.Unmarshal(sub, &it.SecureNote); err != nil {
			return nil, WithPath("secureNote", err)
		}
		return it, nil
	case ItemTypeCard:
		return &CardItem{ItemBase: w.ItemBase, Card: sub}, nil
	default:
		return &IdentityItem{ItemBase: w.ItemBase, Identity: sub}, nil
	}
}
