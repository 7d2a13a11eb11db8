package model

import (
	"encoding/json"
	"strconv"
)

// NewItem is a creation payload: *NewLoginItem or *NewSecureNoteItem.
type NewItem interface {
	Type() ItemType
	Common() *NewItemBase
	isNewItem()
}

// NewItemBase is ItemBase without id and read-only metadata.
type NewItemBase struct {
	OrgID         *OrganizationID `json:"organizationId"`
	CollectionIDs []CollectionID  `json:"collectionIds"`
	FolderID      *FolderID       `json:"folderId"`
	Name          string          `json:"name"`
	Notes         *string         `json:"notes"`
	Favorite      bool            `json:"favorite"`
	Reprompt      int             `json:"reprompt"`
	Fields        Fields          `json:"fields,omitempty"`
}

func (b *NewItemBase) Common() *NewItemBase { return b }

// wire returns a copy safe to encode: collectionIds is always a list.
func (b NewItemBase) wire() NewItemBase {
	if b.CollectionIDs == nil {
		b.CollectionIDs = []CollectionID{}
	}
	return b
}

type NewLoginItem struct {
	NewItemBase
	Login LoginData
}

type NewSecureNoteItem struct {
	NewItemBase
	SecureNote SecureNoteData
}

func (NewLoginItem) Type() ItemType      { return ItemTypeLogin }
func (NewSecureNoteItem) Type() ItemType { return ItemTypeSecureNote }

func (NewLoginItem) isNewItem()      {}
func (NewSecureNoteItem) isNewItem() {}

func (i NewLoginItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NewItemBase
		Type  ItemType  `json:"type"`
		Login LoginData `json:"login"`
	}{i.NewItemBase.wire(), ItemTypeLogin, i.Login})
}

func (i NewSecureNoteItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NewItemBase
		Type       ItemType       `json:"type"`
		SecureNote SecureNoteData `json:"secureNote"`
	}{i.NewItemBase.wire(), ItemTypeSecureNote, i.SecureNote})
}

// DecodeNewItem decodes a creation payload. Only login and secure note
// items can be created; a missing login sub-object means an empty login.
func DecodeNewItem(data []byte) (NewItem, error) {
	tag, err := decodeTag(data, "type")
	if err != nil {
		return nil, err
	}
	t := ItemType(tag)
	if t != ItemTypeLogin && t != ItemTypeSecureNote {
		return nil, unexpected("type", []byte(strconv.Itoa(tag)))
	}

	var w struct {
		NewItemBase
		subObjects
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, AsDecodeError(err)
	}
	if err := w.only(t); err != nil {
		return nil, err
	}

	if t == ItemTypeLogin {
		it := &NewLoginItem{NewItemBase: w.NewItemBase}
		if present(w.Login) {
			if err := json.Unmarshal(w.Login, &it.Login); err != nil {
				return nil, WithPath("login", err)
			}
		}
		return it, nil
	}
	if !present(w.SecureNote) {
		return nil, missing("secureNote")
	}
	it := &NewSecureNoteItem{NewItemBase: w.NewItemBase}
	if err := json.Unmarshal(w.SecureNote, &it.SecureNote); err != nil {
		return nil, WithPath("secureNote", err)
	}
	return it, nil
}
