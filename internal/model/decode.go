package model

import "encoding/json"

func decodeAs[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, AsDecodeError(err)
	}
	return v, nil
}

// DecodeFolder decodes a folder object.
func DecodeFolder(data []byte) (Folder, error) { return decodeAs[Folder](data) }

// DecodeOrganization decodes an organization object.
func DecodeOrganization(data []byte) (Organization, error) { return decodeAs[Organization](data) }

// DecodeCollection decodes a collection or org-collection object.
func DecodeCollection(data []byte) (Collection, error) { return decodeAs[Collection](data) }

// DecodeServerStatus decodes the template body of /status.
func DecodeServerStatus(data []byte) (ServerStatus, error) { return decodeAs[ServerStatus](data) }

// DecodeUnlockData decodes the payload of a successful unlock.
func DecodeUnlockData(data []byte) (UnlockData, error) { return decodeAs[UnlockData](data) }
