package api

import (
	"bytes"
	"encoding/json"
)

// decodeList normalizes the two list shapes the API serves: a bare JSON
// array, or a paged wrapper holding the array under "results". Anything
// else decodes to an empty list; list consumers must never fail on an
// unexpected envelope.
func decodeList[T any](data []byte) []T {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		return items
	}

	var paged struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &paged); err != nil {
		return nil
	}
	return paged.Results
}
