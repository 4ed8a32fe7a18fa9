package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexUint decodes a JSON number or numeric string. Anything else is zero,
// which the service then rejects as missing.
type flexUint uint

func (f *flexUint) UnmarshalJSON(b []byte) error {
	raw := string(bytes.TrimSpace(b))
	if raw == "null" {
		*f = 0
		return nil
	}
	var s string
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexUint(v)
	return nil
}
