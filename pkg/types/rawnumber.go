package types

import "encoding/json"

// RawNumber keeps the verbatim text of a JSON value that is expected to be
// numeric but may not be. Editing surfaces hand back whatever the user typed;
// coercion happens later and failures default rather than error.
type RawNumber string

func (n *RawNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = RawNumber(s)
		return nil
	}
	*n = RawNumber(data)
	return nil
}

func (n RawNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

func (n RawNumber) String() string {
	return string(n)
}
