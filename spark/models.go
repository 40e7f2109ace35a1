// Package spark normalizes Spark (full MLS) listing payloads into the
// canonical property model.
package spark

import "encoding/json"

// envelope is the Spark response wrapper: {"D": {"Success": ..., "Results": [...]}}.
type envelope struct {
	D struct {
		Success bool     `json:"Success"`
		Results []result `json:"Results"`
	} `json:"D"`
}

type result struct {
	ID             stringNumber   `json:"Id"`
	ListingKey     stringNumber   `json:"ListingKey"`
	StandardFields map[string]any `json:"StandardFields"`
}

// stringNumber accepts string or number JSON and stores the textual form.
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}
