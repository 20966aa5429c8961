package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Product represents an inventory item as returned by the search and filter endpoints
type Product struct {
	Name     string `json:"nama"`
	Price    Amount `json:"harga"`
	Quantity Amount `json:"jumlah"`
}

// ProductList is the response envelope of the inventory API
type ProductList struct {
	Products []Product `json:"barangModel"`
}

// UnmarshalJSON decodes the envelope, normalising a missing or null list to an empty one
func (l *ProductList) UnmarshalJSON(data []byte) error {
	type envelope ProductList
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Products == nil {
		env.Products = []Product{}
	}
	*l = ProductList(env)
	return nil
}

// Amount is a display value the API sends either as a JSON number or as a string.
// The original text is kept so prices render exactly as provided.
// Any other JSON kind (bool, object, array) is a decode error, which fails
// the whole ProductList and surfaces as an error on the page.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("amount must be a number or string: %w", err)
		}
		*a = Amount(n.String())
	}
	return nil
}

// MarshalJSON emits numeric amounts as numbers and anything else as a string
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}
	if isNumeric(string(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func (a Amount) String() string {
	return string(a)
}

func isNumeric(s string) bool {
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
