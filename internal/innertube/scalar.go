package innertube

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Int is an integer field the platform sends either as a JSON number or as
// a numeric string. Any other value decodes as 0.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	*i = 0
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*i = Int(t)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			*i = Int(n)
		}
	}
	return nil
}

// Number is a numeric field kept in its textual form. It accepts a JSON
// string or number; any other value decodes as empty.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*n = Number(b)
	}
	return nil
}

func (n Number) String() string {
	return strings.TrimSpace(string(n))
}
