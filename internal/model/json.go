package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt is an integer that accepts either a JSON number or a numeric
// string on the wire ({"age": 25} and {"age": "25"} are both common in
// form-originated payloads). A non-numeric value is not a decode error;
// it is recorded as present-but-invalid so validation can report it.
type FlexInt struct {
	Value   int
	Valid   bool
	Present bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	f.Present = true
	f.Valid = false

	s := string(bytes.TrimSpace(b))
	if s == "null" {
		f.Present = false
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.Value = n
	f.Valid = true
	return nil
}

// FlexIntFromString builds a FlexInt from a raw form value, applying
// the same presence/validity semantics as JSON decoding.
func FlexIntFromString(s string) FlexInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexInt{}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return FlexInt{Present: true}
	}
	return FlexInt{Value: n, Valid: true, Present: true}
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// StringList accepts either a JSON array of strings or a single string,
// normalizing to a list. A lone string becomes a one-element list; null
// or absence becomes an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	s := bytes.TrimSpace(b)
	if string(s) == "null" {
		*l = StringList{}
		return nil
	}
	if len(s) > 0 && s[0] == '[' {
		var items []string
		if err := json.Unmarshal(s, &items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	}
	var one string
	if err := json.Unmarshal(s, &one); err != nil {
		return err
	}
	if one == "" {
		*l = StringList{}
		return nil
	}
	*l = StringList{one}
	return nil
}

// Slice returns the list as a plain non-nil string slice.
func (l StringList) Slice() []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}
