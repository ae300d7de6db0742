package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRecipe is a recipe record exactly as received from the API.
// Every field decodes leniently: a field of the wrong JSON type never fails
// the whole record, it decodes to its zero value instead.
type RawRecipe struct {
	ID          FlexID     `json:"id"`
	Title       FlexString `json:"title"`
	Description FlexString `json:"description"`
	Category    FlexString `json:"category"`
	Categories  FlexList   `json:"categories"`
	Duration    FlexString `json:"duration"`
	Difficulty  FlexString `json:"difficulty"`
	Diet        FlexString `json:"diet"`
	Cuisine     FlexString `json:"cuisine"`
	Image       FlexString `json:"image"`
	ImageURL    FlexString `json:"image_url"`
	Tags        FlexList   `json:"tags"`
	Steps       FlexSteps  `json:"steps"`
}

// FlexID is a numeric id that also accepts numeric strings.
// Anything else decodes to 0.
type FlexID int64

func (id *FlexID) UnmarshalJSON(data []byte) error {
	*id = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*id = FlexID(int64(f))
	return nil
}

// FlexString accepts strings and numbers; other JSON values decode to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = FlexString(v)
		}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*s = FlexString(n.String())
		}
	}
	return nil
}

// FlexList is a list of strings that remembers whether the API actually sent
// an array. Non-string elements are dropped, numbers are kept as text.
type FlexList struct {
	Items  []string
	IsList bool
}

func (l *FlexList) UnmarshalJSON(data []byte) error {
	*l = FlexList{}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil || elems == nil {
		return nil
	}
	l.IsList = true
	l.Items = decodeStrings(elems)
	return nil
}

func (l FlexList) MarshalJSON() ([]byte, error) {
	if !l.IsList {
		return []byte("null"), nil
	}
	items := l.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// FlexSteps holds steps sent either as an array or as one delimited string.
type FlexSteps struct {
	List   []string
	Text   string
	IsList bool
	IsText bool
}

func (s *FlexSteps) UnmarshalJSON(data []byte) error {
	*s = FlexSteps{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err == nil {
			s.IsList = true
			s.List = decodeStrings(elems)
		}
	case '"':
		if err := json.Unmarshal(data, &s.Text); err == nil {
			s.IsText = true
		}
	}
	return nil
}

func (s FlexSteps) MarshalJSON() ([]byte, error) {
	switch {
	case s.IsList:
		list := s.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	case s.IsText:
		return json.Marshal(s.Text)
	default:
		return []byte("null"), nil
	}
}

func decodeStrings(elems []json.RawMessage) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		var v FlexString
		e = bytes.TrimSpace(e)
		if len(e) == 0 || (e[0] != '"' && e[0] != '-' && (e[0] < '0' || e[0] > '9')) {
			continue
		}
		_ = v.UnmarshalJSON(e)
		out = append(out, string(v))
	}
	return out
}
