package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var null = []byte("null")

// FlexibleInt - целое, которое клиенты присылают то числом, то строкой
type FlexibleInt int64

// UnmarshalJSON поддерживает 12, "12" и null
func (fi *FlexibleInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		return nil
	}
	str := strings.TrimSpace(strings.Trim(string(data), `"`))
	if str == "" {
		*fi = 0
		return nil
	}
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value: %s", str)
	}
	*fi = FlexibleInt(v)
	return nil
}

func (fi FlexibleInt) Int64() int64 {
	return int64(fi)
}

// Accepted session datetime layouts, tried in order.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// DateTime accepts RFC 3339 as well as the HTML datetime-local format.
type DateTime struct {
	time.Time
}

func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime value: %q", s)
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	dt.Time = t
	return nil
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.Time.Format(time.RFC3339))
}

// OptionalString remembers whether the field was present in the payload at all.
// A present null clears the value; an absent field keeps whatever is stored.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, null) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return null, nil
	}
	return json.Marshal(*o.Value)
}

func SomeString(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}
