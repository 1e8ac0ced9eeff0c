package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString принимает из JSON как строку, так и число ("1" и 1 дают "1")
type FlexString string

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// String возвращает значение без пробелов по краям
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexInt принимает из JSON целое число или строку с целым числом ("2" и 2 дают 2)
type FlexInt int

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expected integer, got %s", string(data))
	}
	*f = FlexInt(n)
	return nil
}
