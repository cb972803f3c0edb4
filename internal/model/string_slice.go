package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringSlice stores genre/tag/cast lists as a single comma separated
// column so the models work the same on sqlite and postgres.

type StringSlice []string

// Value implements driver.Valuer. Commas are the separator so no
// element may contain one.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("unsafe list element, %q", v)
		}
	}

	return strings.Join(s, ","), nil
}

// Scan implements sql.Scanner.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("can't scan %T into StringSlice", value)
		}

		str = string(b)
	}

	if str == "" {
		*s = StringSlice{}
		return nil
	}

	*s = strings.Split(str, ",")
	return nil
}
