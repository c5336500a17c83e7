package ngstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNotObject = errors.New("ng-state is not a JSON object")

func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case json.Number:
			return v.String()
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case bool:
			return fmt.Sprintf("%t", v)
		}
	}
	return ""
}

func mapValue(value any, key string) any {
	if value == nil {
		return nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
