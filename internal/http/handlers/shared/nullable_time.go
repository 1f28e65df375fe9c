package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/newsportal/internal/service"
)

var nullableTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NullableTime 区分 "未传" 与 "显式传 null" 的时间字段
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON 解析 RFC3339 或 MySQL DATETIME 文本，null 表示清空
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		n.Value = nil
		return nil
	}
	for _, layout := range nullableTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			n.Value = &utc
			return nil
		}
	}
	return fmt.Errorf("unsupported time format %q", raw)
}

// ToPatch 转换为 service 层的可清空时间
func (n NullableTime) ToPatch() service.TimePatch {
	return service.TimePatch{Set: n.Set, Value: n.Value}
}
