package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/newsportal/internal/constants"
)

// Date 以 YYYY-MM-DD 表示的日期列（DATE）
// MySQL parseTime 模式下驱动返回 time.Time，SQLite 返回文本，这里统一成字符串。
type Date string

// DateOf 按固定统计时区取日期
func DateOf(t time.Time) Date {
	return Date(t.In(constants.AdDayZone).Format(constants.AdYMDLayout))
}

// ParseDate 校验并解析 YYYY-MM-DD
func ParseDate(raw string) (Date, error) {
	parsed, err := time.Parse(constants.AdYMDLayout, raw)
	if err != nil {
		return "", err
	}
	return Date(parsed.Format(constants.AdYMDLayout)), nil
}

// String 返回日期文本
func (d Date) String() string {
	return string(d)
}

// Value 写入数据库
func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan 从数据库读取
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(constants.AdYMDLayout))
	case []byte:
		*d = Date(truncateDate(string(v)))
	case string:
		*d = Date(truncateDate(v))
	default:
		return fmt.Errorf("unsupported date value type %T", value)
	}
	return nil
}

func truncateDate(raw string) string {
	if len(raw) > len(constants.AdYMDLayout) {
		return raw[:len(constants.AdYMDLayout)]
	}
	return raw
}
