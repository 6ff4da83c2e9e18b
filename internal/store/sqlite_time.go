package store

import (
	"strings"
	"time"
)

// sqliteTimeLayout Go 侧写入数据库使用的时间格式（显式带时区偏移）。
const sqliteTimeLayout = "2006-01-02 15:04:05.000-07:00"

func formatSQLiteDateTime(t time.Time) string {
	return t.Format(sqliteTimeLayout)
}

// parseSQLiteDateTime 解析 SQLite 存储的时间字符串。
// 同一列里可能混有 datetime('now') 的无时区写法和 Go 侧写入的带偏移写法，
// 逐个布局尝试，全部失败返回零值。
func parseSQLiteDateTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		"2006-01-02 15:04:05.999999-07:00",
		"2006-01-02 15:04:05.999-07:00",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05.999",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	// 兜底：空格分隔但带时区的写法换成 'T' 后按 RFC3339 解析
	if t, err := time.Parse(time.RFC3339Nano, strings.Replace(value, " ", "T", 1)); err == nil {
		return t
	}

	return time.Time{}
}
