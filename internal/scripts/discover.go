// Package scripts 负责脚本目录的枚举、执行与变更监听。
package scripts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ScriptInfo 脚本目录中的一个条目
type ScriptInfo struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Executable bool      `json:"executable"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Discover 枚举脚本目录中的普通文件（按名称排序）。
// 目录不存在按空列表处理：首次启动时 ~/scripts 往往还没创建。
func Discover(dir string) ([]ScriptInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ScriptInfo{}, nil
		}
		return nil, fmt.Errorf("读取脚本目录失败: %w", err)
	}

	list := make([]ScriptInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// 枚举和 stat 之间文件可能被删除
			continue
		}

		list = append(list, ScriptInfo{
			Name:       name,
			Path:       filepath.Join(dir, name),
			Size:       info.Size(),
			Executable: info.Mode()&0111 != 0,
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return list, nil
}
