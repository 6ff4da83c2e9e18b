// Package utils 提供应用目录等通用辅助函数
package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = ".scripts-runner"

// GetAppDataDir 返回应用数据根目录（~/.scripts-runner）。
// 主目录不可确定时退化为工作目录下的相对路径。
func GetAppDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(home, appDirName)
}

// GetDataDir 返回数据库目录
func GetDataDir() string {
	return filepath.Join(GetAppDataDir(), "data")
}

// GetLogDir 返回日志目录
func GetLogDir() string {
	return filepath.Join(GetAppDataDir(), "logs")
}

// EnsureAppDirs 创建应用目录（幂等）
func EnsureAppDirs() error {
	for _, dir := range []string{GetAppDataDir(), GetDataDir(), GetLogDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建应用目录失败 %s: %w", dir, err)
		}
	}
	return nil
}
