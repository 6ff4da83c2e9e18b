//go:build !darwin

package main

// hideFromDock 仅 macOS 需要，其它平台为空实现。
func hideFromDock() {}
