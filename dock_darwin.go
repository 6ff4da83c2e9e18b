//go:build darwin

package main

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit
#import <AppKit/AppKit.h>

static void setAccessoryActivationPolicy(void) {
	dispatch_async(dispatch_get_main_queue(), ^{
		[NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
	});
}
*/
import "C"

// hideFromDock 把应用从 Dock 和 Cmd-Tab 切换器中移除（accessory 激活策略）。
// 托盘常驻应用只通过托盘图标交互。
func hideFromDock() {
	C.setAccessoryActivationPolicy()
}
