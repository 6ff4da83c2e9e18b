// Package logging 提供日志处理与前端日志推送
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// LogEntry 推送给前端的单条日志
type LogEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// BroadcastHandler 包装底层 slog.Handler：
// 维护最近日志的环形缓冲（供前端日志面板查询历史），
// 同时把每条日志交给 EventEmitter 推送到前端。
type BroadcastHandler struct {
	inner   slog.Handler
	Emitter *EventEmitter

	mu      sync.Mutex
	recent  []LogEntry
	maxKeep int
	next    int
	filled  bool
}

// NewBroadcastHandler 创建广播处理器，maxKeep 为环形缓冲容量。
func NewBroadcastHandler(inner slog.Handler, maxKeep int) *BroadcastHandler {
	if maxKeep <= 0 {
		maxKeep = 1000
	}
	return &BroadcastHandler{
		inner:   inner,
		Emitter: NewEventEmitter(),
		recent:  make([]LogEntry, maxKeep),
		maxKeep: maxKeep,
	}
}

// Enabled 委托给底层处理器
func (h *BroadcastHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle 记录到环形缓冲、推送到前端，再交给底层处理器输出
func (h *BroadcastHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := LogEntry{
		Time:    r.Time.Format("2006-01-02 15:04:05.000"),
		Level:   r.Level.String(),
		Message: formatMessage(r),
	}

	h.mu.Lock()
	h.recent[h.next] = entry
	h.next++
	if h.next >= h.maxKeep {
		h.next = 0
		h.filled = true
	}
	h.mu.Unlock()

	h.Emitter.Emit(entry)

	return h.inner.Handle(ctx, r)
}

// WithAttrs 简化实现：广播不区分 attr 分组
func (h *BroadcastHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// WithGroup 简化实现
func (h *BroadcastHandler) WithGroup(name string) slog.Handler {
	return h
}

// GetRecent 返回最近的 limit 条日志（从旧到新）
func (h *BroadcastHandler) GetRecent(limit int) []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ordered []LogEntry
	if h.filled {
		ordered = append(ordered, h.recent[h.next:]...)
		ordered = append(ordered, h.recent[:h.next]...)
	} else {
		ordered = append(ordered, h.recent[:h.next]...)
	}

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}
	return ordered
}

func formatMessage(r slog.Record) string {
	var b strings.Builder
	b.WriteString(r.Message)
	r.Attrs(func(attr slog.Attr) bool {
		b.WriteString(fmt.Sprintf(" %s=%v", attr.Key, attr.Value.Any()))
		return true
	})
	return b.String()
}
