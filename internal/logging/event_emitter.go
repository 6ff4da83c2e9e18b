package logging

import (
	"context"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// EventLogBatch 推送到前端的日志批次事件名。
const EventLogBatch = "log:batch"

const (
	emitterBatchSize     = 10
	emitterFlushInterval = 100 * time.Millisecond
	emitterQueueCap      = 2000
)

// EventEmitter 通过 Wails Runtime Events 将日志批量推送到前端。
// 有界队列，满了丢弃，避免前端消费慢时拖住日志主路径。
type EventEmitter struct {
	mu sync.Mutex

	ctx     context.Context
	enabled bool

	queue    chan LogEntry
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewEventEmitter 创建事件发射器
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{}
}

// Start 启动事件发射器（前端就绪后调用）
func (e *EventEmitter) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.enabled {
		return
	}

	e.ctx = ctx
	e.enabled = true
	e.queue = make(chan LogEntry, emitterQueueCap)
	e.stopChan = make(chan struct{})
	e.doneChan = make(chan struct{})

	// EventsEmit 在锁外调用
	go e.batchSendLoop(e.ctx, e.queue, e.stopChan, e.doneChan)
}

// Stop 停止事件发射器并等待发送循环退出
func (e *EventEmitter) Stop() {
	e.mu.Lock()
	if !e.enabled {
		e.mu.Unlock()
		return
	}
	e.enabled = false
	stopChan := e.stopChan
	doneChan := e.doneChan
	e.stopChan = nil
	e.doneChan = nil
	e.queue = nil
	e.mu.Unlock()

	close(stopChan)
	<-doneChan
}

// IsEnabled 返回是否已启动
func (e *EventEmitter) IsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Emit 投递一条日志。不阻塞调用方：队列满时丢弃，
// WARN/ERROR 会挤掉一条旧日志尽量保留。
func (e *EventEmitter) Emit(entry LogEntry) {
	e.mu.Lock()
	if !e.enabled || e.queue == nil {
		e.mu.Unlock()
		return
	}
	queue := e.queue
	e.mu.Unlock()

	select {
	case queue <- entry:
		return
	default:
	}

	if entry.Level != "WARN" && entry.Level != "ERROR" {
		return
	}
	select {
	case <-queue:
	default:
	}
	select {
	case queue <- entry:
	default:
	}
}

func (e *EventEmitter) batchSendLoop(ctx context.Context, queue <-chan LogEntry, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(emitterFlushInterval)
	defer ticker.Stop()

	buffer := make([]LogEntry, 0, emitterBatchSize)
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		if ctx != nil {
			runtime.EventsEmit(ctx, EventLogBatch, buffer)
		}
		buffer = buffer[:0]
	}

	for {
		select {
		case <-stop:
			// 把剩余消息刷掉（不阻塞）
			for {
				select {
				case entry := <-queue:
					buffer = append(buffer, entry)
					if len(buffer) >= emitterBatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case entry := <-queue:
			buffer = append(buffer, entry)
			if len(buffer) >= emitterBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
