package style

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner 是一个简单的终端旋转指示器，只在 out 为终端时输出
type Spinner struct {
	out      io.Writer
	msg      string
	enabled  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once
	interval time.Duration
}

// NewSpinner 创建 Spinner；out 一般为 os.Stderr，避免污染报告输出
func NewSpinner(out io.Writer, msg string) *Spinner {
	return &Spinner{
		out:      out,
		msg:      msg,
		enabled:  IsTerminal(out),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: 120 * time.Millisecond,
	}
}

// Start 启动 spinner，直到 Stop 被调用
func (s *Spinner) Start() {
	if !s.enabled {
		close(s.doneCh)
		return
	}
	go func() {
		defer close(s.doneCh)
		frames := []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}
		i := 0
		_, _ = fmt.Fprintf(s.out, "%s %c\r", s.msg, frames[i])
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				// 清除整行，不留痕迹
				_, _ = fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				i = (i + 1) % len(frames)
				_, _ = fmt.Fprintf(s.out, "%s %c\r", s.msg, frames[i])
			}
		}
	}()
}

// Stop 停止 spinner，可重复调用
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	<-s.doneCh
}
