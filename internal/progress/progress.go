// Package progress 为批量分析提供进度条。
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter 是扫描层依赖的最小进度接口。
type Reporter interface {
	Tick()
	Finish()
}

// Tracker 包装 progressbar，可并发调用 Tick。
type Tracker struct {
	bar *progressbar.ProgressBar
}

// NewTracker 创建写到 writer 的进度条。
func NewTracker(writer io.Writer, label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar}
}

// Tick 前进一格。
func (t *Tracker) Tick() {
	_ = t.bar.Add(1)
}

// Finish 结束并清除进度条。
func (t *Tracker) Finish() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}

// Nop 什么也不做。
type Nop struct{}

func (Nop) Tick()   {}
func (Nop) Finish() {}

// ForTerminal 在 stderr 是终端且未静默时返回 Tracker，否则返回 Nop。
func ForTerminal(label string, total int, quiet bool) Reporter {
	if quiet || total <= 1 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return Nop{}
	}
	return NewTracker(os.Stderr, label, total)
}
