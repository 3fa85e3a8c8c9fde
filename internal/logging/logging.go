// Package logging 提供面向终端用户的分级提示输出（stderr）。
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Logger 写出 Info/Warning/Error 三级消息，可并发使用。
type Logger struct {
	mu      sync.Mutex
	writer  io.Writer
	quiet   bool
	colored bool
}

// New 创建 Logger。quiet 时只保留 Warning 与 Error。
// 仅当 writer 是终端且未禁用颜色时才着色。
func New(writer io.Writer, quiet bool, noColor bool) *Logger {
	colored := false
	if file, ok := writer.(*os.File); ok && !noColor && !color.NoColor {
		colored = term.IsTerminal(int(file.Fd()))
	}
	return &Logger{
		writer:  writer,
		quiet:   quiet,
		colored: colored,
	}
}

// Discard 返回丢弃全部输出的 Logger，便于测试与库调用。
func Discard() *Logger {
	return New(io.Discard, true, true)
}

func (l *Logger) write(c *color.Color, prefix string, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := prefix + " " + msg
	if l.colored {
		line = c.Sprint(line)
	}
	_, _ = fmt.Fprintln(l.writer, line)
}

// Info 输出进度类提示。
func (l *Logger) Info(format string, args ...any) {
	if l.quiet {
		return
	}
	l.write(infoColor, "ℹ️ ", fmt.Sprintf(format, args...))
}

// Warning 输出可继续执行的问题，例如批量中缺失的文件。
func (l *Logger) Warning(format string, args ...any) {
	l.write(warningColor, "⚠️ ", fmt.Sprintf(format, args...))
}

// Error 输出错误但不退出，退出码由调用方决定。
func (l *Logger) Error(msg string, err error) {
	l.write(errorColor, "❌", fmt.Sprintf("%s: %v", msg, err))
}
