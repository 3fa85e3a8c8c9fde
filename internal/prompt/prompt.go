// Package prompt 在交互终端中询问缺失的输入输出路径。
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// Asker 询问输入与输出路径，cmd 层通过接口注入，测试时可替换。
type Asker interface {
	InputPath() (string, error)
	OutputPath() (string, error)
}

// Interactive 判断 stdin 是否为终端。
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Terminal 基于 promptui 的 Asker 实现。
type Terminal struct{}

// InputPath 询问要分析的源文件路径，并要求文件存在。
func (Terminal) InputPath() (string, error) {
	p := promptui.Prompt{
		Label:    "Enter the path to the input file (e.g. 'example_code.py')",
		Validate: ValidateInputPath,
	}
	answer, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("input prompt cancelled: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// OutputPath 询问报告路径，留空表示输出到控制台。
func (Terminal) OutputPath() (string, error) {
	p := promptui.Prompt{
		Label: "Enter the path for the output file (leave blank to display on console)",
	}
	answer, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("output prompt cancelled: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// ValidateInputPath 要求路径非空且指向一个普通文件。
func ValidateInputPath(input string) error {
	path := strings.TrimSpace(input)
	if path == "" {
		return errors.New("path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("the input file '%s' does not exist", path)
	}
	if info.IsDir() {
		return fmt.Errorf("'%s' is a directory", path)
	}
	return nil
}
