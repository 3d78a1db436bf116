package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Interactive reports whether an operator is attached. A non-TTY stdin
// forces unattended mode regardless of configuration.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ConsolePrompter reads single-character and scalar answers from stdin.
type ConsolePrompter struct {
	in *bufio.Scanner
}

func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewScanner(os.Stdin)}
}

func (p *ConsolePrompter) Confirm(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s [%s]: ", question, hint)
	if !p.in.Scan() {
		return def
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	switch answer {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (p *ConsolePrompter) ReadValue(prompt string) (string, bool) {
	fmt.Printf("%s: ", prompt)
	if !p.in.Scan() {
		return "", false
	}
	value := strings.TrimSpace(p.in.Text())
	if value == "" {
		return "", false
	}
	return value, true
}
