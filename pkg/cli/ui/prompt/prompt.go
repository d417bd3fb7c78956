// Package prompt asks the user for input when stdin is a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"golang.org/x/term"
)

// ErrInvalidCount is returned when the entered agent count is not a non-negative integer.
var ErrInvalidCount = errors.New("agent count must be a non-negative integer")

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	isTTY func() bool
}

// New returns a Prompter. in is treated as interactive only when it is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		isTTY: func() bool { return isTerminal(in) },
	}
}

// NewWithTTY returns a Prompter whose interactivity is decided by isTTY.
func NewWithTTY(in io.Reader, out io.Writer, isTTY func() bool) *Prompter {
	return &Prompter{in: in, out: out, isTTY: isTTY}
}

// Interactive reports whether questions can be asked.
func (p *Prompter) Interactive() bool {
	return p.isTTY != nil && p.isTTY()
}

// AgentCount asks how many agents to provision. An empty answer selects defaultCount.
func (p *Prompter) AgentCount(defaultCount int) (int, error) {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "How many Jenkins agents do you want to provision? [%d]: ",
		Args:    []any{defaultCount},
		Writer:  p.out,
	})

	input, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read agent count: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultCount, nil
	}

	count, err := strconv.Atoi(input)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, input)
	}

	return count, nil
}

func isTerminal(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd())) //nolint:gosec // file descriptors fit in int
}
