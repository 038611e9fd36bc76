package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// Console presents acknowledgment prompts and timed pauses to an
// interactive operator.
//
// When stdin is not a terminal the acknowledgment prompt returns
// immediately, so scripted callers never hang on a keypress that will
// never come.
type Console struct {
	in  io.Reader
	out io.Writer

	// sleep is swapped out in tests so pauses never sleep for real.
	sleep func(time.Duration)

	interactive bool
}

// NewConsole returns a Console bound to the process's stdin and stdout.
func NewConsole() *Console {
	return &Console{
		in:          os.Stdin,
		out:         os.Stdout,
		sleep:       time.Sleep,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// WaitForAck prints the prompt and blocks until the operator presses Enter.
// Non-interactive sessions return immediately.
func (c *Console) WaitForAck(prompt string) {
	if !c.interactive {
		return
	}
	fmt.Fprintf(c.out, "\n%s", prompt)
	_, _ = bufio.NewReader(c.in).ReadString('\n')
}

// Pause blocks for d, counting down in one-second steps so the operator
// can see the window is about to close.
func (c *Console) Pause(d time.Duration) {
	seconds := int(d / time.Second)
	if seconds <= 0 {
		c.sleep(d)
		return
	}
	for i := seconds; i > 0; i-- {
		fmt.Fprintf(c.out, "Closing in %d...\r", i)
		c.sleep(time.Second)
	}
	fmt.Fprintln(c.out)
}
