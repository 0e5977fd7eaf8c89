package main

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// terminal puts stdin into raw mode and forwards key bytes on a channel.
type terminal struct {
	fd       int
	oldState *term.State
	keys     chan byte
	stopOnce sync.Once
	stop     chan struct{}
}

func openTerminal() (*terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	t := &terminal{
		fd:       fd,
		oldState: oldState,
		keys:     make(chan byte, 32),
		stop:     make(chan struct{}),
	}
	// Hide the cursor and clear the screen.
	fmt.Print("\x1b[?25l\x1b[2J")
	go t.read()
	return t, nil
}

func (t *terminal) read() {
	buf := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.keys <- b:
			case <-t.stop:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// size returns the terminal size in cells, falling back to 80x24.
func (t *terminal) size() (cols, rows int) {
	cols, rows, err := term.GetSize(t.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}

// restore leaves raw mode and shows the cursor again.
func (t *terminal) restore() {
	t.stopOnce.Do(func() {
		close(t.stop)
		fmt.Print("\x1b[0m\x1b[?25h\r\n")
		if t.oldState != nil {
			_ = term.Restore(t.fd, t.oldState)
		}
	})
}
