package cli

import (
	"errors"
	"syscall"

	"golang.org/x/term"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/session"
)

// TermPoller reads single keys from a terminal without blocking the tick
// loop: the terminal is switched to raw mode and the fd to non-blocking,
// so Poll returns immediately whether or not a key is pending.
//
// Suspend restores cooked mode for interactive prompts (the settings menu)
// and Resume switches back. Close must be called when the session ends or
// the terminal stays raw.
type TermPoller struct {
	fd    int
	saved *term.State
}

func NewTermPoller(fd int) (*TermPoller, error) {
	if !term.IsTerminal(fd) {
		return nil, errors.New("fd is not a terminal")
	}
	p := &TermPoller{fd: fd}
	if err := p.Resume(); err != nil {
		return nil, err
	}
	return p, nil
}

// Poll returns the pending key mapped to a session input, or InputNone.
func (p *TermPoller) Poll() session.Input {
	var buf [1]byte
	n, err := syscall.Read(p.fd, buf[:])
	if err != nil || n == 0 {
		return session.InputNone
	}
	switch buf[0] {
	case 'q', 'Q', 3, 27: // 3 is ctrl-C, which raw mode no longer delivers as a signal
		return session.InputQuit
	case 's', 'S':
		return session.InputSettings
	}
	return session.InputNone
}

// Suspend restores cooked, blocking mode so ordinary line input works.
func (p *TermPoller) Suspend() {
	_ = syscall.SetNonblock(p.fd, false)
	if p.saved != nil {
		_ = term.Restore(p.fd, p.saved)
		p.saved = nil
	}
}

// Resume switches the terminal back to raw, non-blocking mode.
func (p *TermPoller) Resume() error {
	state, err := term.MakeRaw(p.fd)
	if err != nil {
		return err
	}
	p.saved = state
	return syscall.SetNonblock(p.fd, true)
}

func (p *TermPoller) Close() {
	p.Suspend()
}
