// Package e2e drives the built binary inside a pseudo terminal.
package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Config describes the process to start
type Config struct {
	Command string
	Args    []string
	Env     []string
	Rows    uint16
	Cols    uint16
	Timeout time.Duration
}

// Session is a running process attached to a PTY
type Session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	output bytes.Buffer
}

// Start launches the command in a PTY of the configured size
func Start(config Config) (*Session, error) {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Rows == 0 {
		config.Rows = 24
	}
	if config.Cols == 0 {
		config.Cols = 80
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: config.Rows, Cols: config.Cols})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	s := &Session{cmd: cmd, ptmx: ptmx, cancel: cancel, done: make(chan struct{})}
	go s.capture()
	return s, nil
}

func (s *Session) capture() {
	defer close(s.done)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw input to the terminal
func (s *Session) Send(input string) error {
	_, err := s.ptmx.Write([]byte(input))
	return err
}

// Output returns everything written so far
func (s *Session) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.output.String()
}

// CleanOutput returns the output with escape sequences removed
func (s *Session) CleanOutput() string {
	return StripANSI(s.Output())
}

// WaitFor polls until text shows up in the clean output
func (s *Session) WaitFor(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.CleanOutput(), text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for text: %s", text)
}

// Wait blocks until the process exits
func (s *Session) Wait() error {
	err := s.cmd.Wait()
	s.cancel()
	_ = s.ptmx.Close()
	<-s.done
	return err
}

// Stop sends 'q' and waits, killing the process if it does not exit
func (s *Session) Stop() error {
	_ = s.Send("q")
	exited := make(chan error, 1)
	go func() { exited <- s.Wait() }()

	select {
	case err := <-exited:
		return err
	case <-time.After(2 * time.Second):
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		return <-exited
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]|\x1b[()][A-Za-z0-9]|\x07`)

// StripANSI removes CSI sequences and the bell from s
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
