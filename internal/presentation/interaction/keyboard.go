package interaction

import (
	"io"
	"os"

	"golang.org/x/term"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	in       io.Reader
	fd       int
	raw      bool
	oldState *termState
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

const (
	keyCtrlC     = 3
	keyEsc       = 27
	keyCR        = '\r'
	keyLF        = '\n'
	keyBackspace = 127
)

// NewKeyboardReader reads from stdin. Raw mode is enabled only when stdin
// is a terminal.
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := newReader(os.Stdin)
	kr.fd = int(os.Stdin.Fd())

	if term.IsTerminal(kr.fd) {
		if err := kr.enableRawMode(); err != nil {
			return nil, err
		}
		kr.raw = true
	}

	go kr.readInput()

	return kr, nil
}

func newReader(in io.Reader) *KeyboardReader {
	return &KeyboardReader{
		in:    in,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 8)

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := kr.in.Read(buf)
		if err == io.EOF {
			return
		}
		if err != nil || n == 0 {
			continue
		}

		for _, event := range parseInput(buf[:n]) {
			select {
			case kr.input <- event:
			case <-kr.stop:
				return
			}
		}
	}
}

// parseInput splits one read into key events. A read may hold several
// keystrokes when input is pasted or typed quickly.
func parseInput(buf []byte) []KeyEvent {
	var events []KeyEvent
	for len(buf) > 0 {
		ev, n := parseOne(buf)
		if ev != nil {
			events = append(events, *ev)
		}
		buf = buf[n:]
	}
	return events
}

func parseOne(buf []byte) (*KeyEvent, int) {
	switch buf[0] {
	case keyCtrlC:
		return &KeyEvent{Key: keyCtrlC, Type: KeyChar}, 1
	case keyCR, keyLF:
		return &KeyEvent{Key: keyCR, Type: KeyEnter}, 1
	case keyEsc:
		return parseEscape(buf)
	case keyBackspace:
		return nil, 1
	}
	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}, 1
}

func parseEscape(buf []byte) (*KeyEvent, int) {
	if len(buf) == 1 || (buf[1] != '[' && buf[1] != 'O') {
		return &KeyEvent{Key: keyEsc, Type: KeyEscape}, 1
	}
	if len(buf) < 3 {
		return nil, len(buf)
	}

	switch buf[2] {
	case 'A':
		return &KeyEvent{Type: KeyUp}, 3
	case 'B':
		return &KeyEvent{Type: KeyDown}, 3
	case 'H':
		return &KeyEvent{Type: KeyHome}, 3
	case 'F':
		return &KeyEvent{Type: KeyEnd}, 3
	}

	// CSI n ~ sequences: 1/7 home, 4/8 end, 5 page up, 6 page down
	if len(buf) >= 4 && buf[3] == '~' {
		switch buf[2] {
		case '1', '7':
			return &KeyEvent{Type: KeyHome}, 4
		case '4', '8':
			return &KeyEvent{Type: KeyEnd}, 4
		case '5':
			return &KeyEvent{Type: KeyPageUp}, 4
		case '6':
			return &KeyEvent{Type: KeyPageDown}, 4
		}
		return nil, 4
	}

	// Unknown sequence, swallow the rest of this read
	return nil, len(buf)
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	if !kr.raw {
		return nil
	}
	return kr.disableRawMode()
}
