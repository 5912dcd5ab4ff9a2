package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// In and Out are the prompt streams
	In  io.Reader = os.Stdin
	Out io.Writer = os.Stdout

	reader *bufio.Reader
	source io.Reader
)

func input() *bufio.Reader {
	if reader == nil || source != In {
		reader = bufio.NewReader(In)
		source = In
	}
	return reader
}

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	fmt.Fprint(Out, label)
	line, err := input().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	response, err := PromptString(label + " (y/n) ")
	if err != nil {
		return false, err
	}
	response = strings.ToLower(response)
	return response == "y" || response == "yes", nil
}

// PromptMultilineString reads lines until an empty line or maxLines
func PromptMultilineString(label string, maxLines int) (string, error) {
	fmt.Fprintf(Out, "%s (finish with an empty line):\n", label)

	var lines []string
	for i := 0; i < maxLines; i++ {
		line, err := input().ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		lines = append(lines, trimmed)
		if err != nil {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// Key is one keystroke from a KeyReader
type Key struct {
	Rune rune
	// Special is set for keys without a printable rune
	Special SpecialKey
}

// SpecialKey identifies non-printable keys
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyTab
	KeyInterrupt
)

// KeyReader reads single keystrokes with the terminal in raw mode
type KeyReader struct {
	fd    int
	state *term.State
	r     *bufio.Reader
}

// NewKeyReader puts f's terminal into raw mode. Close restores it.
func NewKeyReader(f *os.File) (*KeyReader, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("live search needs an interactive terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &KeyReader{fd: fd, state: state, r: bufio.NewReader(f)}, nil
}

// newKeyReaderFrom reads keys from r without touching a terminal
func newKeyReaderFrom(r io.Reader) *KeyReader {
	return &KeyReader{fd: -1, r: bufio.NewReader(r)}
}

// ReadKey blocks for the next keystroke
func (k *KeyReader) ReadKey() (Key, error) {
	r, _, err := k.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch r {
	case '\r', '\n':
		return Key{Special: KeyEnter}, nil
	case 127, '\b':
		return Key{Special: KeyBackspace}, nil
	case 27:
		if k.skipSequence() {
			return Key{}, nil
		}
		return Key{Special: KeyEscape}, nil
	case '\t':
		return Key{Special: KeyTab}, nil
	case 3:
		return Key{Special: KeyInterrupt}, nil
	}
	return Key{Rune: r}, nil
}

// skipSequence consumes an escape sequence already buffered after ESC,
// such as an arrow key's "ESC [ A", and reports whether there was one.
// A lone ESC press arrives with nothing behind it.
func (k *KeyReader) skipSequence() bool {
	if k.r.Buffered() == 0 {
		return false
	}
	next, err := k.r.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return false
	}
	_, _ = k.r.ReadByte()
	for k.r.Buffered() > 0 {
		b, err := k.r.ReadByte()
		if err != nil || (b >= 0x40 && b <= 0x7e) {
			break
		}
	}
	return true
}

// Close restores the terminal
func (k *KeyReader) Close() error {
	if k.state == nil {
		return nil
	}
	return term.Restore(k.fd, k.state)
}

// Line accumulates keystrokes into an editable line
type Line struct {
	runes []rune
}

// Apply edits the line with k and reports whether the text changed
func (l *Line) Apply(k Key) bool {
	switch {
	case k.Special == KeyBackspace:
		if len(l.runes) == 0 {
			return false
		}
		l.runes = l.runes[:len(l.runes)-1]
		return true
	case k.Special == KeyNone && k.Rune >= ' ':
		l.runes = append(l.runes, k.Rune)
		return true
	}
	return false
}

func (l *Line) String() string {
	return string(l.runes)
}
