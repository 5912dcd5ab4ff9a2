// Package notifier renders transient alert banners that dismiss
// themselves after a fixed timeout.
package notifier

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/clock"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTimeout is how long an alert stays visible.
const DefaultTimeout = 5000 * time.Millisecond

// Kind is the style class applied to the banner.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindDanger  Kind = "danger"
	KindAlert   Kind = "alert"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

var styles = map[Kind]lipgloss.Style{
	KindSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")).Padding(0, 1),
	KindError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 1),
	KindDanger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1),
	KindAlert:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
	KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")).Padding(0, 1),
	KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Padding(0, 1),
}

// Alert is a single visible message.
type Alert struct {
	Kind         Kind
	Message      string
	VisibleUntil time.Time
}

// Alerter is what components depend on to surface a message.
type Alerter interface {
	Show(kind Kind, message string)
}

// Notifier owns one banner. Concurrent Show calls replace the visible
// message; each call's timer only removes the class it added and only
// hides the banner if no newer alert has been shown since.
type Notifier struct {
	out     io.Writer
	clock   clock.Clock
	timeout time.Duration
	metrics *metrics.Metrics

	mu      sync.Mutex
	gen     uint64
	current *Alert
	classes map[Kind]int
	timers  map[uint64]clock.Timer
}

// New creates a notifier writing banners to out.
func New(out io.Writer, clk clock.Clock, timeout time.Duration) *Notifier {
	if clk == nil {
		clk = clock.Real{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{
		out:     out,
		clock:   clk,
		timeout: timeout,
		classes: make(map[Kind]int),
		timers:  make(map[uint64]clock.Timer),
	}
}

// SetMetrics counts every alert shown on m
func (n *Notifier) SetMetrics(m *metrics.Metrics) {
	n.metrics = m
}

// Show displays message styled by kind and schedules its dismissal.
// Dashes in message are shown as spaces; the server sends slugs like
// "Comment-failed".
func (n *Notifier) Show(kind Kind, message string) {
	text := strings.ReplaceAll(message, "-", " ")

	n.mu.Lock()
	n.gen++
	gen := n.gen
	alert := &Alert{Kind: kind, Message: text, VisibleUntil: n.clock.Now().Add(n.timeout)}
	n.current = alert
	n.classes[kind]++
	n.timers[gen] = n.clock.AfterFunc(n.timeout, func() { n.dismiss(gen, kind) })
	n.mu.Unlock()

	logger.Debug("Alert shown", "kind", kind, "message", text)
	n.metrics.Alert(string(kind))
	if n.out != nil {
		fmt.Fprintln(n.out, render(kind, text))
	}
}

func (n *Notifier) dismiss(gen uint64, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.timers, gen)
	if n.classes[kind] > 1 {
		n.classes[kind]--
	} else {
		delete(n.classes, kind)
	}
	if gen == n.gen {
		n.current = nil
	}
	logger.Debug("Alert dismissed", "kind", kind)
}

// Current returns the visible alert, if any.
func (n *Notifier) Current() (Alert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Alert{}, false
	}
	return *n.current, true
}

// Visible reports whether the banner is showing.
func (n *Notifier) Visible() bool {
	_, ok := n.Current()
	return ok
}

// HasClass reports whether kind is currently applied to the banner.
func (n *Notifier) HasClass(kind Kind) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.classes[kind] > 0
}

// Classes returns the kinds currently applied, sorted.
func (n *Notifier) Classes() []Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]Kind, 0, len(n.classes))
	for k := range n.classes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Close stops pending dismissals and clears the banner.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for gen, t := range n.timers {
		t.Stop()
		delete(n.timers, gen)
	}
	n.current = nil
	n.classes = make(map[Kind]int)
}

func render(kind Kind, text string) string {
	style, ok := styles[kind]
	if !ok {
		style = styles[KindInfo]
	}
	return style.Render(text)
}
