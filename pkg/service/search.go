package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/formatter"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/Om-Mishra7/InkBloom/pkg/prompter"
	"github.com/Om-Mishra7/InkBloom/pkg/search"
)

// SearchService provides blog search
type SearchService struct {
	rt *Runtime
}

// NewSearchService creates a new search service
func NewSearchService(rt *Runtime) *SearchService {
	return &SearchService{rt: rt}
}

func (s *SearchService) options(onChange func(search.Results)) search.Options {
	return search.Options{
		MinLength: config.GetInt("search.min_length"),
		Debounce:  config.GetMillis("search.debounce_ms"),
		Clock:     s.rt.Clock,
		BaseURL:   s.rt.BaseURL,
		Metrics:   s.rt.Metrics,
		OnChange:  onChange,
	}
}

// Once runs a single query and prints the links
func (s *SearchService) Once(ctx context.Context, query string) (search.Results, error) {
	live := search.New(s.rt.API, s.options(nil))
	defer live.Close()

	res, err := live.Query(ctx, query)
	if err != nil {
		return res, fmt.Errorf("failed to search: %w", err)
	}
	if len(res.Links) == 0 {
		output.PrintInfo("Type at least %d characters to search", config.GetInt("search.min_length"))
		return res, nil
	}

	rows := make([][]string, len(res.Links))
	for i, l := range res.Links {
		rows[i] = []string{l.Label, l.Href}
	}
	return res, output.PrintList("", res.Links, []string{"Title", "Link"}, rows)
}

// Live runs search-as-you-type on the terminal until Enter or Ctrl-C.
// Escape dismisses the results, like clicking outside them.
func (s *SearchService) Live(ctx context.Context) error {
	keys, err := prompter.NewKeyReader(os.Stdin)
	if err != nil {
		return err
	}
	defer keys.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := &liveView{out: output.Out}
	live := search.New(s.rt.API, s.options(view.render))
	defer live.Close()

	var line prompter.Line
	view.render(search.Results{})
	for {
		key, err := keys.ReadKey()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch key.Special {
		case prompter.KeyEnter, prompter.KeyInterrupt:
			fmt.Fprint(view.out, "\r\n")
			return nil
		case prompter.KeyEscape:
			live.Pointer(search.TargetOutside)
			continue
		}
		if line.Apply(key) {
			view.setQuery(line.String())
			live.Input(ctx, line.String())
		}
	}
}

// liveView redraws the prompt and results in raw mode
type liveView struct {
	out     io.Writer
	mu      sync.Mutex
	query   string
	last    search.Results
	started bool
}

func (v *liveView) setQuery(q string) {
	v.mu.Lock()
	v.query = q
	last := v.last
	v.mu.Unlock()
	v.draw(q, last)
}

func (v *liveView) render(r search.Results) {
	v.mu.Lock()
	v.last = r
	q := v.query
	v.mu.Unlock()
	v.draw(q, r)
}

func (v *liveView) draw(query string, r search.Results) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var sb strings.Builder
	if !v.started {
		// remember where the prompt line starts
		sb.WriteString("\r\x1b7")
		v.started = true
	}
	sb.WriteString("\x1b8\x1b[J")
	sb.WriteString(formatter.Bold.Sprint("search> ") + query)
	if r.Visible {
		for _, l := range r.Links {
			sb.WriteString("\r\n  " + l.Label)
			if l.Href != "#" {
				sb.WriteString("  " + formatter.Faint.Sprint(l.Href))
			}
		}
		// put the cursor back at the end of the query
		sb.WriteString(fmt.Sprintf("\x1b[%dA\r\x1b[%dC", len(r.Links), len("search> ")+len([]rune(query))))
	}
	fmt.Fprint(v.out, sb.String())
}
