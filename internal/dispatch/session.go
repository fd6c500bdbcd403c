package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Chapter is one entry of the main menu. Only chapters with Tools are
// implemented; the rest are listed so the menu matches the exam outline.
type Chapter struct {
	Key   string
	Title string
	Tools bool
}

// Chapters lists the CFA level 1 topics in menu order.
var Chapters = []Chapter{
	{Key: "1", Title: "Quantitative Methods", Tools: true},
	{Key: "2", Title: "Economics"},
	{Key: "3", Title: "Corporate Issuers"},
	{Key: "4", Title: "Financial Statement Analysis"},
	{Key: "5", Title: "Equity Investments"},
	{Key: "6", Title: "Fixed Income"},
	{Key: "7", Title: "Derivatives"},
	{Key: "8", Title: "Alternative Investments"},
	{Key: "9", Title: "Portfolio Management"},
	{Key: "10", Title: "Ethics"},
}

// errEndOfInput stops a session when the reader is exhausted.
var errEndOfInput = errors.New("end of input")

// maxLineSize bounds a single answer. Pasted cash-flow series can run well
// past the scanner's 64 KiB default.
const maxLineSize = 16 << 20

type line struct {
	text string
	err  error
}

// Session runs the interactive menu.
type Session struct {
	d     *Dispatcher
	in    *bufio.Scanner
	out   io.Writer
	once  sync.Once
	lines chan line
}

// NewSession creates a session reading answers from in and writing menus,
// prompts and results to out.
func (d *Dispatcher) NewSession(in io.Reader, out io.Writer) *Session {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Session{d: d, in: sc, out: out, lines: make(chan line, 1)}
}

// readLines feeds scanned lines to ask so a blocked read never hides a
// cancelled context. The final value carries the scan error or
// errEndOfInput.
func (s *Session) readLines() {
	defer close(s.lines)
	for s.in.Scan() {
		s.lines <- line{text: s.in.Text()}
	}
	err := s.in.Err()
	if err == nil {
		err = errEndOfInput
	}
	s.lines <- line{err: err}
}

// Run shows the main menu until the user exits, input ends or ctx is done.
// Calculation failures are printed and never end the session.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMainMenu()
		choice, err := s.ask(ctx, "\nSelect a chapter (1-10) or 0 to exit: ")
		if err != nil {
			return s.finish(err)
		}

		if choice == "0" {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		ch, ok := chapterForKey(choice)
		switch {
		case !ok:
			fmt.Fprintln(s.out, "Invalid choice. Try again.")
		case !ch.Tools:
			fmt.Fprintf(s.out, "%s is not available yet.\n", ch.Title)
		default:
			if err := s.runTools(ctx); err != nil {
				return s.finish(err)
			}
		}
	}
}

func (s *Session) runTools(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printToolMenu()
		choice, err := s.ask(ctx, fmt.Sprintf("\nSelect a tool (1-%d) or 0 to return: ", len(handlers)))
		if err != nil {
			return err
		}

		if choice == "0" {
			return nil
		}

		h, ok := HandlerForKey(choice)
		if !ok {
			fmt.Fprintf(s.out, "Invalid choice. Try again.\n\n")
			continue
		}
		if err := s.runOperation(ctx, h); err != nil {
			return err
		}
	}
}

func (s *Session) runOperation(ctx context.Context, h Handler) error {
	args := make([]string, 0, len(h.Prompts))
	for _, p := range h.Prompts {
		answer, err := s.ask(ctx, p.Text)
		if err != nil {
			return err
		}
		args = append(args, answer)
	}

	res, err := s.d.Evaluate(h.Op, args)
	if err != nil {
		fmt.Fprintf(s.out, "%s\n\n", Describe(h.Op, err))
		return nil
	}
	fmt.Fprintf(s.out, "%s\n\n", res)
	return nil
}

func (s *Session) printMainMenu() {
	fmt.Fprintln(s.out, "\n=== CFA level 1 Toolkit ===")
	for _, ch := range Chapters {
		fmt.Fprintf(s.out, "%s. %s\n", ch.Key, ch.Title)
	}
	fmt.Fprintln(s.out, "0. Exit")
}

func (s *Session) printToolMenu() {
	fmt.Fprintln(s.out, "\n=== Quantitative Methods ===")
	for _, h := range handlers {
		fmt.Fprintf(s.out, "%s. %s\n", h.Key, h.Title)
	}
	fmt.Fprintln(s.out, "0. Back to Main Menu")
}

// ask writes prompt and returns the next trimmed line, or ctx.Err() if ctx
// is done first.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	s.once.Do(func() { go s.readLines() })

	fmt.Fprint(s.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", errEndOfInput
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// finish treats running out of input as a normal exit.
func (s *Session) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

func chapterForKey(key string) (Chapter, bool) {
	for _, ch := range Chapters {
		if ch.Key == key {
			return ch, true
		}
	}
	return Chapter{}, false
}
