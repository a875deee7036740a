package common

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Prompter reads operator input line by line, re-prompting until a
// syntactically valid value is entered. It performs no semantic range
// validation.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter creates a Prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Line prints the prompt and returns the next input line, trimmed.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	line, err := p.r.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// String re-prompts until a non-empty value is entered.
func (p *Prompter) String(prompt string) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.w, "Input cannot be empty. Please try again.")
	}
}

// Int re-prompts until a parseable integer is entered.
func (p *Prompter) Int(prompt string) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		if v, convErr := strconv.Atoi(line); convErr == nil {
			return v, nil
		}
		fmt.Fprintln(p.w, "Invalid input. Please enter a valid integer.")
	}
}

// Float re-prompts until a parseable decimal number is entered.
func (p *Prompter) Float(prompt string) (float64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		if v, convErr := strconv.ParseFloat(line, 64); convErr == nil {
			return v, nil
		}
		fmt.Fprintln(p.w, "Invalid input. Please enter a valid decimal number.")
	}
}

// ParseInterval parses a duration string and returns a time.Duration.
// Returns an error if the interval is invalid.
func ParseInterval(interval string) (time.Duration, error) {
	dur, err := time.ParseDuration(interval)
	if err != nil {
		return 0, fmt.Errorf("invalid interval: %w", err)
	}
	if dur <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return dur, nil
}

// StartPeriodicTask executes task at the given interval until the
// context is cancelled. Task errors are logged and do not stop the loop.
func StartPeriodicTask(ctx context.Context, interval string, task func() error) error {
	dur, err := ParseInterval(interval)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(dur)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := task(); err != nil {
				slog.Error("Periodic task failed", "error", err)
			}
		}
	}
}

// RunOnceOrPeriodic executes the task immediately when once is true,
// otherwise periodically at the specified interval.
func RunOnceOrPeriodic(ctx context.Context, once bool, interval string, task func() error) error {
	if once {
		return task()
	}
	return StartPeriodicTask(ctx, interval, task)
}
