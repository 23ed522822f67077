// Package console asks the user for the sort column and the query period.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"datalab/internal/timeutil"
	"datalab/processor"
)

// ErrNoInput is returned when the input ends before a valid answer was given.
var ErrNoInput = errors.New("no input")

type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
	suffix string
}

// NewPrompter reads answers from in and writes prompts to out. suffix
// completes "YYYY-MM-DD HH" period input to a full timestamp.
func NewPrompter(in io.Reader, out io.Writer, suffix string) *Prompter {
	if out == nil {
		out = io.Discard
	}
	return &Prompter{reader: bufio.NewReader(in), out: out, suffix: suffix}
}

// Column asks for one of the dataset's columns, by name or by its 1-based
// position in the listing. Unknown answers are asked again.
func (p *Prompter) Column(proc processor.Processor) (string, error) {
	names := proc.Dataset().Names()
	fmt.Fprintf(p.out, "Columns of %s:\n", proc.Source())
	for i, name := range names {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, name)
	}

	for {
		answer, err := p.readLine("Sort by column")
		if err != nil {
			return "", err
		}
		if answer == "" {
			fmt.Fprintln(p.out, "Value must not be empty.")
			continue
		}
		if index, convErr := strconv.Atoi(answer); convErr == nil {
			if index >= 1 && index <= len(names) {
				return names[index-1], nil
			}
			fmt.Fprintf(p.out, "Choose a number between 1 and %d.\n", len(names))
			continue
		}
		for _, name := range names {
			if strings.EqualFold(name, answer) {
				return name, nil
			}
		}
		fmt.Fprintf(p.out, "Unknown column %q.\n", answer)
	}
}

// Period asks for start and end as "YYYY-MM-DD HH". An empty start skips the
// period query.
func (p *Prompter) Period() (timeutil.Period, bool, error) {
	start, err := p.readLine("Period start (YYYY-MM-DD HH, empty to skip)")
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			return timeutil.Period{}, false, nil
		}
		return timeutil.Period{}, false, err
	}
	if start == "" {
		return timeutil.Period{}, false, nil
	}

	end, err := p.readLine("Period end (YYYY-MM-DD HH)")
	if err != nil {
		return timeutil.Period{}, false, err
	}

	period, err := timeutil.ParsePeriodInput(start, end, p.suffix)
	if err != nil {
		return timeutil.Period{}, false, err
	}
	return period, true, nil
}

func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if value := strings.TrimSpace(line); value != "" {
				return value, nil
			}
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), ErrNoInput)
		}
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}
