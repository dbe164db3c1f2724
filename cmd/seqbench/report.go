package main

import (
	"fmt"
	"io"
	"time"

	"github.com/kbukum/seqkit/observability"
)

// Report prints bench results as a tree, one branch per round.
type Report struct {
	name    string
	version string
	count   int
	results []Result
}

func newReport(name, version string, count int, results []Result) *Report {
	return &Report{name: name, version: version, count: count, results: results}
}

// Display writes the report to w.
func (r *Report) Display(w io.Writer) {
	fmt.Fprintf(w, "\n%s v%s: spelling %d integers\n\n", r.name, r.version, r.count)

	rounds := r.rounds()
	for i, round := range rounds {
		fmt.Fprintf(w, "Round %d\n", i+1)
		for j, res := range round {
			prefix := "├──"
			if j == len(round)-1 {
				prefix = "└──"
			}
			fmt.Fprintf(w, "   %s %s %s\n", prefix, statusIcon(res.Err), formatResult(res))
		}
		if s, ok := speedup(round); ok {
			fmt.Fprintf(w, "   speedup x%.1f\n", s)
		}
		fmt.Fprintln(w)
	}
}

func (r *Report) rounds() [][]Result {
	var out [][]Result
	for _, res := range r.results {
		if len(out) == 0 || out[len(out)-1][0].Round != res.Round {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], res)
	}
	return out
}

func formatResult(res Result) string {
	line := fmt.Sprintf("%-10s workers=%-4d elements=%-6d %s",
		res.Mode, res.Workers, res.Elements, res.Duration.Round(time.Microsecond))
	if res.Err != nil {
		line += fmt.Sprintf(" error: %v", res.Err)
	}
	return line
}

// speedup is the sequential duration over the concurrent one.
func speedup(round []Result) (float64, bool) {
	var sequential, concurrent time.Duration
	for _, res := range round {
		if res.Err != nil {
			return 0, false
		}
		switch res.Mode {
		case observability.ModeSequential:
			sequential = res.Duration
		case observability.ModeConcurrent:
			concurrent = res.Duration
		}
	}
	if sequential == 0 || concurrent == 0 {
		return 0, false
	}
	return float64(sequential) / float64(concurrent), true
}

func statusIcon(err error) string {
	if err != nil {
		return "❌"
	}
	return "✅"
}
