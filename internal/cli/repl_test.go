package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/fracalc/internal/config"
	"github.com/agbru/fracalc/internal/metrics"
)

func runREPL(t *testing.T, cfg REPLConfig, rec *metrics.Recorder, input string) (*REPL, string) {
	t.Helper()
	var out bytes.Buffer
	r := NewREPL(cfg, rec, nil)
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start(context.Background())
	return r, out.String()
}

func TestREPL_Accumulates(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, REPLConfig{Width: 64}, nil, "add 1 2\n2 3\ntotal\nexit\n")

	if r.Total() != "7/6" {
		t.Errorf("Total() = %q, want 7/6", r.Total())
	}
	for _, want := range []string{"+ 1/2 = 1/2", "+ 2/3 = 7/6", "Total: 7/6 (2 terms, 64 bits)", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestREPL_SeedTerms(t *testing.T) {
	t.Parallel()
	cfg := REPLConfig{Width: 64, Terms: []config.Term{{Numerator: 1, Denominator: 4}}}
	r, _ := runREPL(t, cfg, nil, "1 4\n")
	if r.Total() != "1/2" {
		t.Errorf("Total() = %q, want 1/2", r.Total())
	}
}

func TestREPL_ErrorsKeepTotal(t *testing.T) {
	t.Parallel()
	input := strings.Join([]string{
		"add 1 2",
		"add 1 0",   // division by zero
		"add 1",     // usage
		"add x 2",   // bad numerator
		"add 1 y",   // bad denominator
		"add 300 1", // does not fit in 8 bits
		"bogus",
		"history",
	}, "\n") + "\n"

	r, out := runREPL(t, REPLConfig{Width: 8}, nil, input)

	if r.Total() != "1/2" {
		t.Errorf("Total() = %q, want 1/2 after rejected terms", r.Total())
	}
	for _, want := range []string{
		"division by zero",
		"Usage: add <numerator> <denominator>",
		"Invalid numerator: x",
		"Invalid denominator: y",
		"300 does not fit in 8 bits",
		"Unknown command: bogus",
		" 1. 1/2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, " 2. ") {
		t.Errorf("rejected terms should not enter the history:\n%s", out)
	}
}

func TestREPL_OverflowRejected(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, REPLConfig{Width: 8}, nil, "100 1\n100 1\n")
	if r.Total() != "100/1" {
		t.Errorf("Total() = %q, want 100/1", r.Total())
	}
	if !strings.Contains(out, "integer overflow") {
		t.Errorf("expected an overflow message, got:\n%s", out)
	}
}

func TestREPL_Reset(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, REPLConfig{Width: 16}, nil, "-1 3\nreset\nhistory\n")
	if r.Total() != "0/1" {
		t.Errorf("Total() = %q, want 0/1", r.Total())
	}
	if !strings.Contains(out, "Total reset to 0/1") || !strings.Contains(out, "No terms yet.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestREPL_NegativeTotal(t *testing.T) {
	t.Parallel()
	r, _ := runREPL(t, REPLConfig{Width: 32}, nil, "1 2\n-2 3\n")
	if r.Total() != "-1/6" {
		t.Errorf("Total() = %q, want -1/6", r.Total())
	}
}

func TestREPL_RecordsMetrics(t *testing.T) {
	t.Parallel()
	rec := metrics.NewRecorder()
	runREPL(t, REPLConfig{Width: 64}, rec, "1 2\n1 0\n")

	count, err := testutil.GatherAndCount(rec.Registry(), "fracalc_evaluations_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 2 {
		t.Errorf("expected success and error series, got %d", count)
	}
}

func TestREPL_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := NewREPL(REPLConfig{Width: 64}, nil, nil)
	r.SetInput(strings.NewReader("1 2\n"))
	r.SetOutput(&out)
	r.Start(ctx)

	if r.Total() != "0/1" {
		t.Errorf("canceled session should not accept input, total %q", r.Total())
	}
}
