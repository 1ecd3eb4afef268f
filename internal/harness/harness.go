package harness

import (
	"fmt"
	"io"
	"log/slog"
	"speakscore/internal/score"
	"strconv"
	"strings"
)

const previewLen = 50

// Scorer is the function under test.
type Scorer interface {
	Score(text string, externalScore *int) int
}

// Result is the outcome of a single case.
type Result struct {
	Case     TestCase
	Score    int
	Passed   bool
	Feedback string
}

type compiledCase struct {
	TestCase
	expect *Expectation
}

// Harness runs a fixed, ordered list of cases against a Scorer and prints one
// status block per case. It does not aggregate results into an exit code.
type Harness struct {
	scorer Scorer
	cases  []compiledCase
	out    io.Writer
}

// New validates cases and compiles their pass conditions.
// Returns an error for an invalid range or an expression that does not compile.
func New(scorer Scorer, cases []TestCase, out io.Writer) (*Harness, error) {
	h := Harness{
		scorer: scorer,
		cases:  make([]compiledCase, 0, len(cases)),
		out:    out,
	}

	for _, tc := range cases {
		if err := tc.Validate(); err != nil {
			return nil, err
		}
		expr := tc.Expect
		if expr == "" {
			expr = DefaultExpect
		}
		expect, err := CompileExpectation(expr)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", tc.Name, err)
		}
		h.cases = append(h.cases, compiledCase{TestCase: tc, expect: expect})
	}

	return &h, nil
}

// Run executes every case in order.
func (h *Harness) Run() []Result {
	fmt.Fprintln(h.out, "Testing Speaking Score Logic")
	fmt.Fprintln(h.out, strings.Repeat("=", 50))

	results := make([]Result, 0, len(h.cases))
	for i, c := range h.cases {
		fmt.Fprintf(h.out, "\nTest %d: %s\n", i+1, c.Name)
		external := c.external()
		fmt.Fprintf(h.out, "Input: external_score=%s, text='%s...'\n", formatExternal(external), preview(c.Text))

		got := h.scorer.Score(c.Text, external)
		passed, err := c.expect.Eval(got, c.Min, c.Max)
		if err != nil {
			slog.Error("expect eval", "error", err, "case", c.Name)
		}

		status := "FAIL"
		if passed {
			status = "PASS"
		}
		fmt.Fprintf(h.out, "Result: %d (expected: %d-%d) %s\n", got, c.Min, c.Max, status)

		feedback := score.Feedback(score.ToExternal(got))
		fmt.Fprintf(h.out, "Feedback: %s\n", feedback)

		results = append(results, Result{Case: c.TestCase, Score: got, Passed: passed, Feedback: feedback})
	}

	return results
}

// external returns the declared external score, or one matched against the
// case targets.
func (c *compiledCase) external() *int {
	if c.ExternalScore != nil || len(c.Targets) == 0 {
		return c.ExternalScore
	}
	return score.External(score.Match(c.Text, c.Targets))
}

func formatExternal(v *int) string {
	if v == nil {
		return "none"
	}
	return strconv.Itoa(*v)
}

// preview cuts text to previewLen characters.
func preview(text string) string {
	r := []rune(text)
	if len(r) > previewLen {
		return string(r[:previewLen])
	}
	return text
}
