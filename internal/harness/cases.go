package harness

import (
	"errors"
	"fmt"
	"os"
	"speakscore/internal/score"

	"gopkg.in/yaml.v3"
)

// TestCase is one scoring scenario with its inclusive expected range.
type TestCase struct {
	Name          string `yaml:"name"`
	Text          string `yaml:"text"`
	ExternalScore *int   `yaml:"external_score"`
	Min           int    `yaml:"min"`
	Max           int    `yaml:"max"`
	// Targets — sentences the speaker was asked to read. When set and
	// ExternalScore is absent, the external score is matched from Text.
	Targets []string `yaml:"targets"`
	// Expect — optional CEL condition over score, min and max.
	// Empty means DefaultExpect.
	Expect string `yaml:"expect"`
}

// Validate checks that the expected range lies within the score bounds.
func (tc *TestCase) Validate() error {
	if tc.Name == "" {
		return errors.New("case: name must be specified")
	}
	if tc.Min < score.MinScore || tc.Max > score.MaxScore || tc.Min > tc.Max {
		return fmt.Errorf("case %q: invalid range [%d, %d]", tc.Name, tc.Min, tc.Max)
	}
	return nil
}

// DefaultCases returns the built-in scenarios in run order.
func DefaultCases() []TestCase {
	const technology = "Technology connects us and makes communication easier"

	return []TestCase{
		{
			Name:          "Perfect match (frontend score provided)",
			Text:          technology,
			ExternalScore: score.External(20),
			Min:           90,
			Max:           100,
		},
		{
			Name:          "Good match (frontend score provided)",
			Text:          "Books are our best friends and provide knowledge",
			ExternalScore: score.External(16),
			Min:           70,
			Max:           90,
		},
		{
			Name:          "Poor match (frontend score provided)",
			Text:          "Some random text here",
			ExternalScore: score.External(5),
			Min:           20,
			Max:           40,
		},
		{
			Name: "No frontend score (fallback logic)",
			Text: technology,
			Min:  30,
			Max:  60,
		},
		{
			Name: "Empty text (fallback)",
			Text: "",
			Min:  0,
			Max:  0,
		},
	}
}

// ParseCases decodes a YAML list of cases and validates each of them.
//
//   - name: "Short answer"
//     text: "yes it is"
//     min: 10
//     max: 40
func ParseCases(content []byte) ([]TestCase, error) {
	var cases []TestCase
	if err := yaml.Unmarshal(content, &cases); err != nil {
		return nil, fmt.Errorf("error parsing cases: %w", err)
	}
	for i := range cases {
		if err := cases[i].Validate(); err != nil {
			return nil, err
		}
	}
	return cases, nil
}

// LoadCases reads cases from a YAML file.
func LoadCases(file string) ([]TestCase, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading cases file: %w", err)
	}
	return ParseCases(content)
}
