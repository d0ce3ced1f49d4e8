// Command underwrite runs the deal engine from the terminal against HJSON
// scenario files: a full base-deal analysis, a five-structure comparison, or
// a promote waterfall.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"
	"github.com/urfave/cli/v2"

	"deal_underwriter/pkg/core/deal"
	"deal_underwriter/pkg/core/promote"
	"deal_underwriter/pkg/core/structures"
	"deal_underwriter/pkg/report"
)

func loadScenario(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	if err := hjson.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return nil
}

func emit(c *cli.Context, markdown string, payload any) error {
	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	fmt.Println(markdown)
	return nil
}

func main() {
	fileFlag := &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "HJSON scenario file",
		Required: true,
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "emit raw JSON instead of a Markdown report",
	}

	app := &cli.App{
		Name:  "underwrite",
		Usage: "real-estate deal underwriting engine",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "run the full base pipeline on one deal",
				Flags: []cli.Flag{fileFlag, jsonFlag},
				Action: func(c *cli.Context) error {
					var inputs deal.DealInputs
					if err := loadScenario(c.String("file"), &inputs); err != nil {
						return err
					}
					outputs := deal.CalculateAll(inputs)
					return emit(c, report.DealSummaryMarkdown(inputs, outputs), outputs)
				},
			},
			{
				Name:  "compare",
				Usage: "run every capital structure against one shared base",
				Flags: []cli.Flag{fileFlag, jsonFlag},
				Action: func(c *cli.Context) error {
					var base structures.BaseDealTerms
					if err := loadScenario(c.String("file"), &base); err != nil {
						return err
					}
					analyses := structures.CompareDealStructures(base, structures.AllStructureTypes(), nil)
					return emit(c, report.ComparisonMarkdown(analyses), analyses)
				},
			},
			{
				Name:  "promote",
				Usage: "run the distribution waterfall over a calculated deal",
				Flags: []cli.Flag{fileFlag, jsonFlag},
				Action: func(c *cli.Context) error {
					var scenario struct {
						Deal    deal.DealInputs       `json:"deal"`
						Promote promote.PromoteInputs `json:"promote"`
					}
					if err := loadScenario(c.String("file"), &scenario); err != nil {
						return err
					}
					outputs := deal.Calculate(scenario.Deal)
					result := promote.CalculatePromote(scenario.Deal, outputs, scenario.Promote)
					return emit(c, report.PromoteMarkdown(result), result)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
