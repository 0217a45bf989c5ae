package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sahanip/batchcost/pkg/interfaces/cli/commands"
)

func main() {
	var (
		scenarioFile = flag.String("scenario", "", "Path to scenario JSON file")
		recipeID     = flag.String("recipe", "", "Recipe ID to cost")
		variants     = flag.Bool("variants", false, "List the recipe's saved variants with savings")
		batchID      = flag.String("batch", "", "Production batch ID to expand into requirements")
		costs        = flag.Bool("costs", false, "Print the per-entry batch cost breakdown")
		procurement  = flag.Bool("procurement", false, "Print the supplier-grouped procurement summary")
		format       = flag.String("format", "text", "Output format: text, json")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioFile: *scenarioFile,
		RecipeID:     *recipeID,
		Variants:     *variants,
		BatchID:      *batchID,
		Costs:        *costs,
		Procurement:  *procurement,
		Format:       *format,
		Verbose:      *verbose,
		Help:         *help,
	}

	cmd := commands.NewAnalyzeCommand(config)
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
