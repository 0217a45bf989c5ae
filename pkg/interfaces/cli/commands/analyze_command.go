// Package commands implements the CLI entry points over the
// application services.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sahanip/batchcost/pkg/application/services/costing"
	"github.com/sahanip/batchcost/pkg/application/services/procurement"
	"github.com/sahanip/batchcost/pkg/application/services/requirements"
	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/infrastructure/repositories/scenario"
	"github.com/sahanip/batchcost/pkg/interfaces/cli/output"
)

// Config holds configuration for the analyze command
type Config struct {
	ScenarioFile string
	RecipeID     string
	Variants     bool
	BatchID      string
	Costs        bool
	Procurement  bool
	Format       string
	Verbose      bool
	Help         bool
}

// AnalyzeCommand loads a scenario file and runs the requested
// analyses against it
type AnalyzeCommand struct {
	config Config
}

// NewAnalyzeCommand creates an analyze command with the given
// configuration
func NewAnalyzeCommand(config Config) *AnalyzeCommand {
	return &AnalyzeCommand{config: config}
}

// Execute runs the analyze command
func (c *AnalyzeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Loading scenario from %s\n", c.config.ScenarioFile)
	}

	repos, err := scenario.Load(c.config.ScenarioFile)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	loader := snapshot.NewLoader(repos.Materials, repos.Suppliers, repos.Recipes, repos.Products, repos.Inventory, nil)
	snap, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("error building snapshot: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Loaded %d materials, %d suppliers, %d recipes, %d products\n\n",
			len(snap.Materials), len(snap.Suppliers), len(snap.Recipes), len(snap.Products))
	}

	report := &output.Report{}
	costingService := costing.New()

	if c.config.RecipeID != "" {
		detail, err := costingService.RecipeDetail(snap, c.config.RecipeID)
		if err != nil {
			return fmt.Errorf("error costing recipe %s: %w", c.config.RecipeID, err)
		}
		report.Recipe = detail

		if c.config.Variants {
			variants, err := costingService.VariantsWithMetrics(snap, c.config.RecipeID)
			if err != nil {
				return fmt.Errorf("error listing variants for %s: %w", c.config.RecipeID, err)
			}
			report.Variants = variants
		}
	}

	if c.config.BatchID != "" {
		batch, err := repos.Batches.GetBatch(ctx, c.config.BatchID)
		if err != nil {
			return fmt.Errorf("error loading batch %s: %w", c.config.BatchID, err)
		}

		requirementsService := requirements.New()
		analysis, err := requirementsService.Analyze(snap, batch)
		if err != nil {
			return fmt.Errorf("error analyzing batch %s: %w", c.config.BatchID, err)
		}
		report.Requirements = analysis

		if c.config.Costs {
			costs, err := requirementsService.CostAnalysis(snap, batch)
			if err != nil {
				return fmt.Errorf("error costing batch %s: %w", c.config.BatchID, err)
			}
			report.Costs = costs
		}
		if c.config.Procurement {
			report.Procurement = procurement.New().Summarize(analysis)
		}
	}

	return output.Write(os.Stdout, report, output.Format(c.config.Format))
}

// validateInputs validates the command configuration
func (c *AnalyzeCommand) validateInputs() error {
	if c.config.ScenarioFile == "" {
		return fmt.Errorf("must specify -scenario JSON file")
	}
	if c.config.RecipeID == "" && c.config.BatchID == "" {
		return fmt.Errorf("must specify -recipe and/or -batch to analyze")
	}
	return nil
}

// showHelp displays the help message
func (c *AnalyzeCommand) showHelp() {
	fmt.Printf(`batchcost - recipe costing and batch requirements planning

USAGE:
    batchcost -scenario <file> -recipe <id> [-variants]
    batchcost -scenario <file> -batch <id> [-costs] [-procurement]

OPTIONS:
    -scenario <file>    Path to scenario JSON file
    -recipe <id>        Cost one recipe and print its breakdown
    -variants           Also list the recipe's saved variants with savings
    -batch <id>         Expand one production batch into requirements
    -costs              Also print the per-entry batch cost breakdown
    -procurement        Also print the supplier-grouped procurement summary
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Cost a recipe with its variants
    batchcost -scenario demo.json -recipe rec-base -variants

    # Expand a batch and group the order by supplier
    batchcost -scenario demo.json -batch batch-1 -procurement

    # Full JSON report
    batchcost -scenario demo.json -recipe rec-base -batch batch-1 -costs -procurement -format json
`)
}
