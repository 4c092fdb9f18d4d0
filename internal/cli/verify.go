package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/factly/internal/llm"
	"github.com/ppiankov/factly/internal/model"
	"github.com/ppiankov/factly/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	language     string
	directVerify bool
	forceRefresh bool
	jsonOutput   bool
	maxPerSource int
	timeout      time.Duration
	llmEnabled   bool
	llmModel     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Verify a claim and produce a credibility score",
	Long: `Verify runs the full verification pipeline for one claim:
- Extract the verifiable claims from the input text
- Gather evidence concurrently from every configured source
- Analyze consensus and conflicts between sources
- Fuse everything into a 0-100 credibility score with an audit trail

Example:
  factly verify "Unemployment fell to 3.4% in January 2023"
  factly verify "The Earth is flat" --json
  factly verify "..." --direct=false --force-refresh
  factly verify "..." --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&language, "language", "en", "evidence search language")
	verifyCmd.Flags().BoolVar(&directVerify, "direct", true, "probe authoritative sources directly")
	verifyCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the evidence cache")
	verifyCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")
	verifyCmd.Flags().IntVar(&maxPerSource, "max-per-source", 10, "max evidence items per source")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")

	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch := buildOrchestrator(cfg, pipeline.Options{
		Language:     language,
		Direct:       directVerify,
		ForceRefresh: forceRefresh,
		MaxPerSource: maxPerSource,
	})

	if llmEnabled {
		if err := attachNarrator(orch, cfg); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n\n", text)
	}

	result, err := orch.Verify(ctx, text)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if jsonOutput {
		return printJSON(result)
	}
	printResult(result)
	return nil
}

func attachNarrator(orch *pipeline.Orchestrator, cfg *model.Config) error {
	llmCfg := llm.ConfigFromModel(cfg.LLM)
	if llmCfg.Provider == "" {
		llmCfg.Provider = "openai"
	}
	if llmCfg.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	llmCfg.StrictEvidence = true // Always enforce

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return err
	}
	orch.SetNarrator(llm.NewSummarizer(provider, llmModel))
	return nil
}

func printJSON(result *model.VerificationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printResult(result *model.VerificationResult) {
	divider := strings.Repeat("=", 59)

	fmt.Println(divider)
	if result.Summary != nil {
		fmt.Printf("  %s\n", result.Summary.Headline)
	}
	fmt.Println(divider)
	fmt.Println()

	if result.Score != nil {
		fmt.Printf("Credibility Score: %d/100 (%s)\n", result.Score.Score, result.Classification)
		fmt.Printf("Confidence:        %s\n", result.ConfidenceLevel)
	}
	if result.Analysis != nil {
		fmt.Printf("Consensus:         %s\n", result.Analysis.ConsensusLevel)
		fmt.Printf("Verdict:           %s\n", result.Analysis.RecommendedVerdict)
	}
	if result.Evidence != nil {
		fmt.Printf("Evidence:          %d items from %d sources\n",
			len(result.Evidence.Items), len(result.Evidence.SourcesUsed))
		for _, errMsg := range result.Evidence.Errors {
			fmt.Printf("  source error: %s\n", errMsg)
		}
	}
	fmt.Println()

	if result.Score != nil {
		fmt.Println("Component breakdown:")
		for _, comp := range result.Score.Components {
			fmt.Printf("  %-22s %.2f x %.2f = %.3f\n", comp.Name, comp.Score, comp.Weight, comp.WeightedScore)
		}
		fmt.Println()
	}

	if result.Summary != nil {
		if len(result.Summary.KeyFindings) > 0 {
			fmt.Println("Key findings:")
			for _, finding := range result.Summary.KeyFindings {
				fmt.Printf("  - %s\n", finding)
			}
			fmt.Println()
		}
		if len(result.Summary.Recommendations) > 0 {
			fmt.Println("Recommendations:")
			for _, rec := range result.Summary.Recommendations {
				fmt.Printf("  - %s\n", rec)
			}
			fmt.Println()
		}
		if result.Summary.Narrative != "" {
			fmt.Println("Narrative:")
			fmt.Printf("  %s\n\n", result.Summary.Narrative)
		}
	}

	if verbose {
		fmt.Println("Verification trace:")
		for _, step := range result.Trace.Steps {
			fmt.Printf("  %d. %-22s %-10s %v\n", step.Number, step.Name, step.Status, step.Duration.Round(time.Millisecond))
		}
		fmt.Printf("\nTotal: %v\n", result.Trace.ProcessingTime.Round(time.Millisecond))
	}
}
