package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/factly/internal/pipeline"
	"github.com/ppiankov/factly/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies multiple claims concurrently:
- Read claims from input file (one per line, # comments skipped)
- Verify claims in parallel with configurable worker count
- Each verification runs the full evidence and scoring pipeline
- Write an individual JSON report for each claim

Example:
  factly batch claims.txt
  factly batch claims.txt --concurrency 8 --output-dir ./reports
  factly batch claims.txt --timeout 15m --direct=false`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (0 = config default)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factly-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from verify command
	batchCmd.Flags().StringVar(&language, "language", "en", "evidence search language")
	batchCmd.Flags().BoolVar(&directVerify, "direct", true, "probe authoritative sources directly")
	batchCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the evidence cache")
	batchCmd.Flags().IntVar(&maxPerSource, "max-per-source", 10, "max evidence items per source")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	workers := concurrency
	if workers <= 0 {
		workers = cfg.Concurrency.BatchWorkers
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Factly Batch Verification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One orchestrator is shared across workers; it is safe for concurrent use
	orch := buildOrchestrator(cfg, pipeline.Options{
		Language:     language,
		Direct:       directVerify,
		ForceRefresh: forceRefresh,
		MaxPerSource: maxPerSource,
	})

	processor := worker.NewBatchProcessor(orch, workers)

	fmt.Fprintf(os.Stderr, "⚙️  Reading claims from file...\n")
	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d claims\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	failureCount := 0

	for i, outcome := range outcomes {
		if outcome.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", truncateClaim(outcome.Claim), outcome.Err)
			continue
		}

		successCount++

		slug := claimSlug(outcome.Claim, i)
		jsonPath := filepath.Join(outputDir, slug+".json")
		if err := writeReport(outcome, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", truncateClaim(outcome.Claim), err)
			continue
		}

		score := 0
		if outcome.Result.Score != nil {
			score = outcome.Result.Score.Score
		}
		fmt.Fprintf(os.Stderr, "✓ %s (score: %d/100, %s)\n", truncateClaim(outcome.Claim), score, outcome.Result.Classification)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func writeReport(outcome *worker.VerifyOutcome, path string) error {
	data, err := json.MarshalIndent(outcome.Result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// claimSlug derives a filesystem-safe name for a claim's report
func claimSlug(claim string, index int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(claim) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}
	if slug == "" {
		slug = "claim"
	}
	return fmt.Sprintf("%03d-%s", index+1, slug)
}

func truncateClaim(claim string) string {
	if len(claim) > 60 {
		return claim[:57] + "..."
	}
	return claim
}
