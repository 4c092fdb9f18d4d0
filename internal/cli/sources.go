package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured evidence sources and their credential status",
	Long: `Sources shows which evidence sources are configured and usable.

A source is usable when it is enabled and, if it requires an API key,
the key is present in the config file or the environment. Sources that
are enabled but missing credentials are skipped at verification time.`,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	type row struct {
		name      string
		enabled   bool
		needsKey  bool
		hasKey    bool
		keyEnvVar string
		detail    string
	}

	rows := []row{
		{
			name:      "factcheck",
			enabled:   cfg.Sources.FactCheck.Enabled,
			needsKey:  true,
			hasKey:    cfg.Sources.FactCheck.APIKey != "",
			keyEnvVar: "GOOGLE_FACT_CHECK_API_KEY",
			detail:    "Google Fact Check Tools claim reviews",
		},
		{
			name:      "newsapi",
			enabled:   cfg.Sources.NewsAPI.Enabled,
			needsKey:  true,
			hasKey:    cfg.Sources.NewsAPI.APIKey != "",
			keyEnvVar: "NEWSAPI_API_KEY",
			detail:    "NewsAPI.org article search",
		},
		{
			name:      "newsldr",
			enabled:   cfg.Sources.NewsLdr.Enabled,
			needsKey:  true,
			hasKey:    cfg.Sources.NewsLdr.APIKey != "",
			keyEnvVar: "NEWSLDR_API_KEY",
			detail:    "Newsldr aggregated news search",
		},
		{
			name:    "official",
			enabled: cfg.Sources.Official.Enabled,
			detail:  "Government and statistical agency endpoints",
		},
		{
			name:    "rss",
			enabled: cfg.Sources.RSS.Enabled,
			detail:  fmt.Sprintf("RSS/Atom feeds (%d configured)", len(cfg.Sources.RSS.Feeds)),
		},
	}

	fmt.Println("Configured evidence sources:")
	fmt.Println()
	for _, r := range rows {
		fmt.Printf("  %-10s %-10s %s\n", r.name, sourceStatus(r.enabled, r.needsKey, r.hasKey), r.detail)
		if r.enabled && r.needsKey && !r.hasKey {
			fmt.Printf("  %-10s %-10s set %s or sources.%s.api_key\n", "", "", r.keyEnvVar, r.name)
		}
	}
	fmt.Println()
	if cfg.DirectVerify.Enabled {
		fmt.Println("Direct verification: enabled (probes authoritative domains, no credentials needed)")
	} else {
		fmt.Println("Direct verification: disabled")
	}
	if cfg.LLM.Provider != "" {
		fmt.Printf("LLM narration: %s", cfg.LLM.Provider)
		if cfg.LLM.Model != "" {
			fmt.Printf(" (%s)", cfg.LLM.Model)
		}
		fmt.Println()
	} else {
		fmt.Println("LLM narration: disabled")
	}

	return nil
}

func sourceStatus(enabled, needsKey, hasKey bool) string {
	switch {
	case !enabled:
		return "disabled"
	case needsKey && !hasKey:
		return "no key"
	default:
		return "ready"
	}
}
