package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/porticolabs/connectors/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the per-provider policy file, then print a
summary of the effective policy for each configured provider.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if len(cfg.Providers) == 0 {
		cmd.Println("No providers configured; library defaults apply everywhere.")
		return nil
	}

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := cfg.Providers[name]
		cmd.Printf("[%s]\n", name)
		if p.BaseURL != "" {
			cmd.Printf("  base URL: %s\n", p.BaseURL)
		}
		if p.RateLimit > 0 {
			cmd.Printf("  rate limit: %.1f req/s\n", p.RateLimit)
		}
		for k := range p.Headers {
			cmd.Printf("  header: %s\n", k)
		}
		if p.Retry != nil {
			policy := p.Retry.Policy()
			attempts := "unbounded"
			if policy.MaxAttempts > 0 {
				attempts = fmt.Sprintf("%d", policy.MaxAttempts)
			}
			cmd.Printf("  retry: transient %v, base %s, cap %s, attempts %s\n",
				policy.Transient, policy.BaseDelay, policy.MaxDelay, attempts)
		}
	}

	cmd.Printf("%d provider(s) OK.\n", len(names))
	return nil
}
