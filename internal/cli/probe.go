package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/porticolabs/connectors"
	"github.com/porticolabs/connectors/config"
)

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe <provider>",
	Short: "Check that a provider endpoint is reachable",
	Long: `Send one unauthenticated request to the provider's API root and
report the response. Any HTTP response, including an auth rejection,
means the endpoint is reachable; only transport failures are errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 10*time.Second,
		"probe timeout")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	name := args[0]
	root, ok := providerRoots[name]
	if !ok || name == "webhook" {
		return fmt.Errorf("probe: unknown provider %q", name)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger()
	opts := append(cfg.Options(name),
		connectors.WithLogger(logger),
		connectors.WithRetryPolicy(connectors.NoRetry()),
	)
	client := connectors.NewClient(name, root, connectors.NoAuth, opts...)

	ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
	defer cancel()

	start := time.Now()
	_, err = client.Do(ctx, connectors.Request{Method: http.MethodGet, Path: "/"})
	elapsed := time.Since(start).Round(time.Millisecond)

	var apiErr *connectors.APIError
	switch {
	case err == nil:
		cmd.Printf("%s: reachable (2xx, %s)\n", name, elapsed)
	case errors.As(err, &apiErr):
		cmd.Printf("%s: reachable (HTTP %d, %s)\n", name, apiErr.StatusCode, elapsed)
	default:
		return fmt.Errorf("probe: %s unreachable: %w", name, err)
	}
	return nil
}
