package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/cmd/cli/client"
	"github.com/dbcalc/dbcalc/cmd/cli/format"
)

var (
	apiURL       string
	outputFormat string
)

// RootCmd is the top-level CLI command.
var RootCmd = &cobra.Command{
	Use:           "dbcalc",
	Short:         "dbcalc CLI: size and cost a database fleet",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOrDefault("DBCALC_API_URL", "http://localhost:8080"), "dbcalc API base URL")
	RootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, csv, kv, text")
}

func newClient() *client.Client {
	return client.New(apiURL)
}

func getFormat() (format.OutputFormat, error) {
	return format.Parse(outputFormat)
}

func stdout() io.Writer {
	return RootCmd.OutOrStdout()
}

func stderr() io.Writer {
	return RootCmd.ErrOrStderr()
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
