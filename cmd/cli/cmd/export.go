package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/cmd/cli/format"
	"github.com/dbcalc/dbcalc/internal/api"
	"github.com/dbcalc/dbcalc/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every workload and engine result to JSON or CSV",
	Long: `Size every reference workload on every engine and export the matrix.

By default exports to stdout. Use --file to write to a local file or an
s3://bucket/key location.

Examples:
  dbcalc export -o json > matrix.json
  dbcalc export -o csv --file matrix.csv
  dbcalc export -o csv --hardware compact --file s3://capacity-reports/dbcalc/matrix.csv`,
	RunE: runExport,
}

var (
	exportHardware string
	exportFile     string
)

func init() {
	exportCmd.Flags().StringVar(&exportHardware, "hardware", "", "Hardware preset (default: server default)")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Output file path or s3://bucket/key (default: stdout)")
	RootCmd.AddCommand(exportCmd)
}

// objectPutter is the part of the S3 client export uses.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// newS3Client is swapped out in tests.
var newS3Client = func(ctx context.Context) (objectPutter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := getFormat()
	if err != nil {
		return err
	}
	c := newClient()
	ctx := context.Background()

	workloads, err := c.ListWorkloads(ctx)
	if err != nil {
		return err
	}
	if len(workloads) == 0 {
		fmt.Fprintln(stderr(), "No workloads to export.")
		return nil
	}

	results := make([]*api.CompareResponse, 0, len(workloads))
	for _, w := range workloads {
		resp, err := c.Compare(ctx, api.CompareRequest{Hardware: exportHardware, Workload: w.Name})
		if err != nil {
			return fmt.Errorf("compare %s: %w", w.Name, err)
		}
		results = append(results, resp)
	}

	var buf bytes.Buffer
	contentType := "application/json"
	switch f {
	case format.FormatCSV:
		contentType = "text/csv"
		if err := format.CSV(&buf, exportHeaders(), exportRows(results)); err != nil {
			return err
		}
	default:
		// Default to JSON for export.
		if err := format.JSONTo(&buf, results); err != nil {
			return err
		}
	}

	return writeExport(ctx, exportFile, contentType, &buf)
}

// writeExport sends body to stdout, a local file or an S3 object.
func writeExport(ctx context.Context, dest, contentType string, body *bytes.Buffer) error {
	switch {
	case dest == "":
		_, err := io.Copy(stdout(), body)
		return err
	case strings.HasPrefix(dest, "s3://"):
		u, err := url.Parse(dest)
		if err != nil || u.Host == "" || strings.Trim(u.Path, "/") == "" {
			return fmt.Errorf("invalid S3 destination %q, want s3://bucket/key", dest)
		}
		client, err := newS3Client(ctx)
		if err != nil {
			return err
		}
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.Host),
			Key:         aws.String(strings.TrimPrefix(u.Path, "/")),
			Body:        bytes.NewReader(body.Bytes()),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", dest, err)
		}
		fmt.Fprintf(stderr(), "Exported to %s\n", dest)
		return nil
	default:
		if err := os.WriteFile(dest, body.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		return nil
	}
}

func exportHeaders() []string {
	return append([]string{"Workload"}, report.Headers()...)
}

func exportRows(results []*api.CompareResponse) [][]string {
	var rows [][]string
	for _, r := range results {
		for _, e := range r.Entries {
			rows = append(rows, append([]string{r.Workload}, report.Row(e.Engine, e.Summary)...))
		}
	}
	return rows
}
