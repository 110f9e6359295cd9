package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/timmy/carmate/internal/client"
	"github.com/timmy/carmate/internal/domain"
)

type pushOptions struct {
	server    string
	kind      string
	companyID uint
	file      string
	timeout   time.Duration
}

func newPushCmd(root *rootOptions) *cobra.Command {
	var opts pushOptions

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload a CSV file to a running carmate API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "Upload kind: car or customer (required)")
	cmd.Flags().UintVar(&opts.companyID, "company", 0, "Company ID sent as X-Company-ID (required)")
	cmd.Flags().StringVar(&opts.file, "file", "", "CSV file to upload (required)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Request timeout")

	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPush(cmd *cobra.Command, opts pushOptions) error {
	kind := domain.EntityKind(opts.kind)
	if !kind.Valid() {
		return fmt.Errorf("invalid --kind %q: want car or customer", opts.kind)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	c := client.New(opts.server, opts.companyID, opts.timeout)
	resp, err := c.Upload(cmd.Context(), kind, filepath.Base(opts.file), data)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.UploadID != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "see GET /api/v1/uploads/%s for details\n", apiErr.UploadID)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows (upload %s)\n", resp.Message, resp.Count, resp.UploadID)
	return nil
}
