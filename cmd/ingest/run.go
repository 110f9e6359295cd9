package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/ingest"
	"github.com/timmy/carmate/internal/logger"
	"github.com/timmy/carmate/internal/repository"
	"github.com/timmy/carmate/internal/service"
	"github.com/timmy/carmate/internal/storage"
)

type runOptions struct {
	kind      string
	companyID uint
	file      string
	atomic    bool
	batchSize int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest a CSV file directly into the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "Upload kind: car or customer (required)")
	cmd.Flags().UintVar(&opts.companyID, "company", 0, "Company ID the rows belong to (required)")
	cmd.Flags().StringVar(&opts.file, "file", "", "CSV file to ingest (required)")
	cmd.Flags().BoolVar(&opts.atomic, "atomic", false, "Roll back every batch when any batch fails")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "Rows per batch (default from config)")

	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runIngest(cmd *cobra.Command, root *rootOptions, opts runOptions) error {
	kind := domain.EntityKind(opts.kind)
	if !kind.Valid() {
		return fmt.Errorf("invalid --kind %q: want car or customer", opts.kind)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	cfg, appLogger, err := setup(root)
	if err != nil {
		return err
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var archive storage.ObjectStorage
	if cfg.Ingest.ArchiveUploads {
		if archive, err = storage.NewStorage(cfg.GetStorageConfig()); err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	batchSize := cfg.Ingest.BatchSize
	if opts.batchSize > 0 {
		batchSize = opts.batchSize
	}
	pipeline := ingest.NewPipeline(repository.NewStore(db), appLogger, &ingest.Config{
		BatchSize: batchSize,
		MaxRows:   cfg.Ingest.MaxRows,
		Atomic:    opts.atomic || cfg.Ingest.Atomic,
	})
	uploadService := service.NewUploadService(
		pipeline,
		repository.NewUploadRepository(db),
		repository.NewCompanyRepository(db),
		archive,
		appLogger,
		&service.UploadConfig{
			MaxFileSize:   cfg.Ingest.MaxFileSize,
			ArchivePrefix: cfg.Storage.Prefix,
		},
	)

	ctx := logger.SetComponent(cmd.Context(), "cli")
	upload, res, err := uploadService.Upload(ctx, &service.UploadRequest{
		CompanyID: opts.companyID,
		Kind:      kind,
		FileName:  filepath.Base(opts.file),
		Data:      data,
	})

	out := cmd.OutOrStdout()
	if upload != nil {
		fmt.Fprintf(out, "upload:    %s\n", upload.ID)
		if url := uploadService.FileURL(upload); url != "" {
			fmt.Fprintf(out, "archive:   %s\n", url)
		}
	}
	if res != nil {
		fmt.Fprintf(out, "rows:      %d\n", res.Rows)
		fmt.Fprintf(out, "persisted: %d (%d batches)\n", res.Persisted, res.CommittedBatches)
		fmt.Fprintf(out, "duration:  %s\n", res.Duration())
	}
	if err != nil {
		var ie *ingest.Error
		if errors.As(err, &ie) && ie.Row > 0 {
			return fmt.Errorf("ingest failed at row %d: %w", ie.Row, err)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}
	fmt.Fprintln(out, "status:    succeeded")
	return nil
}
