package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/repository"
	"gorm.io/gorm"
)

func newCompanyCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage tenant companies",
	}
	cmd.AddCommand(newCompanyAddCmd(root))
	return cmd
}

func newCompanyAddCmd(root *rootOptions) *cobra.Command {
	var name, code string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a company so it can upload files",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, code = strings.TrimSpace(name), strings.TrimSpace(code)
			if name == "" || code == "" {
				return errors.New("--name and --code must not be blank")
			}

			cfg, _, err := setup(root)
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

			companies := repository.NewCompanyRepository(db)
			ctx := cmd.Context()
			existing, err := companies.GetByCode(ctx, code)
			switch {
			case err == nil:
				return fmt.Errorf("company code %q already used by company %d", code, existing.ID)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("failed to look up company: %w", err)
			}

			company := &domain.Company{CompanyName: name, CompanyCode: code}
			if err := companies.Create(ctx, company); err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "company %d: %s (%s)\n", company.ID, company.CompanyName, company.CompanyCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Company name (required)")
	cmd.Flags().StringVar(&code, "code", "", "Unique company code (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}
