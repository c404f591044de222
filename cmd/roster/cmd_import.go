package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/roster-backend-go/internal/service/file"
	serviceNotification "github.com/cmlabs-hris/roster-backend-go/internal/service/notification"
	serviceRoster "github.com/cmlabs-hris/roster-backend-go/internal/service/roster"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a roster workbook into the database",
		Long: `Parses a roster .xlsx workbook and upserts the schedules of every employee
found in the users table. Names that match no user are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			var fileService file.FileService
			if archive {
				fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
				if err != nil {
					return err
				}
				fileService = file.NewFileService(fileStorage)
			}

			// Stop flushes the queue before the pool closes
			notifier := serviceNotification.NewNotificationService(postgresql.NewNotificationRepository(db), serviceNotification.Config{WorkerCount: 1})
			defer notifier.Stop()

			svc := serviceRoster.NewRosterService(
				postgresql.NewTransactor(db),
				postgresql.NewScheduleRepository(db),
				postgresql.NewUserRepository(db),
				fileService,
				nil,
				notifier,
				serviceRoster.ParseOptions{
					NameColumnIndex:   cfg.Roster.NameColumnIndex,
					DropLeadingColumn: cfg.Roster.DropLeadingColumn,
					BannerLabels:      cfg.Roster.BannerLabels,
				},
			)

			result, err := svc.Import(cmd.Context(), roster.UploadRosterRequest{
				FileName: filepath.Base(args[0]),
				Content:  content,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %04d-%02d from %s (%d shifts, import %s)\n", result.Year, result.Month, result.FileName, result.ShiftCount, result.ImportID)
			for _, line := range result.Messages() {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Also copy the workbook into the configured storage")
	return cmd
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{MaxConns: 4, MinConns: 1})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
