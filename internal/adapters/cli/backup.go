package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
)

// NewBackupCommand creates the backup command with subcommands
func NewBackupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import progress backups",
		Long: `Export the dataset and progress to a JSON file, or replace them with a
previously exported backup.

Imported backups are validated before anything is replaced; a rejected
backup leaves the current progress untouched.

Examples:
  armor-tracker backup export
  armor-tracker backup export --output ~/armor.json
  armor-tracker backup export --output -
  armor-tracker backup import ~/armor.json`,
	}

	cmd.AddCommand(newBackupExportCommand())
	cmd.AddCommand(newBackupImportCommand())

	return cmd
}

func newBackupExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&commands.ExportBackupCommand{})
				if err != nil {
					return err
				}
				r := resp.(*commands.ExportBackupResponse)

				if output == "-" {
					_, err := cmd.OutOrStdout().Write(r.Content)
					return err
				}
				path := output
				if path == "" {
					path = filepath.Join(a.cfg.Backup.ExportDir, r.FileName)
				}
				if err := os.WriteFile(path, r.Content, 0o600); err != nil {
					return fmt.Errorf("failed to write backup: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `Output file, or "-" for stdout (default: <export_dir>/<generated name>)`)

	return cmd
}

func newBackupImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the dataset and progress with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat backup: %w", err)
			}
			file := &backup.File{
				Name:   filepath.Base(args[0]),
				Size:   info.Size(),
				Reader: f,
			}
			if filepath.Ext(args[0]) == ".json" {
				file.ContentType = "application/json"
			}

			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&commands.ImportBackupCommand{File: file})
				if err != nil {
					return err
				}
				r := resp.(*commands.ImportBackupResponse)
				fmt.Fprintf(cmd.OutOrStdout(), "Backup imported: %d armor pieces, %d materials\n", r.Pieces, r.Materials)
				return nil
			})
		},
	}
}
