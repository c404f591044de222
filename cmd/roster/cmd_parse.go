package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	serviceRoster "github.com/cmlabs-hris/roster-backend-go/internal/service/roster"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type parseFlags struct {
	format            string
	nameColumn        int
	keepLeadingColumn bool
	banners           []string
}

func newParseCmd() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the employees and shifts of a roster workbook",
		Long: `Parses a roster .xlsx workbook and prints every employee with their
monthly schedule. Nothing is written to the database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().IntVar(&flags.nameColumn, "name-column", 0, "Zero-based column holding employee names")
	cmd.Flags().BoolVar(&flags.keepLeadingColumn, "keep-leading-column", false, "Do not drop the ordinal column next to the names")
	cmd.Flags().StringSliceVar(&flags.banners, "banner", nil, "Section banner label to skip (repeatable, replaces the defaults)")

	return cmd
}

func (f *parseFlags) options() serviceRoster.ParseOptions {
	opts := serviceRoster.DefaultParseOptions()
	opts.NameColumnIndex = f.nameColumn
	opts.DropLeadingColumn = !f.keepLeadingColumn
	if len(f.banners) > 0 {
		opts.BannerLabels = f.banners
	}
	return opts
}

func runParse(out io.Writer, path string, flags *parseFlags) error {
	if flags.format != "json" && flags.format != "yaml" {
		return fmt.Errorf("unknown format %q, expected json or yaml", flags.format)
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	employees, err := serviceRoster.ParseRoster(file, flags.options())
	if err != nil {
		return &roster.ParseError{FileName: path, Err: err}
	}
	if employees == nil {
		employees = []roster.Employee{}
	}

	switch flags.format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(employees); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(employees)
	}
}
