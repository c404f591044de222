package roster

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
)

// DefaultBannerLabels are the group header rows of the roster sheet.
var DefaultBannerLabels = []string{
	"FULL TIME",
	"PART TIME 3/4",
	"PART TIME 1/2",
	"PART TIME 1/4",
	"INSTRUKTORZY",
}

type ParseOptions struct {
	// NameColumnIndex is the sheet column holding "First Last".
	NameColumnIndex int
	// DropLeadingColumn removes the first column left after the name column.
	DropLeadingColumn bool
	BannerLabels      []string
}

func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		NameColumnIndex:   0,
		DropLeadingColumn: true,
		BannerLabels:      append([]string(nil), DefaultBannerLabels...),
	}
}

// ParseRoster parses one workbook into a fresh employee list.
func ParseRoster(r io.Reader, opts ParseOptions) ([]roster.Employee, error) {
	p := NewParser(opts)
	if err := p.Parse(r); err != nil {
		return nil, err
	}
	return p.FullSchedule, nil
}

// Parser keeps its employee list between calls. The list is built from the
// first workbook only; later workbooks append shifts to it by row position.
// A Parser is not safe for concurrent use.
type Parser struct {
	opts         ParseOptions
	FullSchedule []roster.Employee

	// Month and Year of the last parsed workbook.
	Month int
	Year  int
}

func NewParser(opts ParseOptions) *Parser {
	return &Parser{opts: opts}
}

func (p *Parser) Parse(r io.Reader) error {
	grid, err := LoadGrid(r)
	if err != nil {
		return err
	}

	table, err := Normalize(grid, p.opts)
	if err != nil {
		return err
	}

	p.Month, p.Year = table.Month, table.Year

	if len(p.FullSchedule) == 0 {
		names := make([]string, len(table.Rows))
		for i, row := range table.Rows {
			names[i] = row.Name
		}
		employees, err := BuildRegistry(names, table.Month, table.Year)
		if err != nil {
			return err
		}
		p.FullSchedule = employees
	}

	if len(table.Rows) > len(p.FullSchedule) {
		return fmt.Errorf("%w: %d rows for %d employees", roster.ErrRegistryMismatch, len(table.Rows), len(p.FullSchedule))
	}

	shifts := Assemble(table, p.FullSchedule)
	slog.Debug("roster parsed",
		"month", table.Month,
		"year", table.Year,
		"employees", len(table.Rows),
		"days", len(table.Days),
		"shifts", shifts,
	)
	return nil
}
