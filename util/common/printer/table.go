package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

// ColumnMapping defines a mapping between original field names and display names
type ColumnMapping [][]string

// parseTableData converts a JSON array + column mapping into headers and string rows.
func parseTableData(data []byte, mapping ColumnMapping) ([]string, [][]string, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse json: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var header, fields []string
	if len(mapping) > 0 {
		for _, m := range mapping {
			if len(m) >= 2 {
				fields = append(fields, m[0])
				header = append(header, m[1])
			}
		}
	} else {
		for k := range rows[0] {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		header = fields
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = cell(lookup(r, f))
		}
		tableRows = append(tableRows, row)
	}
	return header, tableRows, nil
}

// lookup resolves a dotted path such as "package.version".
func lookup(row map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = row
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func cell(val interface{}, ok bool) string {
	if !ok || val == nil {
		return "-"
	}
	switch v := val.(type) {
	case string:
		if v == "" {
			return "-"
		}
		return v
	case float64:
		return fmt.Sprint(v)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

// renderStyledTable renders a table using lipgloss/table with the project's colour theme.
func renderStyledTable(w io.Writer, headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(style.Cyan).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Padding(0, 1)

	dimCellStyle := lipgloss.NewStyle().
		Foreground(style.Dim).
		Padding(0, 1)

	t := lgtable.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Subtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if row%2 == 0 {
				return cellStyle
			}
			return dimCellStyle
		})

	for _, r := range rows {
		t = t.Row(r...)
	}

	fmt.Fprintln(w, t.Render())
}

// renderPtermTable renders a boxed pterm table for non-TTY / no-color output.
func renderPtermTable(w io.Writer, headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	for _, r := range rows {
		data = append(data, r)
	}
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(true).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// TableOptions provides configuration for table output
type TableOptions struct {
	// Writer is the output destination (defaults to os.Stdout if nil)
	Writer io.Writer

	// ColumnMapping defines custom column ordering and display names.
	// Fields may be dotted paths into nested objects.
	// Format: [["originalField", "Display Name"], ...]
	ColumnMapping ColumnMapping

	// PageIndex is the current page number
	PageIndex int64

	// PageCount is the total number of pages
	PageCount int64

	// ItemCount is the total number of items
	ItemCount int64

	// ShowPagination determines whether to show pagination info
	ShowPagination bool
}

// DefaultTableOptions returns default configuration for table printing
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Writer:         os.Stdout,
		ShowPagination: true,
	}
}

// PrintTableWithOptions prints a slice as a table. Colour output uses the
// lipgloss theme, plain output the pterm boxed table.
func PrintTableWithOptions(res any, options TableOptions) error {
	w := options.Writer
	if w == nil {
		w = os.Stdout
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	headers, rows, err := parseTableData(data, options.ColumnMapping)
	if err != nil {
		log.Error().Msgf("failed to parse table data: %v", err)
		return err
	}

	if headers == nil {
		fmt.Fprintln(w, "No results")
		return nil
	}

	if style.Enabled {
		renderStyledTable(w, headers, rows)
	} else if err := renderPtermTable(w, headers, rows); err != nil {
		log.Error().Msgf("failed to render table: %v", err)
		return err
	}

	if options.ShowPagination {
		line := fmt.Sprintf("Page %d of %d (Total: %d)", options.PageIndex, options.PageCount, options.ItemCount)
		if style.Enabled {
			line = lipgloss.NewStyle().Foreground(style.Dim).Render(line)
		}
		fmt.Fprintln(w, line)
	}

	return nil
}

// PrintDetails prints a single object as a two column field/value table.
func PrintDetails(w io.Writer, res any, mapping ColumnMapping) error {
	if w == nil {
		w = os.Stdout
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	if len(mapping) == 0 {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			mapping = append(mapping, []string{k, k})
		}
	}

	rows := make([][]string, 0, len(mapping))
	for _, m := range mapping {
		if len(m) < 2 {
			continue
		}
		rows = append(rows, []string{m[1], cell(lookup(obj, m[0]))})
	}

	if style.Enabled {
		renderStyledTable(w, []string{"Field", "Value"}, rows)
		return nil
	}
	return renderPtermTable(w, []string{"Field", "Value"}, rows)
}
