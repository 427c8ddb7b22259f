package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer is implemented by result types that know how to lay
// themselves out as a table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// TableData is an ad-hoc TableRenderer for commands that assemble rows
// on the fly.
type TableData struct {
	headers []string
	rows    [][]string
}

func NewTableData(headers ...string) *TableData {
	return &TableData{headers: headers}
}

func (t *TableData) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *TableData) Headers() []string { return t.headers }

func (t *TableData) Rows() [][]string { return t.rows }

// plainTable configures tablewriter for the borderless two-space-padded
// style shared by all chirpctl listings.
func plainTable(w io.Writer) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetBorder(false)
	tw.SetHeaderLine(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetTablePadding("  ")
	tw.SetNoWhiteSpace(true)
	return tw
}

// PrintTable renders data with uppercased headers followed by its rows.
func PrintTable(w io.Writer, data TableRenderer) error {
	tw := plainTable(w)
	tw.SetHeader(data.Headers())
	for _, row := range data.Rows() {
		tw.Append(row)
	}
	tw.Render()
	return nil
}

// SimpleTable renders key-value pairs without a header row, for detail
// views like status output.
func SimpleTable(w io.Writer, pairs [][2]string) error {
	tw := plainTable(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetColumnSeparator(":")
	for _, pair := range pairs {
		tw.Append([]string{pair[0], pair[1]})
	}
	tw.Render()
	return nil
}
