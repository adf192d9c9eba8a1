package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	recordsadapter "github.com/bnema/dna-analyser-cli/internal/adapters/render/records"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/spf13/cobra"
)

// rowsOf flattens records of any kind through their Row method.
func rowsOf[R interface{ Row() domain.Row }](records []R) []domain.Row {
	rows := make([]domain.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Row())
	}
	return rows
}

func tableObjects(table domain.Table) []map[string]string {
	objects := make([]map[string]string, 0, table.Len())
	for _, row := range table.Rows {
		object := make(map[string]string, len(table.Columns))
		for i, column := range table.Columns {
			if i < len(row) {
				object[column] = row[i]
			}
		}
		objects = append(objects, object)
	}
	return objects
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func (a *app) writeTable(cmd *cobra.Command, title string, table domain.Table, opts recordsadapter.RenderOptions) error {
	if a.jsonOutput {
		return writeJSON(cmd, tableObjects(table))
	}

	rendered, err := a.renderer(title, table, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", title, err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func (a *app) writeRows(cmd *cobra.Command, title string, rows []domain.Row, columns ...string) error {
	return a.writeTable(cmd, title, domain.TableOf(rows...), recordsadapter.RenderOptions{Columns: columns})
}

func (a *app) writeRecord(cmd *cobra.Command, title string, row domain.Row) error {
	if a.jsonOutput {
		objects := tableObjects(domain.TableOf(row))
		return writeJSON(cmd, objects[0])
	}
	return a.writeTable(cmd, title, domain.TableOf(row), recordsadapter.RenderOptions{MaxCellWidth: -1})
}

func (a *app) writeText(cmd *cobra.Command, text string) error {
	if a.jsonOutput {
		return writeJSON(cmd, map[string]string{"data": text})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func writeCSVFile(path string, table domain.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(table.Columns); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
