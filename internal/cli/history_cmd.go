package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stackfield/agentstudio/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Export or clear the local run history",
	}

	cmd.AddCommand(newHistoryExportCmd())
	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

func newHistoryExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the run history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readHistory()
			if err != nil {
				return err
			}
			log := history.NewLog()
			for _, rec := range records {
				log.Append(rec)
			}
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				return log.WriteCSV(f)
			}
			return log.WriteCSV(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := historyPath()
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	}
}

func historyPath() string {
	return filepath.Join(settings.Home, "history.jsonl")
}

// appendHistory persists records to the local history file, one JSON object
// per line.
func appendHistory(records []history.RunRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := os.MkdirAll(settings.Home, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(historyPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func readHistory() ([]history.RunRecord, error) {
	f, err := os.Open(historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []history.RunRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec history.RunRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("corrupt history line: %w", err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
