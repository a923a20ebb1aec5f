package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
)

// exportFilename is the fixed CSV export target, written to the working
// directory.
const exportFilename = "liquidity-analysis.csv"

var exportHeader = []string{"Item", "Subsidy", "Category", "Amount"}

// exportOpportunities writes the opportunity table to path. Fields go through
// encoding/csv so values containing commas or quotes stay intact.
func exportOpportunities(path string, subs []api.SubsidyOpportunity) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := writeOpportunitiesCSV(f, subs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

func writeOpportunitiesCSV(w io.Writer, subs []api.SubsidyOpportunity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range subs {
		row := []string{
			s.Item,
			s.Subsidy,
			s.Category,
			strconv.FormatFloat(s.Amount, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
