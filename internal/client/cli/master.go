package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Master lists the dashboard rows of the master sheet, optionally
// narrowed by a search term.
func (a *App) Master(ctx context.Context) error {
	term, err := GetSimpleText(a.reader, "Search (Enter for all)", os.Stdout)
	if err != nil {
		return err
	}

	rows, err := a.gw.Master(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if term != "" {
		needle := strings.ToLower(term)
		filtered := rows[:0]
		for _, r := range rows {
			haystack := strings.ToLower(r.WoNo + " " + r.AcReg + " " + r.PartDesc + " " + r.Status)
			if strings.Contains(haystack, needle) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	renderMasterTable(os.Stdout, rows)
	return nil
}

// SetStatus updates the status cell of one master row.
func (a *App) SetStatus(ctx context.Context) error {
	rowText, err := GetSimpleText(a.reader, "Enter master row number", os.Stdout)
	if err != nil {
		return err
	}
	row, err := strconv.Atoi(rowText)
	if err != nil || row < 1 {
		err = fmt.Errorf("expected a positive row number")
		log.Printf("error: %v", err)
		return err
	}

	status, err := GetSimpleText(a.reader, "Enter new status", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.gw.SetStatus(ctx, row, status); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}
