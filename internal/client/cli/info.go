package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// ShowInfo prints the general info header of the open document.
func (a *App) ShowInfo(ctx context.Context) error {
	if err := a.requireDocument(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	renderInfo(os.Stdout, a.info)
	return nil
}

// EditInfo walks through the header fields, keeping each one on an empty
// answer. The header is persisted together with the findings on 'save'.
func (a *App) EditInfo(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"Customer", &a.info.Customer},
		{"A/C Reg", &a.info.AcReg},
		{"W/O No", &a.info.WoNo},
		{"Part Description", &a.info.PartDesc},
		{"Part No", &a.info.PartNo},
		{"Serial No", &a.info.SerialNo},
		{"Qty", &a.info.Qty},
		{"Date Received", &a.info.DateReceived},
		{"Reason for Removal", &a.info.Reason},
		{"AD Status", &a.info.AdStatus},
		{"Attached Parts", &a.info.AttachedParts},
		{"Missing Parts", &a.info.MissingParts},
		{"Mod Status", &a.info.ModStatus},
	}

	for _, f := range fields {
		v, err := a.promptField(f.name, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	// The work-order number is the parent key of every finding label.
	a.findings.Renumber()
	return nil
}
