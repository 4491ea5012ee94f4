package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/skyworks-mro/pirdesk/internal/attachment"
	"github.com/skyworks-mro/pirdesk/internal/pir"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// The table and card views are pure projections of the finding
// collection. They never hold state; every render starts from a fresh
// Records() snapshot, so both stay consistent by construction.

func renderFindingsTable(w io.Writer, findings []pir.Finding, selected func(int) bool) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tFINDING\tIDENTIFICATION\tACTION\tIMAGE")
	for i, f := range findings {
		mark := " "
		if selected != nil && selected(i) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\t%s\n",
			mark, i+1, f.FindingNo, trunc(f.Identification, 40), trunc(f.Action, 40), attachmentMark(f.Attachment))
	}
	tw.Flush()
}

func renderFindingCards(w io.Writer, findings []pir.Finding) {
	for i, f := range findings {
		fmt.Fprintf(w, "--- %s ---\n", f.FindingNo)
		fmt.Fprintf(w, "Identification: %s\n", f.Identification)
		fmt.Fprintf(w, "Action:         %s\n", f.Action)
		if url := f.Attachment.DisplayURL(); url != "" {
			fmt.Fprintf(w, "Image:          %s\n", trunc(url, 80))
		}
		if i < len(findings)-1 {
			fmt.Fprintln(w)
		}
	}
}

func renderMaterialsTable(w io.Writer, materials []pir.Material, selected func(int) bool) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tPART NO\tDESCRIPTION\tQTY\tUOM\tAVAIL\tPR\tPO\tNOTE\tDATE")
	for i, m := range materials {
		mark := " "
		if selected != nil && selected(i) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, i+1, m.PartNo, trunc(m.Description, 30), m.Qty, m.UoM,
			m.Availability, m.PR, m.PO, trunc(m.Note, 20), m.DateChange)
	}
	tw.Flush()
}

func renderMasterTable(w io.Writer, rows []wire.MasterRow) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tW/O NO\tA/C REG\tPART DESCRIPTION\tSTATUS\tSHEET ID")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, r.WoNo, r.AcReg, trunc(r.PartDesc, 40), r.Status, r.SheetID)
	}
	tw.Flush()
}

func renderInfo(w io.Writer, info pir.GeneralInfo) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Customer:\t%s\n", info.Customer)
	fmt.Fprintf(tw, "A/C Reg:\t%s\n", info.AcReg)
	fmt.Fprintf(tw, "W/O No:\t%s\n", info.WoNo)
	fmt.Fprintf(tw, "Part Description:\t%s\n", info.PartDesc)
	fmt.Fprintf(tw, "Part No:\t%s\n", info.PartNo)
	fmt.Fprintf(tw, "Serial No:\t%s\n", info.SerialNo)
	fmt.Fprintf(tw, "Qty:\t%s\n", info.Qty)
	fmt.Fprintf(tw, "Date Received:\t%s\n", info.DateReceived)
	fmt.Fprintf(tw, "Reason for Removal:\t%s\n", info.Reason)
	fmt.Fprintf(tw, "AD Status:\t%s\n", info.AdStatus)
	fmt.Fprintf(tw, "Attached Parts:\t%s\n", info.AttachedParts)
	fmt.Fprintf(tw, "Missing Parts:\t%s\n", info.MissingParts)
	fmt.Fprintf(tw, "Mod Status:\t%s\n", info.ModStatus)
	tw.Flush()
}

func attachmentMark(s attachment.State) string {
	switch s.Kind() {
	case attachment.KindExisting:
		return "image"
	case attachment.KindPending:
		return "pending"
	default:
		return "-"
	}
}

// trunc shortens s to at most n runes, never cutting a rune in half.
func trunc(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
