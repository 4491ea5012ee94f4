package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/skyworks-mro/pirdesk/internal/pir"
)

// ListFindings renders the findings as a compact table.
func (a *App) ListFindings(ctx context.Context) error {
	if err := a.requireDocument(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	renderFindingsTable(os.Stdout, a.findings.Records(), a.findingSession.IsSelected)
	return nil
}

// ShowCards renders the findings as full-width cards, one per record,
// including the resolved image URL. Both views project the same
// collection; neither holds state of its own.
func (a *App) ShowCards(ctx context.Context) error {
	if err := a.requireDocument(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	renderFindingCards(os.Stdout, a.findings.Records())
	return nil
}

// UseFinding chooses the active finding whose materials become editable.
func (a *App) UseFinding(ctx context.Context) error {
	if err := a.requireDocument(); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	idx, err := a.promptIndex(fmt.Sprintf("Enter finding number (1-%d)", a.findings.Len()), a.findings.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.activeFinding = idx
	a.materialSession.Cancel()
	a.loadMaterialsForActive()

	f, _ := a.findings.At(idx)
	fmt.Printf("Active finding: %s (%d material row(s))\n", f.FindingNo, a.materials.Len())
	return nil
}

// AddFinding appends an empty finding; its label is derived from its
// position. Requires edit mode.
func (a *App) AddFinding(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}
	a.findings.Append()
	f, _ := a.findings.At(a.findings.Len() - 1)
	fmt.Printf("Added %s\n", f.FindingNo)
	return nil
}

// EditFinding prompts for a finding and updates its text fields in place.
// Requires edit mode.
func (a *App) EditFinding(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}

	idx, err := a.promptIndex(fmt.Sprintf("Enter finding number (1-%d)", a.findings.Len()), a.findings.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	// Identification and action are narrative fields; both accept
	// multi-line input.
	current, _ := a.findings.At(idx)
	identification, err := a.promptMultilineField("Identification", current.Identification)
	if err != nil {
		return err
	}
	action, err := a.promptMultilineField("Action", current.Action)
	if err != nil {
		return err
	}

	a.findings.MutateAt(idx, func(f *pir.Finding) {
		f.Identification = identification
		f.Action = action
	})
	return nil
}

// AttachImage reads a local image file and attaches it to a finding as a
// pending payload. Any previously stored remote image is replaced, not
// kept alongside. Requires edit mode; the upload itself happens on save.
func (a *App) AttachImage(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}

	idx, err := a.promptIndex(fmt.Sprintf("Enter finding number (1-%d)", a.findings.Len()), a.findings.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	path, err := GetSimpleText(a.reader, "Enter image file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	uri := dataURI(data)
	a.findings.MutateAt(idx, func(f *pir.Finding) {
		f.Attachment.SetPending(uri)
	})
	fmt.Println("Image attached; it will upload on save.")
	return nil
}

// dataURI wraps raw bytes into a self-contained data URI with a sniffed
// content type.
func dataURI(data []byte) string {
	contentType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// DeleteFinding removes a single finding. A finding that exists in the
// store is deleted remotely (together with its materials) followed by a
// reload; the server renumbers what remains. A finding appended locally
// and never saved has nothing remote to delete — it is removed in place
// after the lighter discard confirmation.
func (a *App) DeleteFinding(ctx context.Context) error {
	if err := a.requireDocument(); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	idx, err := a.promptIndex(fmt.Sprintf("Enter finding number (1-%d)", a.findings.Len()), a.findings.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	f, _ := a.findings.At(idx)

	if !a.findings.Persisted(idx) {
		if f.Significant() {
			ok, err := GetConfirmation(a.reader, fmt.Sprintf("Discard unsaved %s?", f.FindingNo), os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		a.findings.RemoveAt(idx)
		if a.activeFinding == idx {
			a.activeFinding = -1
			a.loadMaterialsForActive()
		} else if a.activeFinding > idx {
			a.activeFinding--
		}
		fmt.Println("Removed unsaved finding.")
		return nil
	}

	if f.Significant() {
		ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete %s and its materials?", f.FindingNo), os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	res, err := a.gw.DeleteFinding(ctx, a.documentKey, f.FindingNo)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !res.OK {
		log.Printf("delete rejected: %s", res.Message)
		return nil
	}

	if a.activeFinding == idx {
		a.activeFinding = -1
	}
	if err := a.reload(ctx); err != nil {
		log.Printf("error reloading after delete: %v", err)
		return err
	}
	return nil
}

// ToggleSelect flips one finding's selection mark. Requires edit mode.
func (a *App) ToggleSelect(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}
	idx, err := a.promptIndex(fmt.Sprintf("Enter finding number (1-%d)", a.findings.Len()), a.findings.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.findingSession.Toggle(idx)
	return nil
}

// ToggleSelectAll selects every finding, or clears a full selection.
func (a *App) ToggleSelectAll(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}
	a.findingSession.ToggleAll()
	fmt.Printf("%d selected\n", len(a.findingSession.Selected()))
	return nil
}

// DeleteSelected removes every selected finding locally in one batch.
// The removal reaches the store on the next save. Confirmation is asked
// only when the selection contains user content.
func (a *App) DeleteSelected(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Not in edit mode (use 'edit').")
		return nil
	}
	if len(a.findingSession.Selected()) == 0 {
		fmt.Println("Nothing selected.")
		return nil
	}

	if a.findingSession.NeedsConfirmation() {
		ok, err := GetConfirmation(a.reader, "Delete selected findings?", os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	n := a.findingSession.DeleteSelected()
	if a.activeFinding >= a.findings.Len() {
		a.activeFinding = -1
		a.loadMaterialsForActive()
	}
	fmt.Printf("Removed %d finding(s); save to persist.\n", n)
	return nil
}
