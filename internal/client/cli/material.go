package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/skyworks-mro/pirdesk/internal/pir"
)

// activeLabel returns the label of the active finding; material requests
// are addressed by it.
func (a *App) activeLabel() (string, error) {
	if err := a.requireActiveFinding(); err != nil {
		return "", err
	}
	f, ok := a.findings.At(a.activeFinding)
	if !ok {
		return "", fmt.Errorf("active finding out of range")
	}
	return f.FindingNo, nil
}

// ListMaterials renders the material rows of the active finding.
func (a *App) ListMaterials(ctx context.Context) error {
	label, err := a.activeLabel()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Materials of %s:\n", label)
	renderMaterialsTable(os.Stdout, a.materials.Records(), a.materialSession.IsSelected)
	return nil
}

// BeginMaterialEdit switches the material collection into edit mode. The
// gate requires an active finding chosen via 'use'.
func (a *App) BeginMaterialEdit(ctx context.Context) error {
	if err := a.materialSession.BeginEdit(); err != nil {
		log.Printf("error: %v (choose a finding with 'use' first)", err)
		return err
	}
	fmt.Println("Editing materials. Save with 'msave', discard selection with 'mcancel'.")
	return nil
}

// CancelMaterialEdit leaves material edit mode without saving.
func (a *App) CancelMaterialEdit(ctx context.Context) error {
	a.materialSession.Cancel()
	return nil
}

// SaveMaterials performs the full-replace save of the active finding's
// material rows and reloads the authoritative state. Rows with neither
// part number nor description are filtered out by the gateway. Like the
// finding save, failure leaves local rows and edit mode untouched.
func (a *App) SaveMaterials(ctx context.Context) error {
	if !a.materialSession.Editing() {
		fmt.Println("Nothing to save: not in edit mode (use 'medit').")
		return nil
	}

	label, err := a.activeLabel()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	res, err := a.gw.SaveMaterials(ctx, a.documentKey, label, a.materials.Records())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !res.OK {
		log.Printf("save rejected: %s", res.Message)
		return nil
	}

	a.materialSession.CompleteSave()
	if err := a.reload(ctx); err != nil {
		log.Printf("error reloading after save: %v", err)
		return err
	}
	fmt.Println("Saved.")
	return nil
}

// AddMaterial appends an empty material row. Requires edit mode.
func (a *App) AddMaterial(ctx context.Context) error {
	if !a.materialSession.Editing() {
		fmt.Println("Not in edit mode (use 'medit').")
		return nil
	}
	a.materials.Append()
	fmt.Printf("Added row %d\n", a.materials.Len())
	return nil
}

// EditMaterial prompts for a row and updates its fields in place.
// Requires edit mode.
func (a *App) EditMaterial(ctx context.Context) error {
	if !a.materialSession.Editing() {
		fmt.Println("Not in edit mode (use 'medit').")
		return nil
	}

	idx, err := a.promptIndex(fmt.Sprintf("Enter row number (1-%d)", a.materials.Len()), a.materials.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	current, _ := a.materials.At(idx)

	partNo, err := a.promptField("Part No", current.PartNo)
	if err != nil {
		return err
	}
	description, err := a.promptField("Description", current.Description)
	if err != nil {
		return err
	}
	qty, err := a.promptField("Qty", current.Qty)
	if err != nil {
		return err
	}
	uom, err := a.promptField("UoM", current.UoM)
	if err != nil {
		return err
	}
	availability, err := a.promptField(fmt.Sprintf("Availability %v", a.availability), current.Availability)
	if err != nil {
		return err
	}
	pr, err := a.promptField("PR", current.PR)
	if err != nil {
		return err
	}
	po, err := a.promptField("PO", current.PO)
	if err != nil {
		return err
	}
	note, err := a.promptField("Note", current.Note)
	if err != nil {
		return err
	}
	dateChange, err := a.promptField("Date of change", current.DateChange)
	if err != nil {
		return err
	}

	a.materials.MutateAt(idx, func(m *pir.Material) {
		m.PartNo = partNo
		m.Description = description
		m.Qty = qty
		m.UoM = uom
		m.Availability = availability
		m.PR = pr
		m.PO = po
		m.Note = note
		m.DateChange = pir.NormalizeDate(dateChange)
	})
	return nil
}

// RemoveMaterialRow deletes exactly one row. A row that exists in the
// store is deleted remotely followed by a reload; the server renumbers
// the remainder. A row added locally and never saved is removed in
// place after the lighter discard confirmation.
func (a *App) RemoveMaterialRow(ctx context.Context) error {
	label, err := a.activeLabel()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	idx, err := a.promptIndex(fmt.Sprintf("Enter row number (1-%d)", a.materials.Len()), a.materials.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	row, _ := a.materials.At(idx)

	if !a.materials.Persisted(idx) {
		if row.Significant() {
			ok, err := GetConfirmation(a.reader, fmt.Sprintf("Discard unsaved row %d?", idx+1), os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		a.materials.RemoveAt(idx)
		fmt.Println("Removed unsaved row.")
		return nil
	}

	if row.Significant() {
		ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete row %d?", idx+1), os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	res, err := a.gw.DeleteMaterialRow(ctx, a.documentKey, label, idx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !res.OK {
		log.Printf("delete rejected: %s", res.Message)
		return nil
	}

	if err := a.reload(ctx); err != nil {
		log.Printf("error reloading after delete: %v", err)
		return err
	}
	return nil
}

// ClearMaterials deletes every remote row under the active finding.
func (a *App) ClearMaterials(ctx context.Context) error {
	label, err := a.activeLabel()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete all materials of %s?", label), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	res, err := a.gw.DeleteMaterials(ctx, a.documentKey, label)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !res.OK {
		log.Printf("delete rejected: %s", res.Message)
		return nil
	}

	if err := a.reload(ctx); err != nil {
		log.Printf("error reloading after delete: %v", err)
		return err
	}
	return nil
}

// ToggleMaterial flips one row's selection mark. Requires edit mode.
func (a *App) ToggleMaterial(ctx context.Context) error {
	if !a.materialSession.Editing() {
		fmt.Println("Not in edit mode (use 'medit').")
		return nil
	}
	idx, err := a.promptIndex(fmt.Sprintf("Enter row number (1-%d)", a.materials.Len()), a.materials.Len())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.materialSession.Toggle(idx)
	return nil
}

// ToggleMaterialAll selects every row, or clears a full selection.
func (a *App) ToggleMaterialAll(ctx context.Context) error {
	if !a.materialSession.Editing() {
		fmt.Println("Not in edit mode (use 'medit').")
		return nil
	}
	a.materialSession.ToggleAll()
	fmt.Printf("%d selected\n", len(a.materialSession.Selected()))
	return nil
}

// DeleteSelectedMaterials removes every selected row locally in one
// batch; the removal reaches the store on the next msave.
func (a *App) DeleteSelectedMaterials(ctx context.Context) error {
	if !a.materialSession.Editing() {
		fmt.Println("Not in edit mode (use 'medit').")
		return nil
	}
	if len(a.materialSession.Selected()) == 0 {
		fmt.Println("Nothing selected.")
		return nil
	}

	if a.materialSession.NeedsConfirmation() {
		ok, err := GetConfirmation(a.reader, "Delete selected rows?", os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	n := a.materialSession.DeleteSelected()
	fmt.Printf("Removed %d row(s); msave to persist.\n", n)
	return nil
}
