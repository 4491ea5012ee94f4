package gateway

import (
	"github.com/skyworks-mro/pirdesk/internal/attachment"
	"github.com/skyworks-mro/pirdesk/internal/pir"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// findingFromWire hydrates a loaded row. The remote reference stays
// opaque; it is resolved to a displayable form only at render time.
func findingFromWire(w wire.Finding) pir.Finding {
	return pir.Finding{
		FindingNo:      w.FindingNo,
		Identification: w.Identification,
		Action:         w.Action,
		Attachment:     attachment.Existing(w.ImageURL),
	}
}

// findingToWire dehydrates a record for a save request. Pending
// attachments travel as raw payload, existing ones as the stored
// reference, never both.
func findingToWire(f pir.Finding) wire.Finding {
	inline, ref := f.Attachment.WireForm()
	return wire.Finding{
		FindingNo:      f.FindingNo,
		Identification: f.Identification,
		Action:         f.Action,
		ImageBase64:    inline,
		ExistingImage:  ref,
	}
}

func materialFromWire(w wire.Material) pir.Material {
	return pir.Material{
		PartNo:       w.PartNo,
		Description:  w.Description,
		Qty:          w.Qty,
		UoM:          w.UoM,
		Availability: w.Availability,
		PR:           w.PR,
		PO:           w.PO,
		Note:         w.Note,
		DateChange:   pir.NormalizeDate(w.DateChange),
	}
}

func materialToWire(m pir.Material) wire.Material {
	return wire.Material{
		PartNo:       m.PartNo,
		Description:  m.Description,
		Qty:          m.Qty,
		UoM:          m.UoM,
		Availability: m.Availability,
		PR:           m.PR,
		PO:           m.PO,
		Note:         m.Note,
		DateChange:   m.DateChange,
	}
}

func snapshotFromWire(w *wire.Snapshot) *Snapshot {
	s := &Snapshot{
		Info:                pir.InfoFromRow(w.Info),
		Findings:            make([]pir.Finding, 0, len(w.Findings)),
		MaterialsByFinding:  make(map[string][]pir.Material, len(w.MaterialsByFinding)),
		AvailabilityOptions: w.AvailabilityOptions,
	}
	for _, f := range w.Findings {
		s.Findings = append(s.Findings, findingFromWire(f))
	}
	for label, mats := range w.MaterialsByFinding {
		rows := make([]pir.Material, 0, len(mats))
		for _, m := range mats {
			rows = append(rows, materialFromWire(m))
		}
		s.MaterialsByFinding[label] = rows
	}
	return s
}
