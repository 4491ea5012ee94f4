// Package pir defines the record shapes of a Post-Inspection-Report
// document: the general info header, inspection findings and their
// material line-items. Records are pure data; identity is positional.
package pir

import (
	"fmt"

	"github.com/skyworks-mro/pirdesk/internal/attachment"
)

// DefaultParentKey is used to derive finding labels when the document has
// no work-order number yet.
const DefaultParentKey = "PIR"

// FindingLabel derives the label of the finding at the given zero-based
// position: parent key followed by the 1-based position, zero-padded to
// two digits. The label is the record's only remote identity.
func FindingLabel(parentKey string, pos int) string {
	if parentKey == "" {
		parentKey = DefaultParentKey
	}
	return fmt.Sprintf("%s%02d", parentKey, pos+1)
}

// Finding is a single inspection observation. FindingNo is derived from
// list position and must never be assigned independently.
type Finding struct {
	FindingNo      string
	Identification string
	Action         string
	Attachment     attachment.State
}

// Significant reports whether the finding carries user content that a
// destructive operation should confirm before discarding.
func (f Finding) Significant() bool {
	return f.Identification != "" || f.Action != "" || !f.Attachment.IsNone()
}

// Material is one procurement line-item belonging to a finding. Qty is
// text end-to-end; no arithmetic is ever performed on it here.
type Material struct {
	PartNo       string
	Description  string
	Qty          string
	UoM          string
	Availability string
	PR           string
	PO           string
	Note         string
	DateChange   string
}

// Significant reports whether the row has content in any of the fields
// that matter for delete confirmation.
func (m Material) Significant() bool {
	return m.PartNo != "" || m.Description != "" || m.Qty != ""
}

// Discardable reports whether the row would be dropped by the save
// filter: rows with neither part number nor description are not sent.
func (m Material) Discardable() bool {
	return m.PartNo == "" && m.Description == ""
}
