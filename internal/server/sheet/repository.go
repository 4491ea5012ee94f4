// Package sheet is the authoritative store behind the PIR protocol: one
// row per document, findings and material rows identified purely by
// position within their parent. Every mutation renumbers in the same
// transaction so positional identity never drifts.
package sheet

import (
	"context"

	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// StoredFinding is a finding row as persisted: the attachment is already
// resolved to its final URL.
type StoredFinding struct {
	Identification string
	Action         string
	ImageURL       string
}

// Repository is the persistence surface of the sheet store.
type Repository interface {
	// GetSnapshot loads the full document: info row, findings,
	// materials grouped by finding label, and the availability options.
	GetSnapshot(ctx context.Context, key string) (*wire.Snapshot, error)

	// ParentKey returns the document's label prefix (its W/O number, or
	// the fallback for documents without one). Labels arriving from the
	// client resolve to positions relative to it.
	ParentKey(ctx context.Context, key string) (string, error)

	// ReplaceFindings atomically overwrites the info header and the
	// entire finding list. Material blocks of findings beyond the new
	// length are dropped.
	ReplaceFindings(ctx context.Context, key string, info []string, findings []StoredFinding) error

	// DeleteFinding removes the finding at pos together with its
	// materials and shifts everything behind it one position down.
	DeleteFinding(ctx context.Context, key string, pos int) error

	// ReplaceMaterials atomically overwrites one finding's material rows.
	ReplaceMaterials(ctx context.Context, key string, findingPos int, rows []wire.Material) error

	// DeleteMaterialRow removes one material row and shifts the rows
	// behind it one position down.
	DeleteMaterialRow(ctx context.Context, key string, findingPos, rowIndex int) error

	// DeleteMaterials removes every material row of one finding.
	DeleteMaterials(ctx context.Context, key string, findingPos int) error

	// Master lists the dashboard rows in document creation order.
	Master(ctx context.Context) ([]wire.MasterRow, error)

	// UpdateStatus sets the status of the 1-based dashboard row.
	UpdateStatus(ctx context.Context, row int, status string) error
}
