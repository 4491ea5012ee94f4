// Package gateway translates collection operations into sheet store
// calls and reconciles local state with the authoritative response.
//
// Two remote result families exist ({success,error} and
// {status,message}); both are normalized to Result here so callers never
// branch on the wire shape. A transport failure is reported as an error
// wrapping common.ErrConnection; an application-level failure is a
// Result with OK=false and the remote message verbatim. Success is never
// inferred from the absence of an error.
package gateway

import (
	"context"

	"github.com/skyworks-mro/pirdesk/internal/pir"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// Result is the normalized outcome of a remote mutation.
type Result struct {
	OK      bool
	Message string
	DocURL  string
}

// Snapshot is the hydrated authoritative state of one document.
type Snapshot struct {
	Info                pir.GeneralInfo
	Findings            []pir.Finding
	MaterialsByFinding  map[string][]pir.Material
	AvailabilityOptions []string
}

// Gateway is the remote sheet store as seen by the editor. All calls
// are blocking; the caller keeps the triggering control disabled for the
// duration so at most one request per logical action is in flight.
type Gateway interface {
	// Login authenticates and returns a session token used by all
	// mutating calls.
	Login(ctx context.Context, username, password string) (string, error)

	// SetToken installs the session token on subsequent requests.
	SetToken(token string)

	// Load fetches the authoritative snapshot for a document key. It is
	// called on initial open and after every successful mutation; the
	// caller discards local state in favor of the result.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Master fetches the flat dashboard rows.
	Master(ctx context.Context) ([]wire.MasterRow, error)

	// SetStatus updates the status cell of one master row.
	SetStatus(ctx context.Context, row int, status string) error

	// SaveFindings performs a full-replace save of the finding list and
	// the info header: every record is re-sent, attachments included.
	SaveFindings(ctx context.Context, key string, info pir.GeneralInfo, findings []pir.Finding) (Result, error)

	// DeleteFinding removes one finding and its materials remotely; the
	// server renumbers what remains. Local labels are provisional until
	// the next Load.
	DeleteFinding(ctx context.Context, key, findingNo string) (Result, error)

	// GenerateDoc renders the document remotely and returns its URL in
	// Result.DocURL.
	GenerateDoc(ctx context.Context, key string) (Result, error)

	// SaveMaterials performs a full-replace save of one finding's
	// material list. Rows with neither part number nor description are
	// dropped before sending.
	SaveMaterials(ctx context.Context, key, findingLabel string, materials []pir.Material) (Result, error)

	// DeleteMaterialRow removes exactly one row; the server renumbers
	// the remainder.
	DeleteMaterialRow(ctx context.Context, key, findingLabel string, rowIndex int) (Result, error)

	// DeleteMaterials removes every row under a finding label.
	DeleteMaterials(ctx context.Context, key, findingLabel string) (Result, error)
}
