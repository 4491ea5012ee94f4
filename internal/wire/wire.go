// Package wire defines the request and response shapes of the sheet
// store protocol. One GET endpoint and one POST endpoint dispatch on an
// action discriminator; responses come in two historical families which
// clients are expected to normalize (see client/gateway).
package wire

// Action discriminator values.
const (
	ActionGet          = "get"
	ActionGetMaster    = "getMaster"
	ActionUpdateStatus = "updateStatus"
	ActionLogin        = "login"

	// Editor family: form-encoded requests, EditorResult responses.
	ActionUpdatePIR     = "updatePIR"
	ActionDeleteFinding = "deleteFinding"
	ActionGenerateDoc   = "generateDoc"

	// Material family: JSON-body requests, MaterialResult responses.
	ActionSave      = "save"
	ActionDelete    = "delete"
	ActionDeleteRow = "delete_row"
)

// StatusSuccess is the success marker of the material result family.
const StatusSuccess = "success"

// InfoFieldNames are the form field names of the positional info header,
// in wire order. Index i of the info row travels as field InfoFieldNames[i].
var InfoFieldNames = []string{
	"customer", "acReg", "woNo", "partDesc", "partNo", "serialNo",
	"qty", "dateReceived", "reason", "adStatus", "attachedParts",
	"missingParts", "modStatus", "docId",
}

// Finding is a finding row on the wire. ImageURL carries the persisted
// remote reference on load; ImageBase64 and ExistingImage split the
// attachment state on save (pending payload vs. untouched reference).
type Finding struct {
	FindingNo      string `json:"findingNo"`
	Identification string `json:"identification"`
	Action         string `json:"action"`
	ImageURL       string `json:"imageUrl,omitempty"`
	ImageBase64    string `json:"imageBase64,omitempty"`
	ExistingImage  string `json:"existingImage,omitempty"`
}

// Material is a material row on the wire.
type Material struct {
	PartNo       string `json:"partNo"`
	Description  string `json:"description"`
	Qty          string `json:"qty"`
	UoM          string `json:"uom"`
	Availability string `json:"availability"`
	PR           string `json:"pr"`
	PO           string `json:"po"`
	Note         string `json:"note"`
	DateChange   string `json:"dateChange"`
}

// Snapshot is the authoritative load response for one document. Info is
// a fixed-order positional array; position defines field identity.
type Snapshot struct {
	Info                []string              `json:"info"`
	Findings            []Finding             `json:"findings"`
	MaterialsByFinding  map[string][]Material `json:"materialsByFinding,omitempty"`
	AvailabilityOptions []string              `json:"availabilityOptions,omitempty"`
}

// MasterRow is one dashboard row. The JSON keys mirror the sheet's
// column headers verbatim.
type MasterRow struct {
	WoNo     string `json:"W/O No"`
	AcReg    string `json:"A/C Reg"`
	PartDesc string `json:"Part Description"`
	Status   string `json:"Status"`
	SheetURL string `json:"Sheet URL"`
	SheetID  string `json:"Sheet ID"`
}

// EditorResult is the response family of updatePIR, deleteFinding and
// generateDoc.
type EditorResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	CopiedDocURL string `json:"copiedDocUrl,omitempty"`
}

// MaterialResult is the response family of save, delete and delete_row.
type MaterialResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SaveMaterialsRequest is the JSON body of action=save.
type SaveMaterialsRequest struct {
	Action      string     `json:"action"`
	SheetID     string     `json:"sheetId"`
	FindingName string     `json:"findingName"`
	Materials   []Material `json:"materials"`
}

// DeleteMaterialsRequest is the JSON body of action=delete.
type DeleteMaterialsRequest struct {
	Action      string `json:"action"`
	SheetID     string `json:"sheetId"`
	FindingName string `json:"findingName"`
}

// DeleteRowRequest is the JSON body of action=delete_row. RowIndex is
// zero-based; the server renumbers the remaining rows.
type DeleteRowRequest struct {
	Action      string `json:"action"`
	SheetID     string `json:"sheetId"`
	FindingName string `json:"findingName"`
	RowIndex    int    `json:"rowIndex"`
}

// LoginRequest is the JSON body of action=login.
type LoginRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult carries the issued session token.
type LoginResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Token   string `json:"token,omitempty"`
}
