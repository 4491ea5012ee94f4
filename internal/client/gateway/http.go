package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skyworks-mro/pirdesk/internal/common"
	"github.com/skyworks-mro/pirdesk/internal/pir"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// DefaultTimeout bounds every remote call. The source system had no
// timeout and a hung request blocked the editor forever; this is the
// documented hardening deviation.
const DefaultTimeout = 30 * time.Second

// HTTPGateway talks to the sheet store web endpoint.
type HTTPGateway struct {
	endpointURL string
	hc          *http.Client
	token       string
}

var _ Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway builds a gateway for the given endpoint URL. A
// non-positive timeout falls back to DefaultTimeout.
func NewHTTPGateway(endpointURL string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPGateway{
		endpointURL: endpointURL,
		hc:          &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) SetToken(token string) { g.token = token }

// get issues a GET with the given query values and decodes the JSON
// response into out. Any transport-level problem maps to ErrConnection.
func (g *HTTPGateway) get(ctx context.Context, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpointURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}

	resp, err := g.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", common.ErrConnection, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	return nil
}

func (g *HTTPGateway) post(ctx context.Context, contentType string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpointURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	req.Header.Set("Content-Type", contentType)
	if g.token != "" {
		req.Header.Set(common.SessionTokenHeaderName, g.token)
	}

	resp, err := g.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: HTTP %d: %s", common.ErrConnection, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	return nil
}

// postForm sends the editor request family (form-encoded).
func (g *HTTPGateway) postForm(ctx context.Context, form url.Values) (Result, error) {
	var res wire.EditorResult
	if err := g.post(ctx, "application/x-www-form-urlencoded", []byte(form.Encode()), &res); err != nil {
		return Result{}, err
	}
	return Result{OK: res.Success, Message: res.Error, DocURL: res.CopiedDocURL}, nil
}

// postJSON sends the material request family (JSON body).
func (g *HTTPGateway) postJSON(ctx context.Context, body any) (Result, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}
	var res wire.MaterialResult
	if err := g.post(ctx, "application/json", b, &res); err != nil {
		return Result{}, err
	}
	return Result{OK: res.Status == wire.StatusSuccess, Message: res.Message}, nil
}

func (g *HTTPGateway) Login(ctx context.Context, username, password string) (string, error) {
	b, err := json.Marshal(wire.LoginRequest{Action: wire.ActionLogin, Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}
	var res wire.LoginResult
	if err := g.post(ctx, "application/json", b, &res); err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", common.ErrorUnauthorized, res.Error)
	}
	g.token = res.Token
	return res.Token, nil
}

func (g *HTTPGateway) Load(ctx context.Context, key string) (*Snapshot, error) {
	if key == "" {
		return nil, common.ErrNoDocumentKey
	}
	var snap wire.Snapshot
	q := url.Values{"action": {wire.ActionGet}, "id": {key}}
	if err := g.get(ctx, q, &snap); err != nil {
		return nil, err
	}
	return snapshotFromWire(&snap), nil
}

func (g *HTTPGateway) Master(ctx context.Context) ([]wire.MasterRow, error) {
	var rows []wire.MasterRow
	q := url.Values{"action": {wire.ActionGetMaster}}
	if err := g.get(ctx, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *HTTPGateway) SetStatus(ctx context.Context, row int, status string) error {
	var res wire.EditorResult
	q := url.Values{
		"action": {wire.ActionUpdateStatus},
		"row":    {strconv.Itoa(row)},
		"status": {status},
	}
	if err := g.get(ctx, q, &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("status update failed: %s", res.Error)
	}
	return nil
}

func (g *HTTPGateway) SaveFindings(ctx context.Context, key string, info pir.GeneralInfo, findings []pir.Finding) (Result, error) {
	rows := make([]wire.Finding, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, findingToWire(f))
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return Result{}, fmt.Errorf("encoding findings: %w", err)
	}

	form := url.Values{
		"action":  {wire.ActionUpdatePIR},
		"sheetId": {key},
	}
	infoRow := info.Row()
	for i, name := range wire.InfoFieldNames {
		form.Set(name, infoRow[i])
	}
	form.Set("findings", string(encoded))

	return g.postForm(ctx, form)
}

func (g *HTTPGateway) DeleteFinding(ctx context.Context, key, findingNo string) (Result, error) {
	form := url.Values{
		"action":    {wire.ActionDeleteFinding},
		"sheetId":   {key},
		"findingNo": {findingNo},
	}
	return g.postForm(ctx, form)
}

func (g *HTTPGateway) GenerateDoc(ctx context.Context, key string) (Result, error) {
	form := url.Values{
		"action":  {wire.ActionGenerateDoc},
		"sheetId": {key},
	}
	return g.postForm(ctx, form)
}

func (g *HTTPGateway) SaveMaterials(ctx context.Context, key, findingLabel string, materials []pir.Material) (Result, error) {
	rows := make([]wire.Material, 0, len(materials))
	for _, m := range materials {
		if m.Discardable() {
			continue
		}
		rows = append(rows, materialToWire(m))
	}
	return g.postJSON(ctx, wire.SaveMaterialsRequest{
		Action:      wire.ActionSave,
		SheetID:     key,
		FindingName: findingLabel,
		Materials:   rows,
	})
}

func (g *HTTPGateway) DeleteMaterialRow(ctx context.Context, key, findingLabel string, rowIndex int) (Result, error) {
	return g.postJSON(ctx, wire.DeleteRowRequest{
		Action:      wire.ActionDeleteRow,
		SheetID:     key,
		FindingName: findingLabel,
		RowIndex:    rowIndex,
	})
}

func (g *HTTPGateway) DeleteMaterials(ctx context.Context, key, findingLabel string) (Result, error) {
	return g.postJSON(ctx, wire.DeleteMaterialsRequest{
		Action:      wire.ActionDelete,
		SheetID:     key,
		FindingName: findingLabel,
	})
}
