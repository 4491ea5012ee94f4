package sheet

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/skyworks-mro/pirdesk/internal/logging"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// ImageStore persists binary payloads and returns a stable URL for them.
type ImageStore interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
}

// Service orchestrates the protocol operations on top of the repository:
// it resolves pending image payloads to stored URLs before a save, maps
// finding labels back to positions, and renders report documents.
type Service struct {
	repo   Repository
	images ImageStore
	logger logging.Logger
}

func NewService(repo Repository, images ImageStore, logger logging.Logger) *Service {
	return &Service{repo: repo, images: images, logger: logger}
}

func (s *Service) Snapshot(ctx context.Context, key string) (*wire.Snapshot, error) {
	return s.repo.GetSnapshot(ctx, key)
}

// SaveFindings performs the full-replace save. A finding arriving with an
// inline payload gets it uploaded and stored by URL; one arriving with an
// existing reference keeps it untouched.
func (s *Service) SaveFindings(ctx context.Context, key string, info []string, findings []wire.Finding) error {
	stored := make([]StoredFinding, 0, len(findings))
	for _, f := range findings {
		url := f.ExistingImage
		if f.ImageBase64 != "" {
			data, contentType, err := decodeDataURI(f.ImageBase64)
			if err != nil {
				return fmt.Errorf("decoding image of %s: %w", f.FindingNo, err)
			}
			url, err = s.images.Put(ctx, data, contentType)
			if err != nil {
				return fmt.Errorf("storing image of %s: %w", f.FindingNo, err)
			}
			s.logger.Info(ctx, "image stored", "doc", key, "finding", f.FindingNo, "bytes", len(data))
		}
		stored = append(stored, StoredFinding{
			Identification: f.Identification,
			Action:         f.Action,
			ImageURL:       url,
		})
	}

	return s.repo.ReplaceFindings(ctx, key, info, stored)
}

func (s *Service) DeleteFinding(ctx context.Context, key, findingNo string) error {
	pos, err := s.resolveFindingPos(ctx, key, findingNo)
	if err != nil {
		return err
	}
	return s.repo.DeleteFinding(ctx, key, pos)
}

// SaveMaterials performs the full-replace save of one finding's material
// rows. Rows with neither part number nor description are dropped; a
// well-behaved client filters them already, this is the backstop.
func (s *Service) SaveMaterials(ctx context.Context, key, findingNo string, rows []wire.Material) error {
	pos, err := s.resolveFindingPos(ctx, key, findingNo)
	if err != nil {
		return err
	}

	kept := make([]wire.Material, 0, len(rows))
	for _, m := range rows {
		if m.PartNo == "" && m.Description == "" {
			continue
		}
		kept = append(kept, m)
	}

	return s.repo.ReplaceMaterials(ctx, key, pos, kept)
}

func (s *Service) DeleteMaterialRow(ctx context.Context, key, findingNo string, rowIndex int) error {
	pos, err := s.resolveFindingPos(ctx, key, findingNo)
	if err != nil {
		return err
	}
	return s.repo.DeleteMaterialRow(ctx, key, pos, rowIndex)
}

func (s *Service) DeleteMaterials(ctx context.Context, key, findingNo string) error {
	pos, err := s.resolveFindingPos(ctx, key, findingNo)
	if err != nil {
		return err
	}
	return s.repo.DeleteMaterials(ctx, key, pos)
}

// resolveFindingPos maps a finding label back to its zero-based position
// using the document's own parent key as the prefix.
func (s *Service) resolveFindingPos(ctx context.Context, key, findingNo string) (int, error) {
	parentKey, err := s.repo.ParentKey(ctx, key)
	if err != nil {
		return 0, err
	}
	return findingPosFromLabel(parentKey, findingNo)
}

func (s *Service) Master(ctx context.Context) ([]wire.MasterRow, error) {
	return s.repo.Master(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, row int, status string) error {
	return s.repo.UpdateStatus(ctx, row, status)
}

// GenerateDoc renders the document as a standalone HTML report, stores
// it, and returns its URL.
func (s *Service) GenerateDoc(ctx context.Context, key string) (string, error) {
	snap, err := s.repo.GetSnapshot(ctx, key)
	if err != nil {
		return "", err
	}

	url, err := s.images.Put(ctx, renderReport(snap), "text/html; charset=utf-8")
	if err != nil {
		return "", fmt.Errorf("storing report: %w", err)
	}
	return url, nil
}

// findingPosFromLabel recovers the zero-based position from a finding
// label. The label is the parent key followed by the 1-based position,
// zero-padded to at least two digits. The parent key may itself end in
// digits, so the position is whatever remains after stripping the known
// prefix; this keeps positions past the pad width addressable.
func findingPosFromLabel(parentKey, label string) (int, error) {
	suffix, ok := strings.CutPrefix(label, parentKey)
	if !ok || suffix == "" {
		return 0, fmt.Errorf("finding label %q does not extend parent key %q", label, parentKey)
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("finding label %q has no position suffix", label)
	}
	return n - 1, nil
}

// decodeDataURI splits a "data:<type>;base64,<payload>" URI into its
// decoded bytes and content type.
func decodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", fmt.Errorf("data URI is not base64 encoded")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding payload: %w", err)
	}
	return data, contentType, nil
}

func renderReport(snap *wire.Snapshot) []byte {
	var b strings.Builder

	woNo := ""
	if len(snap.Info) > 2 {
		woNo = snap.Info[2]
	}

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<title>PIR %s</title></head><body>\n", html.EscapeString(woNo))
	fmt.Fprintf(&b, "<h1>Post Inspection Report %s</h1>\n", html.EscapeString(woNo))

	b.WriteString("<table border=\"1\"><tbody>\n")
	for i, name := range wire.InfoFieldNames {
		value := ""
		if i < len(snap.Info) {
			value = snap.Info[i]
		}
		fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>\n",
			html.EscapeString(name), html.EscapeString(value))
	}
	b.WriteString("</tbody></table>\n")

	for _, f := range snap.Findings {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(f.FindingNo))
		fmt.Fprintf(&b, "<p><b>Identification:</b> %s</p>\n", html.EscapeString(f.Identification))
		fmt.Fprintf(&b, "<p><b>Action:</b> %s</p>\n", html.EscapeString(f.Action))
		if f.ImageURL != "" {
			fmt.Fprintf(&b, "<p><img src=\"%s\" alt=\"%s\"></p>\n",
				html.EscapeString(f.ImageURL), html.EscapeString(f.FindingNo))
		}

		mats := snap.MaterialsByFinding[f.FindingNo]
		if len(mats) == 0 {
			continue
		}
		b.WriteString("<table border=\"1\"><thead><tr><th>Part No</th><th>Description</th><th>Qty</th><th>UoM</th><th>Availability</th></tr></thead><tbody>\n")
		for _, m := range mats {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(m.PartNo), html.EscapeString(m.Description),
				html.EscapeString(m.Qty), html.EscapeString(m.UoM), html.EscapeString(m.Availability))
		}
		b.WriteString("</tbody></table>\n")
	}

	b.WriteString("</body></html>\n")
	return []byte(b.String())
}
