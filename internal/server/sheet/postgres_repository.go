package sheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skyworks-mro/pirdesk/internal/common"
	"github.com/skyworks-mro/pirdesk/internal/dbx"
	"github.com/skyworks-mro/pirdesk/internal/pir"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

// infoColumns are the document columns holding the positional info row,
// in wire order.
const infoColumns = `customer, ac_reg, wo_no, part_desc, part_no, serial_no, qty,
		date_received, reason, ad_status, attached_parts, missing_parts, mod_status, doc_id`

func (r *PostgresRepository) GetSnapshot(ctx context.Context, key string) (*wire.Snapshot, error) {

	query := `SELECT ` + infoColumns + ` FROM documents WHERE id = $1`

	info := make([]string, pir.InfoRowLen)
	dest := make([]any, pir.InfoRowLen)
	for i := range info {
		dest[i] = &info[i]
	}

	if err := r.db.QueryRowContext(ctx, query, key).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	parentKey := info[2]
	if parentKey == "" {
		parentKey = pir.DefaultParentKey
	}

	snap := &wire.Snapshot{
		Info:               info,
		Findings:           []wire.Finding{},
		MaterialsByFinding: map[string][]wire.Material{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT pos, identification, action, image_url FROM findings
		 WHERE document_id = $1 ORDER BY pos`, key)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var f wire.Finding
		if err := rows.Scan(&pos, &f.Identification, &f.Action, &f.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		// Labels are never stored; they are derived from position on
		// every read.
		f.FindingNo = pir.FindingLabel(parentKey, pos)
		snap.Findings = append(snap.Findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	mrows, err := r.db.QueryContext(ctx,
		`SELECT finding_pos, part_no, description, qty, uom, availability, pr, po, note, date_change
		 FROM materials WHERE document_id = $1 ORDER BY finding_pos, pos`, key)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var findingPos int
		var m wire.Material
		if err := mrows.Scan(&findingPos, &m.PartNo, &m.Description, &m.Qty, &m.UoM,
			&m.Availability, &m.PR, &m.PO, &m.Note, &m.DateChange); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		label := pir.FindingLabel(parentKey, findingPos)
		snap.MaterialsByFinding[label] = append(snap.MaterialsByFinding[label], m)
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	options, err := r.availabilityOptions(ctx)
	if err != nil {
		return nil, err
	}
	snap.AvailabilityOptions = options

	return snap, nil
}

func (r *PostgresRepository) ParentKey(ctx context.Context, key string) (string, error) {
	var woNo string
	if err := r.db.QueryRowContext(ctx,
		`SELECT wo_no FROM documents WHERE id = $1`, key).Scan(&woNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	if woNo == "" {
		return pir.DefaultParentKey, nil
	}
	return woNo, nil
}

func (r *PostgresRepository) availabilityOptions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT label FROM availability_options ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var options []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		options = append(options, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return options, nil
}

func (r *PostgresRepository) ReplaceFindings(ctx context.Context, key string, info []string, findings []StoredFinding) error {
	if len(info) != pir.InfoRowLen {
		return fmt.Errorf("info row must have %d fields, got %d", pir.InfoRowLen, len(info))
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `UPDATE documents SET
			customer = $2, ac_reg = $3, wo_no = $4, part_desc = $5, part_no = $6,
			serial_no = $7, qty = $8, date_received = $9, reason = $10, ad_status = $11,
			attached_parts = $12, missing_parts = $13, mod_status = $14, doc_id = $15
			WHERE id = $1`

		args := make([]any, 0, pir.InfoRowLen+1)
		args = append(args, key)
		for _, v := range info {
			args = append(args, v)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return common.ErrorNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE document_id = $1`, key); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		for pos, f := range findings {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO findings (document_id, pos, identification, action, image_url)
				 VALUES ($1, $2, $3, $4, $5)`,
				key, pos, f.Identification, f.Action, f.ImageURL)
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}

		// Material blocks of findings that no longer exist are dropped.
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM materials WHERE document_id = $1 AND finding_pos >= $2`,
			key, len(findings)); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return nil
	})
}

func (r *PostgresRepository) DeleteFinding(ctx context.Context, key string, pos int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		res, err := tx.ExecContext(ctx,
			`DELETE FROM findings WHERE document_id = $1 AND pos = $2`, key, pos)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return common.ErrorNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM materials WHERE document_id = $1 AND finding_pos = $2`, key, pos); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE findings SET pos = pos - 1 WHERE document_id = $1 AND pos > $2`, key, pos); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE materials SET finding_pos = finding_pos - 1 WHERE document_id = $1 AND finding_pos > $2`,
			key, pos); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return nil
	})
}

func (r *PostgresRepository) ReplaceMaterials(ctx context.Context, key string, findingPos int, rows []wire.Material) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM materials WHERE document_id = $1 AND finding_pos = $2`, key, findingPos); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		for pos, m := range rows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO materials (document_id, finding_pos, pos, part_no, description, qty, uom, availability, pr, po, note, date_change)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				key, findingPos, pos, m.PartNo, m.Description, m.Qty, m.UoM,
				m.Availability, m.PR, m.PO, m.Note, m.DateChange)
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}

		return nil
	})
}

func (r *PostgresRepository) DeleteMaterialRow(ctx context.Context, key string, findingPos, rowIndex int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		res, err := tx.ExecContext(ctx,
			`DELETE FROM materials WHERE document_id = $1 AND finding_pos = $2 AND pos = $3`,
			key, findingPos, rowIndex)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return common.ErrorNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE materials SET pos = pos - 1 WHERE document_id = $1 AND finding_pos = $2 AND pos > $3`,
			key, findingPos, rowIndex); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return nil
	})
}

func (r *PostgresRepository) DeleteMaterials(ctx context.Context, key string, findingPos int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM materials WHERE document_id = $1 AND finding_pos = $2`, key, findingPos)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Master(ctx context.Context) ([]wire.MasterRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT wo_no, ac_reg, part_desc, status, sheet_url, id FROM documents ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []wire.MasterRow
	for rows.Next() {
		var m wire.MasterRow
		if err := rows.Scan(&m.WoNo, &m.AcReg, &m.PartDesc, &m.Status, &m.SheetURL, &m.SheetID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, row int, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $2
		 WHERE id = (SELECT id FROM documents ORDER BY seq LIMIT 1 OFFSET $1)`,
		row-1, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
