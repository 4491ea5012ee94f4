package sheet

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyworks-mro/pirdesk/internal/common"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetSnapshot_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+customer,.*FROM documents WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSnapshot(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetSnapshot_DerivesLabelsFromPosition(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	info := sqlmock.NewRows([]string{
		"customer", "ac_reg", "wo_no", "part_desc", "part_no", "serial_no", "qty",
		"date_received", "reason", "ad_status", "attached_parts", "missing_parts", "mod_status", "doc_id",
	}).AddRow("ACME", "PK-ABC", "WO1001", "", "", "", "", "", "", "", "", "", "", "")

	mock.ExpectQuery(`(?s)SELECT\s+customer,.*FROM documents WHERE id = \$1`).
		WithArgs("sheet-1").
		WillReturnRows(info)

	mock.ExpectQuery(`SELECT pos, identification, action, image_url FROM findings`).
		WithArgs("sheet-1").
		WillReturnRows(sqlmock.NewRows([]string{"pos", "identification", "action", "image_url"}).
			AddRow(0, "crack", "weld", "").
			AddRow(1, "dent", "", "https://img.example/x"))

	mock.ExpectQuery(`(?s)SELECT finding_pos, part_no,.*FROM materials`).
		WithArgs("sheet-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"finding_pos", "part_no", "description", "qty", "uom", "availability", "pr", "po", "note", "date_change",
		}).AddRow(1, "A1", "bolt", "2", "EA", "In Stock", "", "", "", "2024-03-05"))

	mock.ExpectQuery(`SELECT label FROM availability_options ORDER BY pos`).
		WillReturnRows(sqlmock.NewRows([]string{"label"}).AddRow("In Stock").AddRow("Ordered"))

	snap, err := repo.GetSnapshot(context.Background(), "sheet-1")
	require.NoError(t, err)

	require.Len(t, snap.Findings, 2)
	assert.Equal(t, "WO100101", snap.Findings[0].FindingNo)
	assert.Equal(t, "WO100102", snap.Findings[1].FindingNo)

	require.Len(t, snap.MaterialsByFinding["WO100102"], 1)
	assert.Equal(t, "A1", snap.MaterialsByFinding["WO100102"][0].PartNo)

	assert.Equal(t, []string{"In Stock", "Ordered"}, snap.AvailabilityOptions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParentKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT wo_no FROM documents WHERE id = \$1`).
		WithArgs("sheet-1").
		WillReturnRows(sqlmock.NewRows([]string{"wo_no"}).AddRow("WO1001"))

	key, err := repo.ParentKey(context.Background(), "sheet-1")
	require.NoError(t, err)
	assert.Equal(t, "WO1001", key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParentKey_EmptyFallsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT wo_no FROM documents WHERE id = \$1`).
		WithArgs("sheet-1").
		WillReturnRows(sqlmock.NewRows([]string{"wo_no"}).AddRow(""))

	key, err := repo.ParentKey(context.Background(), "sheet-1")
	require.NoError(t, err)
	assert.Equal(t, "PIR", key)
}

func TestParentKey_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT wo_no FROM documents WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ParentKey(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func fullInfo(woNo string) []string {
	info := make([]string, 14)
	info[2] = woNo
	return info
}

func TestReplaceFindings_FullReplaceInOneTx(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)UPDATE documents SET.*WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM findings WHERE document_id = \$1`).
		WithArgs("sheet-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO findings`).
		WithArgs("sheet-1", 0, "crack", "weld", "https://img.example/x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO findings`).
		WithArgs("sheet-1", 1, "dent", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM materials WHERE document_id = \$1 AND finding_pos >= \$2`).
		WithArgs("sheet-1", 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.ReplaceFindings(context.Background(), "sheet-1", fullInfo("WO1001"), []StoredFinding{
		{Identification: "crack", Action: "weld", ImageURL: "https://img.example/x"},
		{Identification: "dent"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceFindings_UnknownDocumentRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)UPDATE documents SET.*WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ReplaceFindings(context.Background(), "ghost", fullInfo("WO1001"), nil)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceFindings_RejectsShortInfoRow(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	err := repo.ReplaceFindings(context.Background(), "sheet-1", []string{"too", "short"}, nil)
	require.Error(t, err)
}

func TestDeleteFinding_ShiftsRemainderDown(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM findings WHERE document_id = \$1 AND pos = \$2`).
		WithArgs("sheet-1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM materials WHERE document_id = \$1 AND finding_pos = \$2`).
		WithArgs("sheet-1", 1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE findings SET pos = pos - 1`).
		WithArgs("sheet-1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE materials SET finding_pos = finding_pos - 1`).
		WithArgs("sheet-1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteFinding(context.Background(), "sheet-1", 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFinding_MissingPosition(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM findings WHERE document_id = \$1 AND pos = \$2`).
		WithArgs("sheet-1", 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteFinding(context.Background(), "sheet-1", 9)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceMaterials_FullReplaceInOneTx(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM materials WHERE document_id = \$1 AND finding_pos = \$2`).
		WithArgs("sheet-1", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO materials`).
		WithArgs("sheet-1", 0, 0, "A1", "bolt", "2", "EA", "In Stock", "", "", "", "2024-03-05").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceMaterials(context.Background(), "sheet-1", 0, []wire.Material{
		{PartNo: "A1", Description: "bolt", Qty: "2", UoM: "EA", Availability: "In Stock", DateChange: "2024-03-05"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMaterialRow_ShiftsRemainderDown(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM materials WHERE document_id = \$1 AND finding_pos = \$2 AND pos = \$3`).
		WithArgs("sheet-1", 0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE materials SET pos = pos - 1`).
		WithArgs("sheet-1", 0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteMaterialRow(context.Background(), "sheet-1", 0, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE documents SET status = \$2.*OFFSET \$1`).
		WithArgs(2, "CLOSED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 3, "CLOSED"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_RowOutOfRange(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE documents SET status = \$2.*OFFSET \$1`).
		WithArgs(41, "CLOSED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 42, "CLOSED")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMaster_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT wo_no, ac_reg,.*FROM documents ORDER BY seq`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Master(context.Background())
	require.Error(t, err)
}
