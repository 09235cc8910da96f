package datastore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/trueshade/api/models"
)

type AnalysisRepository interface {
	Create(record models.AnalysisRecord) (models.AnalysisRecord, error)
	ListByUser(userID string, limit int) ([]models.AnalysisRecord, error)
	GetLatest(userID string) (models.AnalysisRecord, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type AnalysisDatabase struct {
	database *sql.DB
}

func NewAnalysisDatabase(db *sql.DB) (AnalysisDatabase, error) {
	return AnalysisDatabase{database: db}, nil
}

// Create saves an analysis to the user's history
func (adb AnalysisDatabase) Create(record models.AnalysisRecord) (models.AnalysisRecord, error) {
	matches, err := json.Marshal(record.Matches)
	if err != nil {
		return models.AnalysisRecord{}, fmt.Errorf("failed to encode matches: %v", err)
	}

	sqlStatement := `
		INSERT INTO analysis_history (
			analysis_id,
			user_id,
			skin_lab_l,
			skin_lab_a,
			skin_lab_b,
			undertone,
			pantone_family,
			matches,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = adb.database.Exec(sqlStatement,
		record.AnalysisID,
		record.UserID,
		record.SkinLabL,
		record.SkinLabA,
		record.SkinLabB,
		record.Undertone,
		record.PantoneFamily,
		matches,
		record.CreatedAt,
	)
	if err != nil {
		return models.AnalysisRecord{}, fmt.Errorf("failed to save analysis: %v", err)
	}

	return record, nil
}

// ListByUser returns the user's most recent analyses, newest first
func (adb AnalysisDatabase) ListByUser(userID string, limit int) ([]models.AnalysisRecord, error) {
	sqlStatement := `
		SELECT analysis_id, user_id, skin_lab_l, skin_lab_a, skin_lab_b, undertone, pantone_family, matches, created_at
		FROM analysis_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := adb.database.Query(sqlStatement, userID, limit)
	if err != nil {
		return []models.AnalysisRecord{}, err
	}
	defer rows.Close()

	records := []models.AnalysisRecord{}
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return []models.AnalysisRecord{}, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return []models.AnalysisRecord{}, err
	}

	return records, nil
}

// GetLatest returns the user's newest analysis
func (adb AnalysisDatabase) GetLatest(userID string) (models.AnalysisRecord, error) {
	sqlStatement := `
		SELECT analysis_id, user_id, skin_lab_l, skin_lab_a, skin_lab_b, undertone, pantone_family, matches, created_at
		FROM analysis_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	record, err := scanAnalysis(adb.database.QueryRow(sqlStatement, userID))
	switch err {
	case sql.ErrNoRows:
		return models.AnalysisRecord{}, NoRowsError{true, err}
	case nil:
		return record, nil
	default:
		return models.AnalysisRecord{}, err
	}
}

// DeleteOlderThan prunes history created before cutoff
func (adb AnalysisDatabase) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := adb.database.Exec(`DELETE FROM analysis_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune analysis history: %v", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	var matches []byte

	err := row.Scan(
		&record.AnalysisID,
		&record.UserID,
		&record.SkinLabL,
		&record.SkinLabA,
		&record.SkinLabB,
		&record.Undertone,
		&record.PantoneFamily,
		&matches,
		&record.CreatedAt,
	)
	if err != nil {
		return models.AnalysisRecord{}, err
	}

	if len(matches) > 0 {
		if err := json.Unmarshal(matches, &record.Matches); err != nil {
			return models.AnalysisRecord{}, fmt.Errorf("failed to decode matches for %s: %v", record.AnalysisID, err)
		}
	}

	return record, nil
}
