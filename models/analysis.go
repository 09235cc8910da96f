package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRequest is the JSON body accepted by /v1/analyze
type AnalysisRequest struct {
	Pixels [][]int  `json:"pixels"`
	Brands []string `json:"brands,omitempty"`
}

// AnalysisResult is the outcome of one skin tone analysis
type AnalysisResult struct {
	SkinLab          [3]float64          `json:"skinLab"`
	SkinHex          string              `json:"skinHex"`
	Undertone        string              `json:"undertone"`
	PantoneFamily    string              `json:"pantoneFamily"`
	SupportingPixels int                 `json:"supportingPixels"`
	Matches          map[string][]string `json:"matches"`
}

// AnalysisDebug exposes the intermediate values of the pipeline
type AnalysisDebug struct {
	Status           string      `json:"status"`
	TotalPixels      int         `json:"totalPixels"`
	ValidPixels      int         `json:"validPixels"`
	ShadowPixels     int         `json:"shadowPixels"`
	HighlightPixels  int         `json:"highlightPixels"`
	NumClusters      int         `json:"numClusters"`
	SkinLab          *[3]float64 `json:"skinLab"`
	SupportingPixels int         `json:"supportingPixels"`
	Undertone        string      `json:"undertone,omitempty"`
	PantoneFamily    string      `json:"pantoneFamily,omitempty"`
	Error            string      `json:"error,omitempty"`
}

// AnalysisRecord is a saved analysis in analysis_history
type AnalysisRecord struct {
	AnalysisID    string              `json:"analysisId" db:"analysis_id"`
	UserID        string              `json:"userId" db:"user_id"`
	SkinLabL      float64             `json:"skinLabL" db:"skin_lab_l"`
	SkinLabA      float64             `json:"skinLabA" db:"skin_lab_a"`
	SkinLabB      float64             `json:"skinLabB" db:"skin_lab_b"`
	Undertone     string              `json:"undertone" db:"undertone"`
	PantoneFamily string              `json:"pantoneFamily" db:"pantone_family"`
	Matches       map[string][]string `json:"matches" db:"matches"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
}

// NewAnalysisRecord builds a history entry for userID from a result
func NewAnalysisRecord(userID string, result AnalysisResult) AnalysisRecord {
	return AnalysisRecord{
		AnalysisID:    uuid.New().String(),
		UserID:        userID,
		SkinLabL:      result.SkinLab[0],
		SkinLabA:      result.SkinLab[1],
		SkinLabB:      result.SkinLab[2],
		Undertone:     result.Undertone,
		PantoneFamily: result.PantoneFamily,
		Matches:       result.Matches,
		CreatedAt:     time.Now(),
	}
}

// AnalysisHistory is the response for /v1/users/me/history
type AnalysisHistory struct {
	UserID        string           `json:"userId"`
	TotalAnalyses int              `json:"totalAnalyses"`
	Analyses      []AnalysisRecord `json:"analyses"`
}
