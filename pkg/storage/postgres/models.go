package postgres

import (
	"database/sql"
	"phishmetrics/pkg/domain"
	"time"

	"github.com/google/uuid"
)

// PgAnalysis mirrors one row of the analysis_results table. Sources are kept
// as the comma-joined text the workflow engine emits; the domain type
// normalizes them back into a list.
type PgAnalysis struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	URL             string         `db:"url"`
	IsPhishing      bool           `db:"is_phishing"`
	RiskScore       int            `db:"risk_score"`
	ConfidenceLevel string         `db:"confidence_level"`
	AnalysisDate    time.Time      `db:"analysis_date"`
	SourcesChecked  string         `db:"sources_checked"`
	ErrorLog        sql.NullString `db:"error_log"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgAnalysis) ToDomain() *domain.AnalysisRecord {
	return &domain.AnalysisRecord{
		ID:              domain.AnalysisID(p.ID),
		URL:             p.URL,
		IsPhishing:      p.IsPhishing,
		RiskScore:       p.RiskScore,
		ConfidenceLevel: domain.ConfidenceLevel(p.ConfidenceLevel),
		AnalysisDate:    p.AnalysisDate,
		SourcesChecked:  domain.ParseSources(p.SourcesChecked),
		ErrorLog:        p.ErrorLog.String,
		CreatedAt:       p.CreatedAt,
	}
}

func (p *PgAnalysis) FromDomain(rec domain.AnalysisRecord) {
	*p = PgAnalysis{
		ID:              uuid.UUID(rec.ID),
		URL:             rec.URL,
		IsPhishing:      rec.IsPhishing,
		RiskScore:       rec.RiskScore,
		ConfidenceLevel: string(rec.ConfidenceLevel),
		AnalysisDate:    rec.AnalysisDate,
		SourcesChecked:  rec.SourcesChecked.String(),
		ErrorLog: sql.NullString{
			String: rec.ErrorLog,
			Valid:  rec.ErrorLog != "",
		},
		CreatedAt: rec.CreatedAt,
	}
}

func domainRecordsToPg(records []domain.AnalysisRecord) []PgAnalysis {
	out := make([]PgAnalysis, len(records))
	for i := range out {
		out[i].FromDomain(records[i])
	}

	return out
}

func pgRecordsToDomain(rows []PgAnalysis) []domain.AnalysisRecord {
	out := make([]domain.AnalysisRecord, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out
}
