package postgres

import (
	"context"
	"fmt"
	"phishmetrics/pkg/domain"
	"phishmetrics/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const (
	analysesTable = "analysis_results"
)

// StoreRecords inserts the given analysis records and returns the stored rows
// including generated fields (id, created_at).
func (p *PgSQL) StoreRecords(ctx context.Context, records ...domain.AnalysisRecord) ([]domain.AnalysisRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := domainRecordsToPg(records)

	var result []PgAnalysis
	if err := p.Builder.Insert(analysesTable).
		Rows(rows).
		Returning(&PgAnalysis{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store analysis records in pg: %w", err)
	}

	return pgRecordsToDomain(result), nil
}

// Records returns the analysis records matching the filter, most recent
// first. The date bounds are applied verbatim and inclusively.
func (p *PgSQL) Records(ctx context.Context, filter storage.RecordFilter) ([]domain.AnalysisRecord, error) {
	var w []goqu.Expression
	if filter.Start != nil {
		w = append(w, goqu.I("analysis_date").Gte(*filter.Start))
	}
	if filter.End != nil {
		w = append(w, goqu.I("analysis_date").Lte(*filter.End))
	}

	ds := p.Builder.From(analysesTable).
		Where(w...).
		Order(goqu.I("analysis_date").Desc(), goqu.I("id").Desc())

	var rows []PgAnalysis
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch analysis records from pg: %w", err)
	}

	return pgRecordsToDomain(rows), nil
}
