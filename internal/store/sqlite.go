package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS reports (
	company_key TEXT PRIMARY KEY,
	report      TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS profiles (
	company_key TEXT PRIMARY KEY,
	record      TEXT NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS estimates (
	company_key TEXT PRIMARY KEY,
	estimate    TEXT NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS job_batches (
	id         TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	postings   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_job_batches_created_at ON job_batches(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report *model.ResearchReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (company_key, report, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(company_key) DO UPDATE SET report = excluded.report, created_at = excluded.created_at`,
		CompanyKey(report.Meta.CompanyName), string(reportJSON), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save report %s", report.Meta.CompanyName)
}

func (s *SQLiteStore) GetReport(ctx context.Context, company string) (*model.ResearchReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT report FROM reports WHERE company_key = ?`,
		CompanyKey(company),
	)

	var reportJSON string
	err := row.Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("report not found: %s", company)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get report")
	}

	var report model.ResearchReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &report, nil
}

func (s *SQLiteStore) ListReportCompanies(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json_extract(report, '$.meta.company_name') FROM reports ORDER BY company_key`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list report companies")
	}
	defer rows.Close()

	var companies []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list report companies iterate")
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, rec *model.CompanyProfileRecord) error {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal profile")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (company_key, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(company_key) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		CompanyKey(rec.Meta.CompanyName), string(recordJSON), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save profile %s", rec.Meta.CompanyName)
}

func (s *SQLiteStore) GetProfile(ctx context.Context, company string) (*model.CompanyProfileRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record FROM profiles WHERE company_key = ?`,
		CompanyKey(company),
	)
	return scanProfile(row, company)
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.CompanyProfileRecord, error) {
	query := `SELECT record FROM profiles WHERE 1=1`
	var args []any

	if filter.Company != "" {
		query += ` AND company_key = ?`
		args = append(args, CompanyKey(filter.Company))
	}
	query += ` ORDER BY company_key`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query += ` LIMIT -1`
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list profiles")
	}
	defer rows.Close()

	var recs []model.CompanyProfileRecord
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan profile")
		}
		var rec model.CompanyProfileRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal profile")
		}
		recs = append(recs, rec)
	}
	return recs, eris.Wrap(rows.Err(), "sqlite: list profiles iterate")
}

func (s *SQLiteStore) InjectScoring(ctx context.Context, company string, scoring model.LeadScoring) error {
	scoringJSON, err := json.Marshal(scoring)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal scoring")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET record = json_set(record, '$.lead_scoring', json(?)), updated_at = ? WHERE company_key = ?`,
		string(scoringJSON), time.Now().UTC(), CompanyKey(company),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: inject scoring %s", company)
	}
	return checkRowsAffected(res, "profile", company)
}

func (s *SQLiteStore) SaveEstimate(ctx context.Context, company string, est model.FinancialEstimate) error {
	estJSON, err := json.Marshal(est)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal estimate")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO estimates (company_key, estimate, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(company_key) DO UPDATE SET estimate = excluded.estimate, updated_at = excluded.updated_at`,
		CompanyKey(company), string(estJSON), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save estimate %s", company)
}

func (s *SQLiteStore) ListEstimates(ctx context.Context) (map[string]model.FinancialEstimate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT company_key, estimate FROM estimates`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list estimates")
	}
	defer rows.Close()

	estimates := make(map[string]model.FinancialEstimate)
	for rows.Next() {
		var key, estJSON string
		if err := rows.Scan(&key, &estJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan estimate")
		}
		var est model.FinancialEstimate
		if err := json.Unmarshal([]byte(estJSON), &est); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal estimate")
		}
		estimates[key] = est
	}
	return estimates, eris.Wrap(rows.Err(), "sqlite: list estimates iterate")
}

func (s *SQLiteStore) SaveJobBatch(ctx context.Context, query string, postings []model.JobPosting) (string, error) {
	id := uuid.New().String()

	postingsJSON, err := json.Marshal(postings)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal postings")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO job_batches (id, query, postings, created_at) VALUES (?, ?, ?, ?)`,
		id, query, string(postingsJSON), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert job batch")
	}
	return id, nil
}

func (s *SQLiteStore) LatestJobBatch(ctx context.Context) ([]model.JobPosting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT postings FROM job_batches ORDER BY created_at DESC, id LIMIT 1`,
	)

	var postingsJSON string
	err := row.Scan(&postingsJSON)
	if err == sql.ErrNoRows {
		return nil, eris.New("no job batches stored")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest job batch")
	}

	var postings []model.JobPosting
	if err := json.Unmarshal([]byte(postingsJSON), &postings); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal postings")
	}
	return postings, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProfile(row scannable, company string) (*model.CompanyProfileRecord, error) {
	var recordJSON string
	err := row.Scan(&recordJSON)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("profile not found: %s", company)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan profile")
	}

	var rec model.CompanyProfileRecord
	if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal profile")
	}
	return &rec, nil
}
