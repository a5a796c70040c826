package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS reports (
	company_key TEXT PRIMARY KEY,
	report      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
	company_key TEXT PRIMARY KEY,
	record      JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS estimates (
	company_key TEXT PRIMARY KEY,
	estimate    JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS job_batches (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	query      TEXT NOT NULL,
	postings   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_job_batches_created_at ON job_batches(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, report *model.ResearchReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO reports (company_key, report, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (company_key) DO UPDATE SET report = EXCLUDED.report, created_at = EXCLUDED.created_at`,
		CompanyKey(report.Meta.CompanyName), reportJSON, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save report %s", report.Meta.CompanyName)
}

func (s *PostgresStore) GetReport(ctx context.Context, company string) (*model.ResearchReport, error) {
	var reportJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM reports WHERE company_key = $1`,
		CompanyKey(company),
	).Scan(&reportJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("report not found: %s", company)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get report")
	}

	var report model.ResearchReport
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &report, nil
}

func (s *PostgresStore) ListReportCompanies(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT report->'meta'->>'company_name' FROM reports ORDER BY company_key`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list report companies")
	}
	defer rows.Close()

	var companies []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "postgres: scan report company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list report companies iterate")
}

func (s *PostgresStore) SaveProfile(ctx context.Context, rec *model.CompanyProfileRecord) error {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal profile")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (company_key, record, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (company_key) DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at`,
		CompanyKey(rec.Meta.CompanyName), recordJSON, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save profile %s", rec.Meta.CompanyName)
}

func (s *PostgresStore) GetProfile(ctx context.Context, company string) (*model.CompanyProfileRecord, error) {
	var recordJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM profiles WHERE company_key = $1`,
		CompanyKey(company),
	).Scan(&recordJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("profile not found: %s", company)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get profile")
	}

	var rec model.CompanyProfileRecord
	if err := json.Unmarshal(recordJSON, &rec); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal profile")
	}
	return &rec, nil
}

func (s *PostgresStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.CompanyProfileRecord, error) {
	query := `SELECT record FROM profiles WHERE 1=1`
	var args []any

	if filter.Company != "" {
		args = append(args, CompanyKey(filter.Company))
		query += ` AND company_key = $1`
	}
	query += ` ORDER BY company_key`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list profiles")
	}
	defer rows.Close()

	var recs []model.CompanyProfileRecord
	for rows.Next() {
		var recordJSON []byte
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan profile")
		}
		var rec model.CompanyProfileRecord
		if err := json.Unmarshal(recordJSON, &rec); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal profile")
		}
		recs = append(recs, rec)
	}
	return recs, eris.Wrap(rows.Err(), "postgres: list profiles iterate")
}

func (s *PostgresStore) InjectScoring(ctx context.Context, company string, scoring model.LeadScoring) error {
	scoringJSON, err := json.Marshal(scoring)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal scoring")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE profiles SET record = jsonb_set(record, '{lead_scoring}', $1::jsonb), updated_at = $2 WHERE company_key = $3`,
		scoringJSON, time.Now().UTC(), CompanyKey(company),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: inject scoring %s", company)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("profile not found: %s", company)
	}
	return nil
}

func (s *PostgresStore) SaveEstimate(ctx context.Context, company string, est model.FinancialEstimate) error {
	estJSON, err := json.Marshal(est)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal estimate")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO estimates (company_key, estimate, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (company_key) DO UPDATE SET estimate = EXCLUDED.estimate, updated_at = EXCLUDED.updated_at`,
		CompanyKey(company), estJSON, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save estimate %s", company)
}

func (s *PostgresStore) ListEstimates(ctx context.Context) (map[string]model.FinancialEstimate, error) {
	rows, err := s.pool.Query(ctx, `SELECT company_key, estimate FROM estimates`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list estimates")
	}
	defer rows.Close()

	estimates := make(map[string]model.FinancialEstimate)
	for rows.Next() {
		var key string
		var estJSON []byte
		if err := rows.Scan(&key, &estJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan estimate")
		}
		var est model.FinancialEstimate
		if err := json.Unmarshal(estJSON, &est); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal estimate")
		}
		estimates[key] = est
	}
	return estimates, eris.Wrap(rows.Err(), "postgres: list estimates iterate")
}

func (s *PostgresStore) SaveJobBatch(ctx context.Context, query string, postings []model.JobPosting) (string, error) {
	id := uuid.New().String()

	postingsJSON, err := json.Marshal(postings)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal postings")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_batches (id, query, postings, created_at) VALUES ($1, $2, $3, $4)`,
		id, query, postingsJSON, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert job batch")
	}
	return id, nil
}

func (s *PostgresStore) LatestJobBatch(ctx context.Context) ([]model.JobPosting, error) {
	var postingsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT postings FROM job_batches ORDER BY created_at DESC, id LIMIT 1`,
	).Scan(&postingsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("no job batches stored")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: latest job batch")
	}

	var postings []model.JobPosting
	if err := json.Unmarshal(postingsJSON, &postings); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal postings")
	}
	return postings, nil
}
