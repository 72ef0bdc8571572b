package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

// PostgresStorage is the durable record store used when DATABASE_URL is set.
type PostgresStorage struct {
	Pool *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, connStr string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	s := &PostgresStorage{Pool: pool}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

var _ ports.Storage = (*PostgresStorage)(nil)

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_sessions (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			keywords TEXT[],
			total_posts INT NOT NULL DEFAULT 0,
			total_complaints INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS complaints (
			id TEXT PRIMARY KEY,
			post_id TEXT NOT NULL,
			source TEXT NOT NULL,
			title TEXT,
			body TEXT,
			author TEXT,
			score INT,
			created_at TIMESTAMPTZ,
			category TEXT,
			pain_level INT,
			extracted_problem TEXT,
			analyzed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_post_id ON complaints(post_id)`,
		`CREATE TABLE IF NOT EXISTS app_ideas (
			id TEXT PRIMARY KEY,
			post_id TEXT NOT NULL,
			source TEXT NOT NULL,
			original_title TEXT,
			original_body TEXT,
			author TEXT,
			score INT,
			app_name TEXT,
			problem_summary TEXT,
			proposed_solution TEXT,
			target_users TEXT,
			key_features TEXT,
			tech_stack TEXT,
			difficulty TEXT,
			viability_score INT,
			reasoning TEXT,
			bookmarked BOOLEAN NOT NULL DEFAULT FALSE,
			post_created_at TIMESTAMPTZ,
			analyzed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_app_ideas_post_id ON app_ideas(post_id)`,
		`CREATE TABLE IF NOT EXISTS business_ideas (
			id TEXT PRIMARY KEY,
			title TEXT,
			problem_statement TEXT,
			solution TEXT,
			target_market TEXT,
			difficulty TEXT,
			potential_score INT,
			source_complaints JSONB,
			created_at TIMESTAMPTZ
		)`,
	}

	for _, q := range queries {
		if _, err := s.Pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

// Sessions

func (s *PostgresStorage) SaveSession(ctx context.Context, session *domain.AnalysisSession) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO analysis_sessions (id, source, keywords, total_posts, total_complaints, status, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		 total_posts = $4, total_complaints = $5, status = $6, completed_at = $8`,
		session.ID, session.Source, session.Keywords, session.TotalPosts,
		session.TotalComplaints, string(session.Status), session.StartedAt, session.CompletedAt)
	return err
}

func (s *PostgresStorage) GetSession(ctx context.Context, id string) (*domain.AnalysisSession, error) {
	var session domain.AnalysisSession
	var status string
	err := s.Pool.QueryRow(ctx,
		`SELECT id, source, keywords, total_posts, total_complaints, status, started_at, completed_at
		 FROM analysis_sessions WHERE id = $1`, id).
		Scan(&session.ID, &session.Source, &session.Keywords, &session.TotalPosts,
			&session.TotalComplaints, &status, &session.StartedAt, &session.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	session.Status = domain.SessionStatus(status)
	return &session, nil
}

// Complaints

func (s *PostgresStorage) SaveComplaint(ctx context.Context, c *domain.Complaint) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO complaints (id, post_id, source, title, body, author, score, created_at, category, pain_level, extracted_problem, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.PostID, c.Source, c.Title, c.Body, c.Author, c.Score, c.CreatedAt,
		c.Category, c.PainLevel, c.ExtractedProblem, c.AnalyzedAt)
	return err
}

func (s *PostgresStorage) ComplaintExists(ctx context.Context, postID string) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM complaints WHERE post_id = $1)", postID).Scan(&exists)
	return exists, err
}

func (s *PostgresStorage) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, post_id, source, title, body, author, score, created_at, category, pain_level, extracted_problem, analyzed_at
		 FROM complaints WHERE id = $1`, id)
	c, err := scanComplaint(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStorage) ListComplaints(ctx context.Context, source, category string) ([]domain.Complaint, error) {
	query := `SELECT id, post_id, source, title, body, author, score, created_at, category, pain_level, extracted_problem, analyzed_at
	          FROM complaints WHERE ($1 = '' OR LOWER(source) = LOWER($1)) AND ($2 = '' OR category = $2)
	          ORDER BY analyzed_at DESC`
	rows, err := s.Pool.Query(ctx, query, source, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) DeleteComplaint(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, "DELETE FROM complaints WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) DistinctSources(ctx context.Context) ([]string, error) {
	rows, err := s.Pool.Query(ctx, "SELECT DISTINCT source FROM complaints ORDER BY source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComplaint(row rowScanner) (*domain.Complaint, error) {
	var c domain.Complaint
	err := row.Scan(&c.ID, &c.PostID, &c.Source, &c.Title, &c.Body, &c.Author, &c.Score,
		&c.CreatedAt, &c.Category, &c.PainLevel, &c.ExtractedProblem, &c.AnalyzedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// App ideas

const appIdeaColumns = `id, post_id, source, original_title, original_body, author, score,
	app_name, problem_summary, proposed_solution, target_users, key_features, tech_stack,
	difficulty, viability_score, reasoning, bookmarked, post_created_at, analyzed_at`

func (s *PostgresStorage) SaveAppIdea(ctx context.Context, a *domain.AppIdea) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO app_ideas (`+appIdeaColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		a.ID, a.PostID, a.Source, a.OriginalTitle, a.OriginalBody, a.Author, a.Score,
		a.AppName, a.ProblemSummary, a.ProposedSolution, a.TargetUsers, a.KeyFeatures,
		a.TechStack, a.Difficulty, a.ViabilityScore, a.Reasoning, a.Bookmarked,
		a.PostCreatedAt, a.AnalyzedAt)
	return err
}

func (s *PostgresStorage) AppIdeaExists(ctx context.Context, postID string) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM app_ideas WHERE post_id = $1)", postID).Scan(&exists)
	return exists, err
}

func (s *PostgresStorage) ListAppIdeas(ctx context.Context) ([]domain.AppIdea, error) {
	return s.queryAppIdeas(ctx, "SELECT "+appIdeaColumns+" FROM app_ideas ORDER BY analyzed_at DESC")
}

func (s *PostgresStorage) TopAppIdeas(ctx context.Context, limit int) ([]domain.AppIdea, error) {
	return s.queryAppIdeas(ctx,
		"SELECT "+appIdeaColumns+" FROM app_ideas ORDER BY viability_score DESC LIMIT $1", limit)
}

func (s *PostgresStorage) BookmarkedAppIdeas(ctx context.Context) ([]domain.AppIdea, error) {
	return s.queryAppIdeas(ctx,
		"SELECT "+appIdeaColumns+" FROM app_ideas WHERE bookmarked ORDER BY analyzed_at DESC")
}

func (s *PostgresStorage) queryAppIdeas(ctx context.Context, query string, args ...any) ([]domain.AppIdea, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AppIdea
	for rows.Next() {
		var a domain.AppIdea
		if err := rows.Scan(&a.ID, &a.PostID, &a.Source, &a.OriginalTitle, &a.OriginalBody,
			&a.Author, &a.Score, &a.AppName, &a.ProblemSummary, &a.ProposedSolution,
			&a.TargetUsers, &a.KeyFeatures, &a.TechStack, &a.Difficulty, &a.ViabilityScore,
			&a.Reasoning, &a.Bookmarked, &a.PostCreatedAt, &a.AnalyzedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) ToggleBookmark(ctx context.Context, id string) (*domain.AppIdea, error) {
	row := s.Pool.QueryRow(ctx,
		"UPDATE app_ideas SET bookmarked = NOT bookmarked WHERE id = $1 RETURNING "+appIdeaColumns, id)
	var a domain.AppIdea
	err := row.Scan(&a.ID, &a.PostID, &a.Source, &a.OriginalTitle, &a.OriginalBody,
		&a.Author, &a.Score, &a.AppName, &a.ProblemSummary, &a.ProposedSolution,
		&a.TargetUsers, &a.KeyFeatures, &a.TechStack, &a.Difficulty, &a.ViabilityScore,
		&a.Reasoning, &a.Bookmarked, &a.PostCreatedAt, &a.AnalyzedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Business ideas

func (s *PostgresStorage) SaveIdea(ctx context.Context, i *domain.BusinessIdea) error {
	sources, err := json.Marshal(i.SourceComplaints)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO business_ideas (id, title, problem_statement, solution, target_market, difficulty, potential_score, source_complaints, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		i.ID, i.Title, i.ProblemStatement, i.Solution, i.TargetMarket, i.Difficulty,
		i.PotentialScore, sources, i.CreatedAt)
	return err
}

func (s *PostgresStorage) GetIdea(ctx context.Context, id string) (*domain.BusinessIdea, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, title, problem_statement, solution, target_market, difficulty, potential_score, source_complaints, created_at
		 FROM business_ideas WHERE id = $1`, id)
	idea, err := scanIdea(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// ListIdeas treats limit <= 0 as unbounded, matching the JSON backend.
func (s *PostgresStorage) ListIdeas(ctx context.Context, difficulty string, limit int) ([]domain.BusinessIdea, error) {
	query := `SELECT id, title, problem_statement, solution, target_market, difficulty, potential_score, source_complaints, created_at
	          FROM business_ideas WHERE ($1 = '' OR difficulty = $1)
	          ORDER BY created_at DESC`
	args := []any{difficulty}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return s.queryIdeas(ctx, query, args...)
}

func (s *PostgresStorage) TopIdeas(ctx context.Context, limit int) ([]domain.BusinessIdea, error) {
	return s.queryIdeas(ctx,
		`SELECT id, title, problem_statement, solution, target_market, difficulty, potential_score, source_complaints, created_at
		 FROM business_ideas ORDER BY potential_score DESC LIMIT $1`, limit)
}

func (s *PostgresStorage) queryIdeas(ctx context.Context, query string, args ...any) ([]domain.BusinessIdea, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BusinessIdea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *idea)
	}
	return out, rows.Err()
}

func scanIdea(row rowScanner) (*domain.BusinessIdea, error) {
	var i domain.BusinessIdea
	var sources []byte
	var createdAt time.Time
	err := row.Scan(&i.ID, &i.Title, &i.ProblemStatement, &i.Solution, &i.TargetMarket,
		&i.Difficulty, &i.PotentialScore, &sources, &createdAt)
	if err != nil {
		return nil, err
	}
	i.CreatedAt = createdAt
	if len(sources) > 0 {
		if err := json.Unmarshal(sources, &i.SourceComplaints); err != nil {
			return nil, err
		}
	}
	return &i, nil
}

func (s *PostgresStorage) DeleteIdea(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, "DELETE FROM business_ideas WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) Close() {
	s.Pool.Close()
}
