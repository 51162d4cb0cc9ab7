package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS job_descriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS interview_sessions (
			session_id TEXT PRIMARY KEY,
			resume_id INTEGER,
			job_description_id INTEGER,
			questions TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS interview_answers (
			answer_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			question_index INTEGER NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			feedback TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES interview_sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_session ON interview_answers(session_id, question_index)`,
		`CREATE TABLE IF NOT EXISTS answer_analyses (
			analysis_id TEXT PRIMARY KEY,
			answer_id TEXT NOT NULL,
			overall_score REAL NOT NULL,
			strengths TEXT,
			weaknesses TEXT,
			suggestions TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (answer_id) REFERENCES interview_answers(answer_id)
		)`,
		`CREATE TABLE IF NOT EXISTS session_reports (
			report_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			overall_score REAL NOT NULL,
			summary TEXT NOT NULL,
			improvements TEXT,
			key_takeaways TEXT,
			generated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			api_response_time_ms INTEGER,
			FOREIGN KEY (session_id) REFERENCES interview_sessions(session_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession creates a new interview session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	questions, err := json.Marshal(session.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO interview_sessions (session_id, resume_id, job_description_id, questions, created_at) VALUES (?, ?, ?, ?, ?)`,
		session.SessionID, session.ResumeID, session.JobDescriptionID, string(questions), session.CreatedAt)
	return err
}

// GetSession retrieves a session by ID. Returns nil when absent.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, resume_id, job_description_id, questions, created_at FROM interview_sessions WHERE session_id = ?`,
		sessionID)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, resume_id, job_description_id, questions, created_at FROM interview_sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var resumeID, jdID sql.NullInt64
	var questions string
	if err := row.Scan(&session.SessionID, &resumeID, &jdID, &questions, &session.CreatedAt); err != nil {
		return nil, err
	}
	if resumeID.Valid {
		session.ResumeID = &resumeID.Int64
	}
	if jdID.Valid {
		session.JobDescriptionID = &jdID.Int64
	}
	if err := json.Unmarshal([]byte(questions), &session.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	return &session, nil
}

// SaveAnswer persists one answered question.
func (s *SQLiteStore) SaveAnswer(ctx context.Context, answer *domain.StoredAnswer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interview_answers (answer_id, session_id, question_index, question, answer, feedback, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		answer.AnswerID, answer.SessionID, answer.QuestionIndex, answer.Question, answer.Answer, answer.Feedback, answer.CreatedAt)
	return err
}

// GetAnswersBySession returns the answers of a session ordered by question index.
func (s *SQLiteStore) GetAnswersBySession(ctx context.Context, sessionID string) ([]domain.StoredAnswer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT answer_id, session_id, question_index, question, answer, feedback, created_at FROM interview_answers WHERE session_id = ? ORDER BY question_index`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.StoredAnswer
	for rows.Next() {
		var a domain.StoredAnswer
		var feedback sql.NullString
		if err := rows.Scan(&a.AnswerID, &a.SessionID, &a.QuestionIndex, &a.Question, &a.Answer, &feedback, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Feedback = feedback.String
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// SaveAnswerAnalysis persists a best-effort scoring result.
func (s *SQLiteStore) SaveAnswerAnalysis(ctx context.Context, analysis *domain.AnswerAnalysis) error {
	strengths, _ := json.Marshal(analysis.Strengths)
	weaknesses, _ := json.Marshal(analysis.Weaknesses)
	suggestions, _ := json.Marshal(analysis.Suggestions)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answer_analyses (analysis_id, answer_id, overall_score, strengths, weaknesses, suggestions, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		analysis.AnalysisID, analysis.AnswerID, analysis.OverallScore, string(strengths), string(weaknesses), string(suggestions), analysis.CreatedAt)
	return err
}

// GetReport retrieves the report of a session. Returns nil when absent.
func (s *SQLiteStore) GetReport(ctx context.Context, sessionID string) (*domain.Report, error) {
	var r domain.Report
	var improvements, takeaways sql.NullString
	var responseTime sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT report_id, session_id, overall_score, summary, improvements, key_takeaways, generated_at, api_response_time_ms FROM session_reports WHERE session_id = ?`,
		sessionID).Scan(&r.ReportID, &r.SessionID, &r.OverallScore, &r.Summary, &improvements, &takeaways, &r.GeneratedAt, &responseTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if improvements.Valid {
		if err := json.Unmarshal([]byte(improvements.String), &r.Improvements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal improvements: %w", err)
		}
	}
	if takeaways.Valid {
		if err := json.Unmarshal([]byte(takeaways.String), &r.KeyTakeaways); err != nil {
			return nil, fmt.Errorf("failed to unmarshal key takeaways: %w", err)
		}
	}
	r.APIResponseTimeMs = responseTime.Int64
	return &r, nil
}

// SaveReport persists a generated report. Regeneration replaces the stored
// row; callers see the replacement as a new report version.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *domain.Report) error {
	improvements, err := json.Marshal(report.Improvements)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}
	takeaways, err := json.Marshal(report.KeyTakeaways)
	if err != nil {
		return fmt.Errorf("failed to marshal key takeaways: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_reports (report_id, session_id, overall_score, summary, improvements, key_takeaways, generated_at, api_response_time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			report_id = excluded.report_id,
			overall_score = excluded.overall_score,
			summary = excluded.summary,
			improvements = excluded.improvements,
			key_takeaways = excluded.key_takeaways,
			generated_at = excluded.generated_at,
			api_response_time_ms = excluded.api_response_time_ms`,
		report.ReportID, report.SessionID, report.OverallScore, report.Summary, string(improvements), string(takeaways), report.GeneratedAt, report.APIResponseTimeMs)
	return err
}

// SaveResume stores a resume document and returns its id.
func (s *SQLiteStore) SaveResume(ctx context.Context, title, content string) (int64, error) {
	return s.saveDocument(ctx, "resumes", title, content)
}

// ListResumes returns all resumes, most recently updated first.
func (s *SQLiteStore) ListResumes(ctx context.Context) ([]domain.Resume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM resumes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		var r domain.Resume
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// DeleteResume deletes a resume by id.
func (s *SQLiteStore) DeleteResume(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	return err
}

// SaveJobDescription stores a job description document and returns its id.
func (s *SQLiteStore) SaveJobDescription(ctx context.Context, title, content string) (int64, error) {
	return s.saveDocument(ctx, "job_descriptions", title, content)
}

// ListJobDescriptions returns all job descriptions, most recently updated first.
func (s *SQLiteStore) ListJobDescriptions(ctx context.Context) ([]domain.JobDescription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM job_descriptions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jds []domain.JobDescription
	for rows.Next() {
		var jd domain.JobDescription
		if err := rows.Scan(&jd.ID, &jd.Title, &jd.Content, &jd.CreatedAt, &jd.UpdatedAt); err != nil {
			return nil, err
		}
		jds = append(jds, jd)
	}
	return jds, rows.Err()
}

// DeleteJobDescription deletes a job description by id.
func (s *SQLiteStore) DeleteJobDescription(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM job_descriptions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) saveDocument(ctx context.Context, table, title, content string) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (title, content, created_at, updated_at) VALUES (?, ?, ?, ?)`, table),
		title, content, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
