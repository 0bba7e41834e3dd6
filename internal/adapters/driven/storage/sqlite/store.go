package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/corpusforge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "corpus.db"

const (
	statusPending   = "pending"
	statusCommitted = "committed"
)

// Store is a SQLite-based storage for tweets and merged characters.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.corpusforge/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".corpusforge", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL mode lets readers proceed while a merge is being written.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TweetStore returns the driven.TweetStore backed by this database.
func (s *Store) TweetStore() driven.TweetStore {
	return &tweetStore{store: s}
}

// migrate applies every embedded up migration newer than the recorded
// version. Each migration runs in its own transaction together with its
// version record.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// MergeStatus returns "pending" or "committed" for a merge.
// Returns domain.ErrNotFound if the merge does not exist.
func (s *Store) MergeStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := s.db.QueryRowContext(ctx, "SELECT status FROM merges WHERE id = ?", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying merge: %w", err)
	}
	return status, nil
}

// ==================== Tweet Store ====================

// tweetStore implements driven.TweetStore.
type tweetStore struct {
	store *Store
}

var _ driven.TweetStore = (*tweetStore)(nil)

// SaveTweets stores or updates tweets for an account in one transaction.
func (s *tweetStore) SaveTweets(ctx context.Context, account string, tweets []domain.Tweet) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tweets (account, id, text, likes, retweet_count, is_retweet, timestamp_ms, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account, id) DO UPDATE SET
			text = excluded.text,
			likes = excluded.likes,
			retweet_count = excluded.retweet_count,
			is_retweet = excluded.is_retweet,
			timestamp_ms = excluded.timestamp_ms,
			imported_at = excluded.imported_at
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, t := range tweets {
		if t.ID == "" {
			return 0, fmt.Errorf("tweet without id: %w", domain.ErrInvalidInput)
		}
		if _, err := stmt.ExecContext(ctx, account, t.ID, t.Text, t.Likes, t.RetweetCount,
			boolToInt(t.IsRetweet), timeToMillis(t.Timestamp), now); err != nil {
			return 0, fmt.Errorf("saving tweet %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing tweets: %w", err)
	}
	return len(tweets), nil
}

// ListTweets returns every stored tweet of an account, newest first.
func (s *tweetStore) ListTweets(ctx context.Context, account string) ([]domain.Tweet, error) {
	tweets, err := queryTweets(ctx, s.store.db, account)
	if err != nil {
		return nil, err
	}
	if len(tweets) == 0 {
		return nil, fmt.Errorf("no tweets for @%s: %w", account, domain.ErrNotFound)
	}
	return tweets, nil
}

// CreateMerged ranks each account's tweets and records a pending merge.
func (s *tweetStore) CreateMerged(ctx context.Context, name string, accounts []string, opts domain.MergeOptions) (*domain.MergedCharacter, error) {
	accountsJSON, err := json.Marshal(accounts)
	if err != nil {
		return nil, fmt.Errorf("marshalling accounts: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	merged := &domain.MergedCharacter{
		ID:        uuid.New().String(),
		Name:      name,
		Accounts:  append([]string(nil), accounts...),
		Options:   opts,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	for _, account := range accounts {
		tweets, err := queryTweets(ctx, tx, account)
		if err != nil {
			return nil, err
		}
		merged.Tweets = append(merged.Tweets, domain.RankTweets(tweets, opts)...)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO merges (id, name, accounts, tweets_per_account, filter_retweets, sort_by, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, merged.ID, name, string(accountsJSON), opts.TweetsPerAccount, boolToInt(opts.FilterRetweets),
		opts.SortBy.String(), statusPending, merged.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("saving merge: %w", err)
	}

	for i, t := range merged.Tweets {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO merge_tweets (merge_id, position, account, tweet_id) VALUES (?, ?, ?, ?)",
			merged.ID, i, t.Username, t.ID); err != nil {
			return nil, fmt.Errorf("saving merge tweet: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing merge: %w", err)
	}
	return merged, nil
}

// CommitMerged marks a pending merge as final.
func (s *tweetStore) CommitMerged(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE merges SET status = ?, committed_at = ? WHERE id = ? AND status = ?",
		statusCommitted, time.Now().UnixMilli(), id, statusPending)
	if err != nil {
		return fmt.Errorf("committing merge: %w", err)
	}
	return requireAffected(res)
}

// DiscardMerged removes a pending merge and its selected tweets.
func (s *tweetStore) DiscardMerged(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM merges WHERE id = ? AND status = ?", id, statusPending)
	if err != nil {
		return fmt.Errorf("discarding merge: %w", err)
	}
	return requireAffected(res)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryTweets(ctx context.Context, q queryer, account string) ([]domain.Tweet, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, text, likes, retweet_count, is_retweet, timestamp_ms
		FROM tweets WHERE account = ?
		ORDER BY timestamp_ms DESC, id
	`, account)
	if err != nil {
		return nil, fmt.Errorf("querying tweets: %w", err)
	}
	defer rows.Close()

	var tweets []domain.Tweet //nolint:prealloc // size unknown from query
	for rows.Next() {
		t := domain.Tweet{Username: account}
		var isRetweet int
		var tsMillis int64
		if err := rows.Scan(&t.ID, &t.Text, &t.Likes, &t.RetweetCount, &isRetweet, &tsMillis); err != nil {
			return nil, fmt.Errorf("scanning tweet: %w", err)
		}
		t.IsRetweet = isRetweet != 0
		t.Timestamp = millisToTime(tsMillis)
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tweets: %w", err)
	}
	return tweets, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
