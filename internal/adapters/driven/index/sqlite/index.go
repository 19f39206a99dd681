// Package sqlite provides a local slide index backed by a single
// SQLite database file. Vectors are stored as little-endian float32
// blobs and similarity queries run as a brute-force cosine scan,
// which is plenty for personal slide libraries.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/index/sqlite/migrations"
	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SlideIndex = (*Index)(nil)

// filterColumns whitelists the metadata fields a filter may reference.
var filterColumns = map[string]struct{}{
	driven.FieldSourceName: {},
	driven.FieldSourceBase: {},
	driven.FieldSlideID:    {},
	driven.FieldSlideIndex: {},
	driven.FieldTitle:      {},
	driven.FieldTags:       {},
	driven.FieldIndexedAt:  {},
}

// Index stores slide records in a local SQLite database.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex opens the slide index at the specified data directory.
// If dataDir is empty, defaults to ~/.deckdex/data/index.db.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deckdex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	x := &Index{
		db:   db,
		path: dbPath,
	}

	if err := x.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return x, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// migrate runs all pending migrations.
func (x *Index) migrate(fsys embed.FS) error {
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
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
		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := x.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// EnsureCollection is satisfied by the schema migrations; it only
// rejects an invalid dimension.
func (x *Index) EnsureCollection(_ context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("%w: vector dimension must be positive, got %d", domain.ErrInvalidInput, dimensions)
	}
	return nil
}

// Insert stores a batch of records in one transaction.
func (x *Index) Insert(ctx context.Context, records []domain.SlideRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrIndexOperation, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slide_records
			(id, source_name, source_base, slide_index, slide_id, title, body, tags, embedding, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_name = excluded.source_name,
			source_base = excluded.source_base,
			slide_index = excluded.slide_index,
			slide_id = excluded.slide_id,
			title = excluded.title,
			body = excluded.body,
			tags = excluded.tags,
			embedding = excluded.embedding,
			indexed_at = excluded.indexed_at
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", domain.ErrIndexOperation, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		embeddingBlob := float32SliceToBytes(rec.Embedding)
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.SourceName, rec.SourceBase,
			rec.SlideIndex, rec.SlideLocalID, rec.Title, rec.Text,
			rec.Tags.String(), embeddingBlob, rec.IndexedAt); err != nil {
			return fmt.Errorf("%w: saving record %s: %w", domain.ErrIndexOperation, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrIndexOperation, err)
	}
	return nil
}

// Query scans all candidate rows and ranks them by cosine distance,
// ascending.
func (x *Index) Query(ctx context.Context, vector []float32, topK int, filter driven.Filter) ([]domain.SlideHit, error) {
	if topK <= 0 {
		return nil, nil
	}

	records, err := x.GetByFilter(ctx, filter, 0)
	if err != nil {
		return nil, err
	}

	hits := make([]domain.SlideHit, 0, len(records))
	for _, rec := range records {
		hits = append(hits, domain.SlideHit{
			ID:           rec.ID,
			SourceName:   rec.SourceName,
			SlideLocalID: rec.SlideLocalID,
			SlideIndex:   rec.SlideIndex,
			Title:        rec.Title,
			Text:         rec.Text,
			Tags:         rec.Tags,
			Distance:     cosineDistance(vector, rec.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// GetByFilter returns records matching the filter exactly. limit <= 0
// means no limit.
func (x *Index) GetByFilter(ctx context.Context, filter driven.Filter, limit int) ([]domain.SlideRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	where, args, err := buildWhere(filter)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, source_name, source_base, slide_index, slide_id, title, body, tags, embedding, indexed_at
		FROM slide_records` + where + `
		ORDER BY source_name, slide_index`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := x.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying records: %w", domain.ErrIndexOperation, err)
	}
	defer rows.Close()

	var records []domain.SlideRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.SlideRecord
		var tags string
		var embeddingBlob []byte
		if err := rows.Scan(&rec.ID, &rec.SourceName, &rec.SourceBase, &rec.SlideIndex,
			&rec.SlideLocalID, &rec.Title, &rec.Text, &tags, &embeddingBlob, &rec.IndexedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning record: %w", domain.ErrIndexOperation, err)
		}
		rec.Tags = domain.ParseTagSet(tags)
		rec.Embedding = bytesToFloat32Slice(embeddingBlob)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating records: %w", domain.ErrIndexOperation, err)
	}
	return records, nil
}

// DeleteByFilter removes every record matching the filter.
func (x *Index) DeleteByFilter(ctx context.Context, filter driven.Filter) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	where, args, err := buildWhere(filter)
	if err != nil {
		return err
	}

	if _, err := x.db.ExecContext(ctx, "DELETE FROM slide_records"+where, args...); err != nil {
		return fmt.Errorf("%w: deleting records: %w", domain.ErrIndexOperation, err)
	}
	return nil
}

// buildWhere converts a filter into a WHERE clause over whitelisted
// columns. An empty filter yields no clause.
func buildWhere(filter driven.Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filter))
	for key := range filter {
		if _, ok := filterColumns[key]; !ok {
			return "", nil, fmt.Errorf("%w: unknown filter field %q", domain.ErrInvalidInput, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		conds = append(conds, key+" = ?")
		args = append(args, filter[key])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// cosineDistance is 1 minus cosine similarity. Degenerate vectors are
// pushed to the far end of the ranking.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
