package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/memora-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Store is a unified SQLite-based storage that provides access to
// the memory and source store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.memora/data/memory.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".memora", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "memory.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// MemoryStore returns a MemoryStore interface backed by this store.
func (s *Store) MemoryStore() driven.MemoryStore {
	return &memoryStore{store: s}
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Memory Store ====================

// memoryStore implements driven.MemoryStore.
type memoryStore struct {
	store *Store
}

var _ driven.MemoryStore = (*memoryStore)(nil)

// SaveDocumentWithHandle stores a document and its context handle atomically.
// Returns domain.ErrAlreadyExists when the document ID or text hash is taken;
// neither row is written in that case.
func (s *memoryStore) SaveDocumentWithHandle(
	ctx context.Context, doc *domain.Document, handle *domain.ContextHandle,
) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	phrasesJSON, err := json.Marshal(handle.KeyPhrases)
	if err != nil {
		return fmt.Errorf("marshalling key phrases: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// ON CONFLICT DO NOTHING covers both the primary key and the
	// text_hash uniqueness constraint; zero rows affected means a
	// duplicate, which callers resolve by reading the existing winner.
	res, err := tx.ExecContext(ctx, `
		INSERT INTO documents (document_id, text_content, text_hash, metadata_json, embedding_type, embedding_bytes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, doc.ID, doc.Text, doc.TextHash, string(metadataJSON),
		string(doc.EmbeddingKind), float32SliceToBytes(doc.Embedding),
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking insert result: %w", err)
	}
	if inserted == 0 {
		return domain.ErrAlreadyExists
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO context_handles (handle_id, document_id, context_type, summary, key_phrases_json, importance_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, handle.ID, handle.DocumentID, string(handle.ContextType),
		handle.Summary, string(phrasesJSON), handle.Importance, handle.CreatedAt); err != nil {
		return fmt.Errorf("saving context handle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *memoryStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document_id, text_content, text_hash, metadata_json, embedding_type, embedding_bytes, created_at, updated_at
		FROM documents WHERE document_id = ?
	`, id)

	return scanDocument(row)
}

// GetDocumentByHash retrieves a document by its content hash.
func (s *memoryStore) GetDocumentByHash(ctx context.Context, textHash string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document_id, text_content, text_hash, metadata_json, embedding_type, embedding_bytes, created_at, updated_at
		FROM documents WHERE text_hash = ?
	`, textHash)

	return scanDocument(row)
}

// GetDocumentByHandle joins a handle to its owning document.
func (s *memoryStore) GetDocumentByHandle(ctx context.Context, handleID string) (*domain.ExpandedDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT d.document_id, d.text_content, d.text_hash, d.metadata_json, d.embedding_type, d.embedding_bytes, d.created_at, d.updated_at,
		       h.handle_id, h.document_id, h.context_type, h.summary, h.key_phrases_json, h.importance_score, h.created_at
		FROM context_handles h
		JOIN documents d ON d.document_id = h.document_id
		WHERE h.handle_id = ?
	`, handleID)

	var doc domain.Document
	var handle domain.ContextHandle
	var metadataJSON, embeddingKind, contextType, phrasesJSON string
	var embeddingBlob []byte

	if err := row.Scan(&doc.ID, &doc.Text, &doc.TextHash, &metadataJSON,
		&embeddingKind, &embeddingBlob, &doc.CreatedAt, &doc.UpdatedAt,
		&handle.ID, &handle.DocumentID, &contextType, &handle.Summary,
		&phrasesJSON, &handle.Importance, &handle.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning expanded document: %w", err)
	}

	doc.EmbeddingKind = domain.EmbeddingKind(embeddingKind)
	doc.Embedding = bytesToFloat32Slice(embeddingBlob)
	handle.ContextType = domain.ContextType(contextType)

	if metadataJSON != "" && metadataJSON != jsonNull {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}
	if phrasesJSON != "" && phrasesJSON != jsonNull {
		if err := json.Unmarshal([]byte(phrasesJSON), &handle.KeyPhrases); err != nil {
			return nil, fmt.Errorf("unmarshaling key phrases: %w", err)
		}
	}

	return &domain.ExpandedDocument{Document: doc, Handle: handle}, nil
}

// GetHandleForDocument returns the handle owned by a document.
func (s *memoryStore) GetHandleForDocument(ctx context.Context, documentID string) (*domain.ContextHandle, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT handle_id, document_id, context_type, summary, key_phrases_json, importance_score, created_at
		FROM context_handles WHERE document_id = ?
	`, documentID)

	return scanHandle(row)
}

// ListDocuments returns all documents, most recently inserted first.
// rowid breaks ties between rows created in the same instant.
func (s *memoryStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document_id, text_content, text_hash, metadata_json, embedding_type, embedding_bytes, created_at, updated_at
		FROM documents
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ListHandles returns handles matching the filter, most important first.
func (s *memoryStore) ListHandles(ctx context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error) {
	query := `
		SELECT handle_id, document_id, context_type, summary, key_phrases_json, importance_score, created_at
		FROM context_handles
		WHERE importance_score >= ?`
	args := []any{filter.MinImportance}

	if filter.ContextType != "" {
		query += " AND context_type = ?"
		args = append(args, string(filter.ContextType))
	}
	query += " ORDER BY importance_score DESC, created_at DESC"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying context handles: %w", err)
	}
	defer rows.Close()

	var handles []domain.ContextHandle //nolint:prealloc // size unknown from query
	for rows.Next() {
		handle, err := scanHandleRows(rows)
		if err != nil {
			return nil, err
		}
		handles = append(handles, *handle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating context handles: %w", err)
	}

	return handles, nil
}

// CountDocuments returns the total number of stored documents.
func (s *memoryStore) CountDocuments(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// CountHandles returns the total number of context handles.
func (s *memoryStore) CountHandles(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM context_handles")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting context handles: %w", err)
	}
	return count, nil
}

// CountEmbeddingKinds returns the distribution of stored embedding kinds.
func (s *memoryStore) CountEmbeddingKinds(ctx context.Context) (map[domain.EmbeddingKind]int, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT embedding_type, COUNT(*)
		FROM documents
		GROUP BY embedding_type
	`)
	if err != nil {
		return nil, fmt.Errorf("querying embedding kinds: %w", err)
	}
	defer rows.Close()

	kinds := make(map[domain.EmbeddingKind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scanning embedding kind: %w", err)
		}
		kinds[domain.EmbeddingKind(kind)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embedding kinds: %w", err)
	}

	return kinds, nil
}

// Location returns the database file path.
func (s *memoryStore) Location() string {
	return s.store.path
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	configJSON, err := json.Marshal(source.Config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	now := time.Now().UTC()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	source.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, type, name, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			name = excluded.name,
			config = excluded.config,
			updated_at = excluded.updated_at
	`, source.ID, string(source.Type), source.Name, string(configJSON),
		source.CreatedAt, source.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, type, name, config, created_at, updated_at
		FROM sources WHERE id = ?
	`, id)

	var source domain.Source
	var sourceType, configJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&source.ID, &sourceType, &source.Name, &configJSON,
		&createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	source.Type = domain.SourceType(sourceType)
	if configJSON != "" && configJSON != jsonNull {
		if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}
	}
	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		source.UpdatedAt = updatedAt.Time
	}

	return &source, nil
}

// Delete removes a source.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, type, name, config, created_at, updated_at
		FROM sources
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		var source domain.Source
		var sourceType, configJSON string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&source.ID, &sourceType, &source.Name, &configJSON,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}

		source.Type = domain.SourceType(sourceType)
		if configJSON != "" && configJSON != jsonNull {
			if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
				return nil, fmt.Errorf("unmarshaling config: %w", err)
			}
		}
		if createdAt.Valid {
			source.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			source.UpdatedAt = updatedAt.Time
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// ==================== Helpers ====================

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

// scanDocument scans a document from *sql.Row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON, embeddingKind string
	var embeddingBlob []byte

	if err := row.Scan(&doc.ID, &doc.Text, &doc.TextHash, &metadataJSON,
		&embeddingKind, &embeddingBlob, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.EmbeddingKind = domain.EmbeddingKind(embeddingKind)
	doc.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" && metadataJSON != jsonNull {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON, embeddingKind string
	var embeddingBlob []byte

	if err := rows.Scan(&doc.ID, &doc.Text, &doc.TextHash, &metadataJSON,
		&embeddingKind, &embeddingBlob, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.EmbeddingKind = domain.EmbeddingKind(embeddingKind)
	doc.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" && metadataJSON != jsonNull {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanHandle scans a context handle from *sql.Row.
func scanHandle(row *sql.Row) (*domain.ContextHandle, error) {
	var handle domain.ContextHandle
	var contextType, phrasesJSON string

	if err := row.Scan(&handle.ID, &handle.DocumentID, &contextType,
		&handle.Summary, &phrasesJSON, &handle.Importance, &handle.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning context handle: %w", err)
	}

	handle.ContextType = domain.ContextType(contextType)
	if phrasesJSON != "" && phrasesJSON != jsonNull {
		if err := json.Unmarshal([]byte(phrasesJSON), &handle.KeyPhrases); err != nil {
			return nil, fmt.Errorf("unmarshaling key phrases: %w", err)
		}
	}

	return &handle, nil
}

// scanHandleRows scans a context handle from *sql.Rows.
func scanHandleRows(rows *sql.Rows) (*domain.ContextHandle, error) {
	var handle domain.ContextHandle
	var contextType, phrasesJSON string

	if err := rows.Scan(&handle.ID, &handle.DocumentID, &contextType,
		&handle.Summary, &phrasesJSON, &handle.Importance, &handle.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning context handle: %w", err)
	}

	handle.ContextType = domain.ContextType(contextType)
	if phrasesJSON != "" && phrasesJSON != jsonNull {
		if err := json.Unmarshal([]byte(phrasesJSON), &handle.KeyPhrases); err != nil {
			return nil, fmt.Errorf("unmarshaling key phrases: %w", err)
		}
	}

	return &handle, nil
}
