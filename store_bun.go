package authclient

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// StoredValue is one persisted key/value pair. Record IDs are derived
// deterministically from the key so writes are natural upserts.
type StoredValue struct {
	bun.BaseModel `bun:"table:auth_store,alias:ast"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Key           string     `bun:"key,notnull,unique" json:"key,omitempty"`
	Value         string     `bun:"value,notnull" json:"value,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// BunStorage persists token-store values in a SQL database through Bun.
// Suited to desktop/CLI consumers keeping a local sqlite session file.
type BunStorage struct {
	db     *bun.DB
	repo   repository.Repository[*StoredValue]
	logger Logger
}

var _ Storage = (*BunStorage)(nil)

// NewBunStorage returns a Storage over db. The auth_store table must exist;
// EnsureSchema creates it.
func NewBunStorage(db *bun.DB) *BunStorage {
	repo := repository.NewRepository[*StoredValue](db, repository.ModelHandlers[*StoredValue]{
		NewRecord: func() *StoredValue { return &StoredValue{} },
		GetID: func(record *StoredValue) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *StoredValue, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "key"
		},
	})

	return &BunStorage{
		db:     db,
		repo:   repo,
		logger: defLogger{},
	}
}

// WithLogger overrides the storage logger
func (s *BunStorage) WithLogger(logger Logger) *BunStorage {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// EnsureSchema creates the auth_store table when missing
func (s *BunStorage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*StoredValue)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Get returns the stored value for key
func (s *BunStorage) Get(ctx context.Context, key string) (string, bool) {
	record, err := s.repo.GetByIdentifier(ctx, key)
	if err != nil {
		if !repository.IsRecordNotFound(err) {
			s.logger.Error("failed to read stored value %s: %s", key, err)
		}
		return "", false
	}
	return record.Value, true
}

// Set stores value under key, replacing any previous value
func (s *BunStorage) Set(ctx context.Context, key, value string) error {
	record := &StoredValue{Key: key, Value: value}
	if id, err := hashid.NewUUID(key); err == nil {
		record.ID = id
	}
	now := time.Now()
	record.UpdatedAt = &now

	_, err := s.repo.Upsert(ctx, record)
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BunStorage) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*StoredValue)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	return err
}

// OpenSQLiteStorage opens (or creates) a sqlite-backed Storage at dsn.
// Use ":memory:" for tests.
func OpenSQLiteStorage(ctx context.Context, dsn string) (*BunStorage, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	storage := NewBunStorage(db)
	if err := storage.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}
