package app

import (
	"fmt"
	"os"
	"time"

	"github.com/The-Layout-List/pointercrate/internal/config"
	"github.com/The-Layout-List/pointercrate/internal/database"
	"github.com/The-Layout-List/pointercrate/internal/encryption"
	"github.com/The-Layout-List/pointercrate/internal/list"
	"github.com/The-Layout-List/pointercrate/internal/vault"
)

// ListApp is the application layer between the CLI and ListService.
// It constructs all dependencies from config, exposes high-level operations,
// and manages the DB lifecycle on Close.
type ListApp struct {
	cfg       *config.Config
	db        list.Database
	vault     vault.Vault      // nil when no vaults are configured
	encryptor vault.Encryptor  // nil when no vaults are configured
	clock     list.Clock
	service   *list.ListService
	op        *Operation
	logFile   *os.File
}

// archiveName is the vault key for this list's archive. The instance id
// keeps two installations with the same list name apart in a shared vault.
func archiveName(cfg *config.Config) string {
	if cfg.InstanceID == "" {
		return cfg.ListName
	}
	return cfg.ListName + "-" + cfg.InstanceID
}

// NewListApp creates a fully wired ListApp from the given config.
// operation identifies the CLI command being run (e.g. "AddDemon", "MoveDemon").
// The caller must call Close when done.
func NewListApp(cfg *config.Config, operation, parameters string) (*ListApp, error) {
	var v vault.Vault
	var enc vault.Encryptor
	if len(cfg.Vaults) > 0 {
		var err error
		v, err = vault.NewVaultFromConfig(cfg.Vaults[0])
		if err != nil {
			return nil, fmt.Errorf("creating vault: %w", err)
		}
		enc, err = encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return nil, fmt.Errorf("creating encryptor: %w", err)
		}
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	// Check local DB version against the vault archive version.
	if v != nil {
		remoteVersion, err := v.ArchiveVersion(archiveName(cfg))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("checking vault archive version: %w", err)
		}

		localMax, err := db.MaxOperationID()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("checking local operation version: %w", err)
		}

		if remoteVersion > localMax {
			db.Close()
			return nil, fmt.Errorf("local database is behind vault archive (local=%d, remote=%d): restore from vault or re-initialize", localMax, remoteVersion)
		}
	}

	op := NewOperation(operation, parameters, time.Now())
	logger, logFile, err := newLogger(cfg.LogDir, op)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	clock := list.RealClock{}
	svc := list.NewListService(db, &slogAdapter{l: logger}, clock)

	return &ListApp{
		cfg:       cfg,
		db:        db,
		vault:     v,
		encryptor: enc,
		clock:     clock,
		service:   svc,
		op:        op,
		logFile:   logFile,
	}, nil
}

// persistOperation saves the operation to the journal, giving it an
// auto-increment ID. This should only be called for DB-mutating commands.
func (a *ListApp) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	id, err := a.db.CreateOperation(a.op.Operation, a.op.Parameters, a.clock.Now())
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = id
	return nil
}

// Fail marks the current operation as failed. Close records the status
// in the operation journal.
func (a *ListApp) Fail() {
	a.op.Fail()
}

// AddDemon places a new demon on the list on behalf of actor.
func (a *ListApp) AddDemon(actor int64, demon list.NewDemon) (*list.Demon, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.AddDemon(actor, demon)
}

// PatchDemon applies a partial update to a demon on behalf of actor.
func (a *ListApp) PatchDemon(actor int64, id int64, patch list.DemonPatch) (*list.Demon, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.PatchDemon(actor, id, patch)
}

// MoveDemon moves a demon to a new position on behalf of actor.
func (a *ListApp) MoveDemon(actor int64, id int64, to int) (*list.Demon, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.MoveDemon(actor, id, to)
}

// RemoveDemon takes a demon off the ranked list on behalf of actor.
func (a *ListApp) RemoveDemon(actor int64, id int64) (*list.Demon, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.RemoveDemon(actor, id)
}

// SubmitRecord submits a record on behalf of actor.
func (a *ListApp) SubmitRecord(actor int64, submission list.Submission) (*list.Record, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.SubmitRecord(actor, submission)
}

// PatchRecord applies a partial update to a record on behalf of actor.
func (a *ListApp) PatchRecord(actor int64, id int64, patch list.RecordPatch) (*list.Record, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.PatchRecord(actor, id, patch)
}

// SetPlayerBanned bans or unbans a player by name on behalf of actor.
func (a *ListApp) SetPlayerBanned(actor int64, name string, banned bool) (*list.Player, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.SetPlayerBanned(actor, name, banned)
}

// Demon returns a single demon by id.
func (a *ListApp) Demon(id int64) (*list.Demon, error) {
	return a.service.Demon(id)
}

// Demons returns all demons in list order.
func (a *ListApp) Demons() ([]*list.Demon, error) {
	return a.service.Demons()
}

// Record returns a single record by id.
func (a *ListApp) Record(id int64) (*list.Record, error) {
	return a.service.Record(id)
}

// RecordsForDemon returns all records on a demon.
func (a *ListApp) RecordsForDemon(demonID int64) ([]*list.Record, error) {
	return a.service.RecordsForDemon(demonID)
}

// ListAt reconstructs the ranked list as it stood at the given time.
func (a *ListApp) ListAt(at time.Time) ([]list.TimeShiftedDemon, error) {
	return a.service.ListAt(at)
}

// AuditLog returns the full modification history of an entity.
func (a *ListApp) AuditLog(kind list.EntityKind, entityID int64) ([]*list.ModificationEntry, error) {
	return a.service.AuditLog(kind, entityID)
}

// Addition returns the creation log entry of an entity.
func (a *ListApp) Addition(kind list.EntityKind, entityID int64) (*list.AdditionEntry, error) {
	return a.service.Addition(kind, entityID)
}

// History returns the attribute history of a single entity attribute.
func (a *ListApp) History(kind list.EntityKind, entityID int64, attr string) ([]*list.ModificationEntry, error) {
	return a.service.AttributeHistory(kind, entityID, attr)
}

// Operations returns the most recent journaled operations.
func (a *ListApp) Operations(limit int) ([]*list.Operation, error) {
	return a.service.History(limit)
}

// Close finalizes the operation and closes all resources.
// For persisted operations: finishes the journal record, snapshots the DB,
// and uploads the snapshot to the vault. For non-persisted operations: just
// closes the database.
func (a *ListApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		// Finalize the journal record
		if err := a.db.FinishOperation(a.op.ID, a.op.Status, a.clock.Now()); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}

		// Snapshot the DB to a temp file
		tmpFile, err := os.CreateTemp("", "demonlist-db-archive-*.db")
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("creating temp file for db archive: %w", err)
			}
		}

		var tmpPath string
		if tmpFile != nil {
			tmpPath = tmpFile.Name()
			tmpFile.Close()

			if err := a.db.BackupTo(tmpPath); err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("archiving database: %w", err)
				}
				tmpPath = "" // skip vault upload
			}
		}

		if err := a.db.Close(); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("closing database: %w", err)
			}
		}

		// Upload DB snapshot to vault with version = operation ID
		if tmpPath != "" && a.vault != nil {
			if err := a.uploadArchive(tmpPath, a.op.ID); err != nil {
				if firstErr == nil {
					firstErr = err
				}
			}
		}

		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	} else {
		// Non-mutating operation: just close the database, no upload
		if err := a.db.Close(); err != nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// uploadArchive uploads the temp DB file to the vault, encrypting it
// first when archive keys have been generated.
func (a *ListApp) uploadArchive(path string, version int64) error {
	if a.encryptor != nil && a.encryptor.IsConfigured() {
		encPath, err := encryptArchive(a.encryptor, path)
		if err != nil {
			return err
		}
		defer os.Remove(encPath)
		path = encPath
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening db archive for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat db archive: %w", err)
	}

	if err := a.vault.PutArchive(archiveName(a.cfg), f, info.Size(), version); err != nil {
		return fmt.Errorf("uploading archive to vault: %w", err)
	}

	return nil
}

// encryptArchive encrypts the archive at path into a fresh temp file and
// returns the temp file's path. The caller removes it after upload.
func encryptArchive(enc vault.Encryptor, path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening db archive for encryption: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "demonlist-db-archive-*.db.age")
	if err != nil {
		return "", fmt.Errorf("creating temp file for encrypted archive: %w", err)
	}

	if err := enc.Encrypt(src, dst); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("encrypting archive: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("finalizing encrypted archive: %w", err)
	}
	return dst.Name(), nil
}
