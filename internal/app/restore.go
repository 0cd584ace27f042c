package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/The-Layout-List/pointercrate/internal/config"
	"github.com/The-Layout-List/pointercrate/internal/database"
	"github.com/The-Layout-List/pointercrate/internal/encryption"
	"github.com/The-Layout-List/pointercrate/internal/vault"
)

// RestoreArchive replaces the local list database with the archive held
// in the configured vault. It runs outside the normal app lifecycle on
// purpose: the version check in NewListApp refuses to start exactly when
// a restore is needed.
//
// passphrase unlocks the archive key when encryption is configured; pass
// "" for an unencrypted archive. An existing local database is only
// overwritten when force is set.
func RestoreArchive(cfg *config.Config, passphrase string, force bool) error {
	if len(cfg.Vaults) == 0 {
		return fmt.Errorf("no vault configured, nothing to restore from")
	}
	v, err := vault.NewVaultFromConfig(cfg.Vaults[0])
	if err != nil {
		return fmt.Errorf("creating vault: %w", err)
	}

	dbPath, err := database.FilePath(cfg.Database)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); err == nil && !force {
		return fmt.Errorf("local database already exists at %s, pass --force to overwrite", dbPath)
	}

	version, err := v.ArchiveVersion(archiveName(cfg))
	if err != nil {
		return fmt.Errorf("checking vault archive version: %w", err)
	}
	if version == 0 {
		return fmt.Errorf("vault holds no archive for %s", archiveName(cfg))
	}

	tmp, err := os.CreateTemp("", "demonlist-restore-*.db")
	if err != nil {
		return fmt.Errorf("creating temp file for restore: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := v.GetArchive(archiveName(cfg), tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("downloading archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing downloaded archive: %w", err)
	}

	if passphrase != "" {
		if tmpPath, err = decryptArchive(cfg, tmpPath, passphrase); err != nil {
			return err
		}
		defer os.Remove(tmpPath)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.Rename(tmpPath, dbPath); err != nil {
		// Rename fails across filesystems; fall back to a copy.
		data, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return fmt.Errorf("installing restored database: %w", err)
		}
		if err := os.WriteFile(dbPath, data, 0600); err != nil {
			return fmt.Errorf("installing restored database: %w", err)
		}
	}
	return nil
}

// decryptArchive decrypts the downloaded archive into a fresh temp file
// and returns the temp file's path.
func decryptArchive(cfg *config.Config, path, passphrase string) (string, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return "", fmt.Errorf("creating encryptor: %w", err)
	}
	ctx, err := enc.Unlock(passphrase)
	if err != nil {
		return "", fmt.Errorf("unlocking archive key: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening downloaded archive: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "demonlist-restore-plain-*.db")
	if err != nil {
		return "", fmt.Errorf("creating temp file for decrypted archive: %w", err)
	}
	if err := ctx.Decrypt(src, dst); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("decrypting archive: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("finalizing decrypted archive: %w", err)
	}
	return dst.Name(), nil
}

// SetupArchiveKeys generates the archive encryption key pair for the
// configured encryption backend.
func SetupArchiveKeys(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc.IsConfigured() {
		return fmt.Errorf("archive keys already exist at %s", cfg.Encryption.PublicKeyPath)
	}
	return enc.Setup(passphrase)
}
