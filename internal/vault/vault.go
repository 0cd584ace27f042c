package vault

import "io"

// Vault is remote (or at least external) storage for database archives.
// Each archive is a full snapshot of the list database, stored per list
// name together with a version marker. The version is the id of the last
// journaled operation contained in the archive, so a vault copy can be
// compared against a local database without opening it.
type Vault interface {
	// PutArchive stores an archive for the named list, replacing any
	// previous one, and records version alongside it.
	PutArchive(listName string, r io.Reader, size int64, version int64) error

	// GetArchive retrieves the archive for the named list and writes it to w.
	GetArchive(listName string, w io.Writer) error

	// ArchiveVersion returns the version of the stored archive, or 0 if
	// no archive has been stored for this list.
	ArchiveVersion(listName string) (int64, error)

	// ValidateSetup verifies the vault is usable before any operation runs.
	ValidateSetup() error
}

// Encryptor encrypts archives before they leave the host. Encryption
// needs only the public key; decryption requires a passphrase to unlock
// the private key, producing a DecryptionContext for the session.
type Encryptor interface {
	// Setup performs one-time key generation: the public key is stored
	// in plaintext, the private key encrypted with the passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts the archive read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key with the passphrase. Returns an
	// error if the passphrase is wrong.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether both key files exist. Archives are
	// uploaded unencrypted until keys have been generated.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for the
// duration of a restore. The unlocked key is never written to disk.
type DecryptionContext interface {
	// Decrypt decrypts an archive read from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}
