package encryption

import (
	"bytes"
	"fmt"
	"io"

	"github.com/The-Layout-List/pointercrate/internal/vault"
)

// testHeader marks archives "encrypted" by the TestEncryptor, so that
// output visibly differs from the plaintext archive without any crypto.
var testHeader = []byte("DLENC\x00\x00\x00")

// TestEncryptor is a deterministic stand-in encryptor for tests. It
// prepends a fixed header on Encrypt and strips it on Decrypt.
type TestEncryptor struct {
	setupCalled bool
}

var _ vault.Encryptor = (*TestEncryptor)(nil)

// NewTestEncryptor creates a new TestEncryptor.
func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.setupCalled = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testHeader); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying archive: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (vault.DecryptionContext, error) {
	return &testDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

type testDecryptionContext struct{}

var _ vault.DecryptionContext = (*testDecryptionContext)(nil)

func (c *testDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	header := make([]byte, len(testHeader))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading test header: %w", err)
	}
	if !bytes.Equal(header, testHeader) {
		return fmt.Errorf("archive does not start with the test encryption header")
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying archive: %w", err)
	}
	return nil
}
