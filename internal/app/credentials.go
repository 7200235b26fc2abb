package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/antlu/contest-assistant/internal/interfaces"
	"github.com/antlu/contest-assistant/internal/secrets"
)

// CredentialStore keeps gateway credentials encrypted at rest.
type CredentialStore struct {
	store  interfaces.DBQueryExecCloser
	cipher secrets.Cipher
}

func NewCredentialStore(store interfaces.DBQueryExecCloser, cipher secrets.Cipher) *CredentialStore {
	return &CredentialStore{store: store, cipher: cipher}
}

// Put encrypts and upserts a credential.
func (cs *CredentialStore) Put(name, value string) error {
	value, err := cs.cipher.Seal(value)
	if err != nil {
		return fmt.Errorf("error sealing credential %s: %w", name, err)
	}

	var exists bool
	err = cs.store.QueryRow("SELECT EXISTS (SELECT 1 FROM credentials WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		_, err = cs.store.Exec("INSERT INTO credentials (name, value) VALUES (?, ?)", name, value)
	} else {
		_, err = cs.store.Exec("UPDATE credentials SET value = ? WHERE name = ?", value, name)
	}
	return err
}

// Get returns a decrypted credential, or empty when it was never stored.
func (cs *CredentialStore) Get(name string) (string, error) {
	var value string
	err := cs.store.QueryRow("SELECT value FROM credentials WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	value, err = cs.cipher.Open(value)
	if err != nil {
		return "", fmt.Errorf("error opening credential %s: %w", name, err)
	}

	return value, nil
}
