package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/sivanov/vaulty/models"
)

// UpsertSecret inserts or overwrites a secret row under (vault, name). The
// vault's secrets_count is bumped only when the key did not previously
// exist; an update to an existing secret leaves the counter untouched.
// Both branches happen inside a single write transaction alongside the
// counter update, and the InsertResult tells the caller whether this was a
// 201 (Created) or 200 (Exists/overwritten) at the HTTP layer.
func (s *Store) UpsertSecret(vault, name string, body string) (InsertResult, error) {
	result := Exists

	err := s.db.Update(func(tx *bolt.Tx) error {
		nested, err := tx.Bucket(secretsBucket).CreateBucketIfNotExists([]byte(vault))
		if err != nil {
			return fmt.Errorf("failed to open vault secrets bucket: %w", err)
		}

		existing := nested.Get([]byte(name))

		doc := models.Secret{Body: body}
		if existing != nil {
			var prev models.Secret
			if err := json.Unmarshal(existing, &prev); err != nil {
				return fmt.Errorf("failed to deserialize secret document: %w", err)
			}
			doc.Created = prev.Created
		} else {
			doc.Created = time.Now().UTC().Format(time.RFC3339)
			result = Created
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize secret document: %w", err)
		}
		if err := nested.Put([]byte(name), data); err != nil {
			return err
		}

		if result == Created {
			return bumpVaultCounter(tx, vault, models.IncreaseSecrets)
		}
		return nil
	})

	return result, err
}

// FindSecret retrieves a secret by (vault, name). Returns ErrNotFound if
// either the vault has no secrets or the name is absent.
func (s *Store) FindSecret(vault, name string) (models.Secret, error) {
	var doc models.Secret

	err := s.db.View(func(tx *bolt.Tx) error {
		nested := tx.Bucket(secretsBucket).Bucket([]byte(vault))
		if nested == nil {
			return ErrNotFound
		}

		data := nested.Get([]byte(name))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, &doc)
	})

	return doc, err
}

// ListSecrets returns every secret name registered under vault, without
// ciphertext bodies.
func (s *Store) ListSecrets(vault string) ([]models.SecretSummary, error) {
	result := make([]models.SecretSummary, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		nested := tx.Bucket(secretsBucket).Bucket([]byte(vault))
		if nested == nil {
			return nil
		}

		return nested.ForEach(func(k, v []byte) error {
			var doc models.Secret
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			result = append(result, models.SecretSummary{
				Created:    doc.Created,
				SecretName: string(k),
			})
			return nil
		})
	})

	return result, err
}

// DeleteSecret removes a secret row and, on success, decrements the vault's
// secrets_count in the same write transaction.
func (s *Store) DeleteSecret(vault, name string) (DeleteResult, error) {
	result := NotFound

	err := s.db.Update(func(tx *bolt.Tx) error {
		nested := tx.Bucket(secretsBucket).Bucket([]byte(vault))
		if nested == nil || nested.Get([]byte(name)) == nil {
			return nil
		}

		if err := nested.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete secret row: %w", err)
		}

		result = Deleted
		return bumpVaultCounter(tx, vault, models.DecreaseSecrets)
	})

	return result, err
}
