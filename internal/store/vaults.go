package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/sivanov/vaulty/models"
)

// bumpVaultCounter applies op to the vault row inside an already-open write
// transaction, creating the row with the appropriate initial counters and a
// fresh creation timestamp if it does not yet exist. Callers MUST invoke
// this from within the same write transaction that inserts or removes the
// child secret/access-key row, so a commit failure never leaves the counter
// out of sync with the child tables.
func bumpVaultCounter(tx *bolt.Tx, vault string, op models.VaultCounterOp) error {
	b := tx.Bucket(vaultsBucket)

	var doc models.Vault
	if data := b.Get([]byte(vault)); data != nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to deserialize vault document: %w", err)
		}
	} else {
		doc = models.Vault{Created: time.Now().UTC().Format(time.RFC3339)}
	}

	switch op {
	case models.IncreaseSecrets:
		doc.SecretsCount++
	case models.IncreaseAccessKeys:
		doc.AccessKeysCount++
	case models.DecreaseSecrets:
		doc.SecretsCount--
	case models.DecreaseAccessKeys:
		doc.AccessKeysCount--
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize vault document: %w", err)
	}

	return b.Put([]byte(vault), data)
}

// ListVaults returns every vault row.
func (s *Store) ListVaults() ([]models.VaultSummary, error) {
	result := make([]models.VaultSummary, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(vaultsBucket)
		return b.ForEach(func(k, v []byte) error {
			var doc models.Vault
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			result = append(result, models.VaultSummary{
				Vault:           string(k),
				Created:         doc.Created,
				SecretsCount:    doc.SecretsCount,
				AccessKeysCount: doc.AccessKeysCount,
			})
			return nil
		})
	})

	return result, err
}

// FindVault retrieves a vault by name. Returns ErrNotFound if absent.
func (s *Store) FindVault(vault string) (models.VaultSummary, error) {
	var result models.VaultSummary

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(vaultsBucket)
		data := b.Get([]byte(vault))
		if data == nil {
			return ErrNotFound
		}

		var doc models.Vault
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to deserialize vault document: %w", err)
		}

		result = models.VaultSummary{
			Vault:           vault,
			Created:         doc.Created,
			SecretsCount:    doc.SecretsCount,
			AccessKeysCount: doc.AccessKeysCount,
		}
		return nil
	})

	return result, err
}

// DeleteVault removes the vault row and, in the same write transaction,
// purges every access-key and secret row nested under it, so external
// observers never see a vault disappear while orphan children remain.
func (s *Store) DeleteVault(vault string) (DeleteResult, error) {
	result := NotFound

	err := s.db.Update(func(tx *bolt.Tx) error {
		vaults := tx.Bucket(vaultsBucket)
		if vaults.Get([]byte(vault)) == nil {
			return nil
		}

		if err := vaults.Delete([]byte(vault)); err != nil {
			return fmt.Errorf("failed to delete vault row: %w", err)
		}

		if err := purgeNestedBucket(tx, accessKeysBucket, vault); err != nil {
			return err
		}
		if err := purgeNestedBucket(tx, secretsBucket, vault); err != nil {
			return err
		}

		result = Deleted
		return nil
	})

	return result, err
}

// purgeNestedBucket drops the per-vault nested bucket under the named
// top-level bucket, tolerating its absence.
func purgeNestedBucket(tx *bolt.Tx, topLevel []byte, vault string) error {
	b := tx.Bucket(topLevel)
	err := b.DeleteBucket([]byte(vault))
	if err != nil && err != bolt.ErrBucketNotFound {
		return fmt.Errorf("failed to purge nested bucket: %w", err)
	}
	return nil
}
