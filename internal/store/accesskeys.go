package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/sivanov/vaulty/models"
)

// CreateAccessKey inserts a new access-key row under (vault, accessKey),
// rejecting a collision, and bumps the vault's access_keys_count in the
// same write transaction.
func (s *Store) CreateAccessKey(vault, accessKey string, doc models.AccessKey) (InsertResult, error) {
	result := Created

	err := s.db.Update(func(tx *bolt.Tx) error {
		nested, err := tx.Bucket(accessKeysBucket).CreateBucketIfNotExists([]byte(vault))
		if err != nil {
			return fmt.Errorf("failed to open vault access-key bucket: %w", err)
		}

		if nested.Get([]byte(accessKey)) != nil {
			result = Exists
			return nil
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize access key document: %w", err)
		}
		if err := nested.Put([]byte(accessKey), data); err != nil {
			return err
		}

		return bumpVaultCounter(tx, vault, models.IncreaseAccessKeys)
	})

	return result, err
}

// FindAccessKey retrieves an access key by (vault, accessKey). Returns
// ErrNotFound if either the vault has no access keys or the key is absent.
func (s *Store) FindAccessKey(vault, accessKey string) (models.AccessKey, error) {
	var doc models.AccessKey

	err := s.db.View(func(tx *bolt.Tx) error {
		nested := tx.Bucket(accessKeysBucket).Bucket([]byte(vault))
		if nested == nil {
			return ErrNotFound
		}

		data := nested.Get([]byte(accessKey))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, &doc)
	})

	return doc, err
}

// ListAccessKeys returns every access key registered under vault.
func (s *Store) ListAccessKeys(vault string) ([]models.AccessKeySummary, error) {
	result := make([]models.AccessKeySummary, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		nested := tx.Bucket(accessKeysBucket).Bucket([]byte(vault))
		if nested == nil {
			return nil
		}

		return nested.ForEach(func(k, v []byte) error {
			var doc models.AccessKey
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			result = append(result, models.AccessKeySummary{
				AccessKey:  string(k),
				Permission: doc.Permission,
				SG:         doc.SG,
				Created:    doc.Created,
				LastUsed:   doc.LastUsed,
			})
			return nil
		})
	})

	return result, err
}

// DeleteAccessKey removes an access-key row and, on success, decrements the
// vault's access_keys_count in the same write transaction.
func (s *Store) DeleteAccessKey(vault, accessKey string) (DeleteResult, error) {
	result := NotFound

	err := s.db.Update(func(tx *bolt.Tx) error {
		nested := tx.Bucket(accessKeysBucket).Bucket([]byte(vault))
		if nested == nil || nested.Get([]byte(accessKey)) == nil {
			return nil
		}

		if err := nested.Delete([]byte(accessKey)); err != nil {
			return fmt.Errorf("failed to delete access key row: %w", err)
		}

		result = Deleted
		return bumpVaultCounter(tx, vault, models.DecreaseAccessKeys)
	})

	return result, err
}

// mutateAccessKey is the shared read-modify-write helper behind the
// access-key mutation operations below.
func (s *Store) mutateAccessKey(vault, accessKey string, fn func(*models.AccessKey)) (UpdateResult, error) {
	result := UpdateNotFound

	err := s.db.Update(func(tx *bolt.Tx) error {
		nested := tx.Bucket(accessKeysBucket).Bucket([]byte(vault))
		if nested == nil {
			return nil
		}

		data := nested.Get([]byte(accessKey))
		if data == nil {
			return nil
		}

		var doc models.AccessKey
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to deserialize access key document: %w", err)
		}

		fn(&doc)

		newData, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize access key document: %w", err)
		}

		result = Updated
		return nested.Put([]byte(accessKey), newData)
	})

	return result, err
}

// ChangeAccessKeyPermission overwrites the granted permission set.
func (s *Store) ChangeAccessKeyPermission(vault, accessKey string, permission []models.Permission) (UpdateResult, error) {
	return s.mutateAccessKey(vault, accessKey, func(doc *models.AccessKey) {
		doc.Permission = permission
	})
}

// ChangeAccessKeySG overwrites the security-group list.
func (s *Store) ChangeAccessKeySG(vault, accessKey string, sg []models.SecurityGroup) (UpdateResult, error) {
	return s.mutateAccessKey(vault, accessKey, func(doc *models.AccessKey) {
		doc.SG = sg
	})
}

// RefreshAccessKeyLastUsed stamps last_used with now in a standalone write
// transaction, deliberately separate from the authorization read path so a
// slow writer never blocks a data-plane decision. Best-effort: callers log
// and ignore failures.
func (s *Store) RefreshAccessKeyLastUsed(vault, accessKey string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.mutateAccessKey(vault, accessKey, func(doc *models.AccessKey) {
		doc.LastUsed = &now
	})
	return err
}
