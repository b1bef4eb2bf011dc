package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/sivanov/vaulty/models"
)

// CreateUser inserts a new user row unless one already exists under the
// same username.
func (s *Store) CreateUser(username string, user models.User) (InsertResult, error) {
	result := Created

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b.Get([]byte(username)) != nil {
			result = Exists
			return nil
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to serialize user document: %w", err)
		}

		return b.Put([]byte(username), data)
	})

	return result, err
}

// FindUser retrieves a user by username. Returns ErrNotFound if absent.
func (s *Store) FindUser(username string) (models.User, error) {
	var user models.User

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		data := b.Get([]byte(username))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &user)
	})

	return user, err
}

// ListUsers returns every user row in unspecified order.
func (s *Store) ListUsers() (map[string]models.User, error) {
	result := make(map[string]models.User)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		return b.ForEach(func(k, v []byte) error {
			var user models.User
			if err := json.Unmarshal(v, &user); err != nil {
				return err
			}
			result[string(k)] = user
			return nil
		})
	})

	return result, err
}

// DeleteUser removes a user row.
func (s *Store) DeleteUser(username string) (DeleteResult, error) {
	result := NotFound

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b.Get([]byte(username)) == nil {
			return nil
		}
		result = Deleted
		return b.Delete([]byte(username))
	})

	return result, err
}

// mutateUser is the shared read-modify-write helper behind the user
// mutation operations below: it loads the row, applies fn, and re-persists
// the result inside one write transaction.
func (s *Store) mutateUser(username string, fn func(*models.User)) (UpdateResult, error) {
	result := UpdateNotFound

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		data := b.Get([]byte(username))
		if data == nil {
			return nil
		}

		var user models.User
		if err := json.Unmarshal(data, &user); err != nil {
			return fmt.Errorf("failed to deserialize user document: %w", err)
		}

		fn(&user)

		newData, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to serialize user document: %w", err)
		}

		result = Updated
		return b.Put([]byte(username), newData)
	})

	return result, err
}

// ChangeUserPassword overwrites the stored password hash.
func (s *Store) ChangeUserPassword(username, passwordHash string) (UpdateResult, error) {
	return s.mutateUser(username, func(u *models.User) {
		u.PasswordHash = passwordHash
	})
}

// ChangeUserSG overwrites the stored security-group list.
func (s *Store) ChangeUserSG(username string, sg []models.SecurityGroup) (UpdateResult, error) {
	return s.mutateUser(username, func(u *models.User) {
		u.SG = sg
	})
}

// SetUserRole overwrites the stored role, used by PromoteUser/DemoteUser.
func (s *Store) SetUserRole(username string, role models.UserRole) (UpdateResult, error) {
	return s.mutateUser(username, func(u *models.User) {
		u.Role = role
	})
}

// RefreshUserLastLogin stamps the user's last_login field with now (RFC-3339).
// Failures are expected to be treated as best-effort by callers.
func (s *Store) RefreshUserLastLogin(username, rfc3339Now string) error {
	_, err := s.mutateUser(username, func(u *models.User) {
		u.LastLogin = &rfc3339Now
	})
	return err
}

// CountAdmins returns the number of users currently holding the Admin role.
func (s *Store) CountAdmins() (int, error) {
	count := 0

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		return b.ForEach(func(k, v []byte) error {
			var user models.User
			if err := json.Unmarshal(v, &user); err != nil {
				return err
			}
			if user.Role == models.RoleAdmin {
				count++
			}
			return nil
		})
	})

	return count, err
}
