package Models

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("usuario no encontrado")
	ErrDuplicateUser = errors.New("el usuario ya existe")
)

// AccountStore abstracts the user row store so the rest of the system never
// touches a bare DB handle. Selected once at startup: GORM when a database is
// configured, the in-memory map otherwise.
type AccountStore interface {
	GetByID(id uint) (*User, error)
	GetByUsername(username string) (*User, error)
	List() ([]User, error)
	Create(u *User) error
	Update(u *User) error
	Delete(id uint) error

	SaveCampaignLog(l *CampaignLog) error
	ListCampaignLogs(userID uint) ([]CampaignLog, error)
	PruneCampaignLogs(before time.Time) (int64, error)
}

// GormAccountStore is the durable backend.
type GormAccountStore struct {
	DB *gorm.DB
}

func NewGormAccountStore(db *gorm.DB) *GormAccountStore {
	return &GormAccountStore{DB: db}
}

func (s *GormAccountStore) GetByID(id uint) (*User, error) {
	var user User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormAccountStore) GetByUsername(username string) (*User, error) {
	var user User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormAccountStore) List() ([]User, error) {
	var users []User
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormAccountStore) Create(u *User) error {
	err := s.DB.Create(u).Error
	if err != nil && (strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "Duplicate entry")) {
		return ErrDuplicateUser
	}
	return err
}

func (s *GormAccountStore) Update(u *User) error {
	return s.DB.Save(u).Error
}

func (s *GormAccountStore) Delete(id uint) error {
	result := s.DB.Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormAccountStore) SaveCampaignLog(l *CampaignLog) error {
	return s.DB.Create(l).Error
}

func (s *GormAccountStore) ListCampaignLogs(userID uint) ([]CampaignLog, error) {
	var logs []CampaignLog
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *GormAccountStore) PruneCampaignLogs(before time.Time) (int64, error) {
	result := s.DB.Where("created_at < ?", before).Delete(&CampaignLog{})
	return result.RowsAffected, result.Error
}

// MemoryAccountStore is the fallback when no database is configured.
type MemoryAccountStore struct {
	mu     sync.RWMutex
	seq    uint
	logSeq uint
	users  map[uint]User
	logs   []CampaignLog
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{users: make(map[uint]User)}
}

func (s *MemoryAccountStore) GetByID(id uint) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryAccountStore) GetByUsername(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryAccountStore) List() ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryAccountStore) Create(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrDuplicateUser
		}
	}
	s.seq++
	u.ID = s.seq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryAccountStore) Update(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryAccountStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryAccountStore) SaveCampaignLog(l *CampaignLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logSeq++
	l.ID = s.logSeq
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	s.logs = append(s.logs, *l)
	return nil
}

func (s *MemoryAccountStore) ListCampaignLogs(userID uint) ([]CampaignLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var logs []CampaignLog
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].UserID == userID {
			logs = append(logs, s.logs[i])
		}
	}
	return logs, nil
}

func (s *MemoryAccountStore) PruneCampaignLogs(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.logs[:0]
	var removed int64
	for _, l := range s.logs {
		if l.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	s.logs = kept
	return removed, nil
}
