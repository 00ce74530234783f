package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/maxturnos/turnos-service/internal/domain"
	authModels "github.com/maxturnos/turnos-service/internal/service/auth/models"
)

// User пользователь сессии вместе с токеном
type User struct {
	authModels.UserResponse
	Token string `json:"token"`
}

// BusinessNotFound состояние восстановления: администратор вошел, но бизнес не создан
type BusinessNotFound struct {
	Message       string `json:"message"`
	Email         string `json:"email"`
	NombreNegocio string `json:"nombreNegocio"`
}

// Session сериализуемое состояние клиента
type Session struct {
	User             *User             `json:"user,omitempty"`
	BusinessNotFound *BusinessNotFound `json:"negocioNoEncontrado,omitempty"`
}

// LoggedIn есть ли пользователь
func (s *Session) LoggedIn() bool {
	return s != nil && s.User != nil && s.User.Token != ""
}

// IsAdmin владелец бизнеса
func (s *Session) IsAdmin() bool {
	return s.LoggedIn() && s.User.Rol == string(domain.RoleAdmin)
}

// IsSuperAdmin суперадмин
func (s *Session) IsSuperAdmin() bool {
	return s.LoggedIn() && s.User.IsSuperAdmin
}

// BusinessCode код бизнеса администратора
func (s *Session) BusinessCode() string {
	if !s.LoggedIn() || s.User.CodigoNegocio == nil {
		return ""
	}
	return *s.User.CodigoNegocio
}

// Email пользователя; пусто для гостя
func (s *Session) Email() string {
	if !s.LoggedIn() {
		return ""
	}
	return s.User.Email
}

// Store чтение, запись и очистка сессии
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileStore сессия в JSON файле
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore хранилище в файле path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает сессию. Отсутствующий файл дает пустую сессию.
func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", f.path, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", f.path, err)
	}
	return &s, nil
}

// Save записывает сессию через временный файл, чтобы не оставить обрезанный JSON
func (f *FileStore) Save(s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}

// Clear удаляет сессию целиком (выход)
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session %s: %w", f.path, err)
	}
	return nil
}

// MemoryStore сессия в памяти процесса
type MemoryStore struct {
	mu      sync.Mutex
	current *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return &Session{}, nil
	}
	cp := *m.current
	return &cp, nil
}

func (m *MemoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.current = &cp
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}
