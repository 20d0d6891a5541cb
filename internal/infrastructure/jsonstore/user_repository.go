package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexpint/impacto-vendas/internal/domain"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// storedUser forma persistida de un usuario.
type storedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRepo usuarios sobre un archivo JSON (mismo esquema de slot que la base de custos).
type UserRepo struct {
	mu   sync.Mutex
	path string
}

// NewUserRepository construye el repositorio; crea el directorio del slot si falta.
func NewUserRepository(path string) (*UserRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio del slot: %w", err)
	}
	return &UserRepo{path: path}, nil
}

func (r *UserRepo) load() ([]storedUser, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer slot: %w", err)
	}
	var db []storedUser
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("decodificar slot: %w", err)
	}
	return db, nil
}

func (r *UserRepo) save(db []storedUser) error {
	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar slot: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0o600); err != nil {
		return fmt.Errorf("escribir slot: %w", err)
	}
	return nil
}

// Create agrega un usuario y reescribe el slot completo.
func (r *UserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return err
	}
	for _, it := range db {
		if it.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	db = append(db, storedUser{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	return r.save(db)
}

// FindByEmail busca por email; nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, it := range db {
		if it.Email == email {
			return &entity.User{
				ID:           it.ID,
				Email:        it.Email,
				PasswordHash: it.PasswordHash,
				Name:         it.Name,
				Status:       it.Status,
				CreatedAt:    it.CreatedAt,
				UpdatedAt:    it.UpdatedAt,
			}, nil
		}
	}
	return nil, nil
}
