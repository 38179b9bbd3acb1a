package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asset-registry/internal/database"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when a row cannot be removed or re-parented
	// because assets (or subgroups) still reference it.
	ErrInUse = errors.New("record is referenced by other records")
)

// DuplicateError wraps a unique index violation.
type DuplicateError struct {
	Constraint string
	Err        error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value (%s): %v", e.Constraint, e.Err)
}

func (e *DuplicateError) Unwrap() error { return e.Err }

// Field names the wire field that collided.
func (e *DuplicateError) Field() string {
	switch {
	case strings.Contains(e.Constraint, "code"):
		return "codigo"
	case strings.Contains(e.Constraint, "tax_id"):
		return "cnpjEmpresa"
	default:
		return "nome"
	}
}

func (e *DuplicateError) Message() string {
	switch e.Field() {
	case "codigo":
		return "Código já cadastrado"
	case "cnpjEmpresa":
		return "CNPJ já cadastrado"
	default:
		return "Nome já cadastrado"
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// inTx runs fn on a store bound to a single transaction.
func (s *Store) inTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Store{db: db})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if ok, constraint := database.IsUniqueViolation(err); ok {
		return &DuplicateError{Constraint: constraint, Err: err}
	}
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrInUse, err)
	}
	return err
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(field, "Nome é obrigatório")
	}
	return name, nil
}

func (s *Store) updateColumns(ctx context.Context, model interface{}, id uint, cols map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, model interface{}, id uint) error {
	res := s.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
