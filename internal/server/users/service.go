// Package users owns customer credentials: registration with bcrypt hashing
// and password verification that does not reveal whether an account exists.
package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/models"
	"github.com/dmitrijs2005/foodstore/internal/server/recordstore"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	store  recordstore.Store[models.User]
	cost   int
	logger logging.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService builds the credential service. cost is the bcrypt work factor.
func NewService(store recordstore.Store[models.User], cost int, logger logging.Logger) *Service {
	return &Service{
		store:  store,
		cost:   cost,
		logger: logger.With("module", "users"),
	}
}

// Register stores a new user. The duplicate check and the write happen in the
// same append cycle, so two concurrent registrations of one email cannot both
// succeed.
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}

	_, err := s.store.Append(ctx, func(current []models.User) (models.User, error) {
		for _, u := range current {
			if u.Email == email {
				return models.User{}, common.ErrorDuplicateEmail
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return models.User{}, fmt.Errorf("%w: password is too long", common.ErrorValidation)
			}
			return models.User{}, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
		}

		return models.User{Name: name, Email: email, PasswordHash: string(hash)}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return nil
}

// Authenticate reports whether password matches the account registered for
// email. An unknown email and a wrong password both yield false with a nil
// error; a hash comparison runs in either case.
func (s *Service) Authenticate(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	all, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}

	hash := s.dummy()
	found := false
	for _, u := range all {
		if u.Email == email {
			hash = []byte(u.PasswordHash)
			found = true
			break
		}
	}

	match := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	return found && match, nil
}

// dummy returns a hash nobody knows the password for, so that lookups of
// missing accounts spend the same time in bcrypt as real ones.
func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		secret, err := common.MakeRandHexString(16)
		if err == nil {
			s.dummyHash, err = bcrypt.GenerateFromPassword([]byte(secret), s.cost)
		}
		if err != nil {
			s.logger.Warn(context.Background(), "cannot build dummy hash", "error", err)
			s.dummyHash = []byte{}
		}
	})
	return s.dummyHash
}
