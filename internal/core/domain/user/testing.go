package user

import (
	"context"
	"sync"
	c "taskflow/internal/core/domain/common"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	CreateError error
	GetError    error
	nextID      ID
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{nextID: 1}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.CreateError != nil {
		return u, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	u = User{
		ID:           r.nextID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.nextID++
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.GetError != nil {
		return u, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.ID == id {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.GetError != nil {
		return u, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLoginAt(ctx context.Context, id ID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	userRepository *FakeUserRepository
	Sessions       map[SessionToken]ID
	CreateError    error
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository *FakeUserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		userRepository: userRepository,
		Sessions:       make(map[SessionToken]ID),
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.CreateError != nil {
		return r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Sessions[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userID, ok := r.Sessions[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.userRepository.GetByID(ctx, userID)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (userID ID, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.Sessions[token]
	if !ok {
		return userID, ErrSessionDoesNotExist
	}
	delete(r.Sessions, token)
	return userID, nil
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	return PasswordHash("hashed::" + string(password)), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	return PasswordHash("hashed::"+string(password)) == hash
}

type FakeSessionTokenGenerator struct {
	Token SessionToken
}

func NewFakeSessionTokenGenerator(token SessionToken) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return g.Token
}
