package repo

import (
	"sync"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  []models.User{},
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) CreateUser(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetByUsername(username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = []models.User{}
	r.nextID = 1
}
