package repo

import "github.com/rogerio-castellano/kiosco-pos/internal/models"

type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
}
