package services

import (
	"fmt"

	"coachfit_server/database"
	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
)

// ServiceManager wires every service against the shared database, cache and
// storage handles.
type ServiceManager struct {
	Auth    *AuthService
	Cache   *CacheService
	Email   *EmailService
	Health  *HealthService
	Product *ProductService
	Storage *StorageService
}

func NewServiceManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config) (*ServiceManager, error) {
	storage, err := NewStorageService(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}

	cache := NewCacheService(logger, cfg)
	email := NewEmailService(logger, cfg)

	return &ServiceManager{
		Auth:    NewAuthService(logger, db, email, cfg),
		Cache:   cache,
		Email:   email,
		Health:  NewHealthService(logger, db, cache),
		Product: NewProductService(logger, db, cache, storage, cfg),
		Storage: storage,
	}, nil
}
