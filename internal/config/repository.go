package config

import (
	"fmt"
	"os"

	"taskboard/internal/repository/sqlite"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given configuration
func NewRepositoryFactory(cfg *Config) *RepositoryFactory {
	return &RepositoryFactory{config: cfg}
}

// CreateRepository creates a repository instance based on the configured environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.config.Environment() {
	case Testing:
		return rf.open(":memory:")
	case Development:
		// A database next to the working tree keeps dev data out of the home directory.
		return rf.open(rf.config.Database.Filename)
	default:
		if err := os.MkdirAll(rf.config.Database.Dir, os.FileMode(rf.config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return rf.open(rf.config.GetDatabasePath())
	}
}

func (rf *RepositoryFactory) open(dbPath string) (sqlite.Repository, error) {
	repo, err := sqlite.New(dbPath, sqlite.Options{
		QueryTimeout: rf.config.Database.QueryTimeout,
		WriteTimeout: rf.config.Database.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

// CreateRepository opens the repository described by cfg.
func CreateRepository(cfg *Config) (sqlite.Repository, error) {
	return NewRepositoryFactory(cfg).CreateRepository()
}
