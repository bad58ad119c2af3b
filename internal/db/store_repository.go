package db

import (
	"encoding/json"
	"fmt"

	"github.com/wrenbird/cycla/internal/models"
	"gorm.io/gorm"
)

// snapshotRowID pins the whole store document to a single row.
const snapshotRowID = 1

// StoreRepository persists the serialized store document. It implements
// the services.StorePersister port.
type StoreRepository struct {
	database *gorm.DB
}

func NewStoreRepository(database *gorm.DB) *StoreRepository {
	return &StoreRepository{database: database}
}

// Load reads the persisted document. The second return is false when no
// snapshot has been written yet (first boot).
func (repo *StoreRepository) Load() (models.Store, bool, error) {
	snapshot := models.StoreSnapshot{}
	result := repo.database.Where("id = ?", snapshotRowID).Limit(1).Find(&snapshot)
	if result.Error != nil {
		return models.Store{}, false, fmt.Errorf("load store snapshot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Store{}, false, nil
	}

	store := models.Store{}
	if err := json.Unmarshal([]byte(snapshot.Document), &store); err != nil {
		return models.Store{}, false, fmt.Errorf("decode store snapshot: %w", err)
	}
	return store, true, nil
}

// Persist writes the whole document. Every store mutation funnels through
// here before it returns to the caller.
func (repo *StoreRepository) Persist(document models.Store) error {
	encoded, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode store snapshot: %w", err)
	}

	snapshot := models.StoreSnapshot{ID: snapshotRowID, Document: string(encoded)}
	if err := repo.database.Save(&snapshot).Error; err != nil {
		return fmt.Errorf("save store snapshot: %w", err)
	}
	return nil
}
