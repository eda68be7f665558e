package storage

import (
	"sync"

	"github.com/noralabs/nora-backend/internal/models"
)

var (
	storeInstance Store
	storeMu       sync.RWMutex
)

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Lead operations
	CreateLead(phone string) (*models.Lead, error)
	GetLeadByPhone(phone string) (*models.Lead, error)
	UpdateLead(lead *models.Lead) (*models.Lead, error)
	GetAllLeads() ([]*models.Lead, error)

	// Appointment operations
	CreateAppointment(appt *models.Appointment) (*models.Appointment, error)
	GetAppointmentsByPhone(phone string) ([]*models.Appointment, error)
	GetAppointmentsByPaymentStatus(status string) ([]*models.Appointment, error)
	UpdateAppointment(appt *models.Appointment) error
}
