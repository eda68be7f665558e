package storage

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/noralabs/nora-backend/internal/models"
)

// MemoryStore holds all data in memory for testing and local development
type MemoryStore struct {
	leads        map[string]*models.Lead // keyed by phone
	appointments map[uint]*models.Appointment

	// Mutexes for thread safety
	leadMu sync.RWMutex
	apptMu sync.RWMutex

	// Counters for ID generation
	leadCounter uint
	apptCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		leads:        make(map[string]*models.Lead),
		appointments: make(map[uint]*models.Appointment),
	}
}

// Lead operations

func (m *MemoryStore) CreateLead(phone string) (*models.Lead, error) {
	m.leadMu.Lock()
	defer m.leadMu.Unlock()

	if _, exists := m.leads[phone]; exists {
		return nil, fmt.Errorf("lead already exists for %s", phone)
	}

	m.leadCounter++
	lead := &models.Lead{
		Model:                gorm.Model{ID: m.leadCounter, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Numero:               phone,
		Nome:                 "",
		Flags:                models.FlagSet{},
		Score:                0,
		Temperatura:          models.TemperaturaMorno,
		FormularioRespondido: false,
		ProdutoEscolhido:     "",
		Historico:            "",
		Etapa:                models.LeadStageInitial,
	}

	m.leads[phone] = lead
	return lead, nil
}

func (m *MemoryStore) GetLeadByPhone(phone string) (*models.Lead, error) {
	m.leadMu.RLock()
	defer m.leadMu.RUnlock()

	lead, exists := m.leads[phone]
	if !exists {
		return nil, fmt.Errorf("lead not found")
	}
	return lead, nil
}

func (m *MemoryStore) UpdateLead(lead *models.Lead) (*models.Lead, error) {
	m.leadMu.Lock()
	defer m.leadMu.Unlock()

	existing, exists := m.leads[lead.Numero]
	if !exists {
		return nil, fmt.Errorf("lead not found for %s", lead.Numero)
	}

	lead.ID = existing.ID
	lead.CreatedAt = existing.CreatedAt
	lead.UpdatedAt = time.Now()
	m.leads[lead.Numero] = lead
	return lead, nil
}

func (m *MemoryStore) GetAllLeads() ([]*models.Lead, error) {
	m.leadMu.RLock()
	defer m.leadMu.RUnlock()

	leads := make([]*models.Lead, 0, len(m.leads))
	for _, lead := range m.leads {
		leads = append(leads, lead)
	}
	return leads, nil
}

// Appointment operations

func (m *MemoryStore) CreateAppointment(appt *models.Appointment) (*models.Appointment, error) {
	m.apptMu.Lock()
	defer m.apptMu.Unlock()

	m.apptCounter++
	appt.ID = m.apptCounter
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = time.Now()
	if appt.PaymentStatus == "" {
		appt.PaymentStatus = models.PaymentStatusPending
	}

	m.appointments[appt.ID] = appt
	return appt, nil
}

func (m *MemoryStore) GetAppointmentsByPhone(phone string) ([]*models.Appointment, error) {
	m.apptMu.RLock()
	defer m.apptMu.RUnlock()

	var results []*models.Appointment
	for _, appt := range m.appointments {
		if appt.Numero == phone {
			results = append(results, appt)
		}
	}
	return results, nil
}

func (m *MemoryStore) GetAppointmentsByPaymentStatus(status string) ([]*models.Appointment, error) {
	m.apptMu.RLock()
	defer m.apptMu.RUnlock()

	var results []*models.Appointment
	for _, appt := range m.appointments {
		if appt.PaymentStatus == status {
			results = append(results, appt)
		}
	}
	return results, nil
}

func (m *MemoryStore) UpdateAppointment(appt *models.Appointment) error {
	m.apptMu.Lock()
	defer m.apptMu.Unlock()

	if _, exists := m.appointments[appt.ID]; !exists {
		return fmt.Errorf("appointment not found")
	}

	appt.UpdatedAt = time.Now()
	m.appointments[appt.ID] = appt
	return nil
}
