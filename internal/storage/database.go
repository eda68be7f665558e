package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noralabs/nora-backend/internal/models"
)

// DatabaseStore persists all data in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM connection
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Lead operations

func (d *DatabaseStore) CreateLead(phone string) (*models.Lead, error) {
	lead := &models.Lead{
		Numero:      phone,
		Flags:       models.FlagSet{},
		Temperatura: models.TemperaturaMorno,
		Etapa:       models.LeadStageInitial,
	}

	if err := d.db.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

func (d *DatabaseStore) GetLeadByPhone(phone string) (*models.Lead, error) {
	var lead models.Lead
	if err := d.db.Where("numero = ?", phone).First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lead not found")
		}
		return nil, err
	}
	return &lead, nil
}

func (d *DatabaseStore) UpdateLead(lead *models.Lead) (*models.Lead, error) {
	result := d.db.Model(&models.Lead{}).Where("numero = ?", lead.Numero).Updates(map[string]interface{}{
		"nome":                  lead.Nome,
		"flags":                 lead.Flags,
		"score":                 lead.Score,
		"temperatura":           lead.Temperatura,
		"formulario_respondido": lead.FormularioRespondido,
		"produto_escolhido":     lead.ProdutoEscolhido,
		"historico":             lead.Historico,
		"etapa":                 lead.Etapa,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("lead not found for %s", lead.Numero)
	}
	return d.GetLeadByPhone(lead.Numero)
}

func (d *DatabaseStore) GetAllLeads() ([]*models.Lead, error) {
	var leads []*models.Lead
	if err := d.db.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Appointment operations

func (d *DatabaseStore) CreateAppointment(appt *models.Appointment) (*models.Appointment, error) {
	if appt.PaymentStatus == "" {
		appt.PaymentStatus = models.PaymentStatusPending
	}
	if err := d.db.Create(appt).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

func (d *DatabaseStore) GetAppointmentsByPhone(phone string) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	if err := d.db.Where("numero = ?", phone).Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (d *DatabaseStore) GetAppointmentsByPaymentStatus(status string) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	if err := d.db.Where("payment_status = ?", status).Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (d *DatabaseStore) UpdateAppointment(appt *models.Appointment) error {
	return d.db.Save(appt).Error
}
