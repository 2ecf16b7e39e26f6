package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal kinds carried in the token payload.
const (
	KindUser    = "user"
	KindCompany = "company"
)

// Application statuses, kept in French to match the public API.
const (
	StatusPending  = "En attente"
	StatusAccepted = "Acceptée"
	StatusRejected = "Refusée"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"      json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	LastName     string    `gorm:"not null"                  json:"nom"`
	FirstName    string    `gorm:"not null"                  json:"prenom"`
	Phone        string    `json:"telephone"`
	Skills       []string  `gorm:"serializer:json;type:text" json:"competences"`
	Experience   string    `json:"experience"`
	CVURL        string    `json:"cv_url"`
	CreatedAt    time.Time `json:"date_creation"`
	UpdatedAt    time.Time `json:"date_modification"`
	Active       bool      `gorm:"default:true"              json:"actif"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Company struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Name         string    `gorm:"not null"             json:"nom"`
	Description  string    `gorm:"not null"             json:"description"`
	Sector       string    `json:"secteur"`
	Address      string    `json:"adresse"`
	Phone        string    `json:"telephone"`
	Website      string    `json:"site_web"`
	CreatedAt    time.Time `json:"date_creation"`
	UpdatedAt    time.Time `json:"date_modification"`
	Active       bool      `gorm:"default:true"         json:"actif"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Job struct {
	ID                 string    `gorm:"type:uuid;primaryKey"      json:"id"`
	CompanyID          string    `gorm:"type:uuid;index;not null"  json:"company_id"`
	Title              string    `gorm:"not null"                  json:"titre"`
	Description        string    `gorm:"not null"                  json:"description"`
	Salary             *float64  `json:"salaire"`
	ContractType       string    `gorm:"not null;default:CDI"      json:"type_contrat"`
	Location           string    `json:"localisation"`
	RequiredSkills     []string  `gorm:"serializer:json;type:text" json:"competences_requises"`
	RequiredExperience string    `json:"experience_requise"`
	CreatedAt          time.Time `json:"date_creation"`
	UpdatedAt          time.Time `json:"date_modification"`
	Active             bool      `gorm:"default:true"              json:"actif"`
	// Derived from the applications table, recomputed on every
	// application write rather than incremented in place.
	ApplicationCount int64 `gorm:"default:0" json:"candidatures_count"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

type Application struct {
	ID     string `gorm:"type:uuid;primaryKey"                                         json:"id"`
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_app_user_job,priority:1" json:"user_id"`
	JobID  string `gorm:"type:uuid;not null;index;uniqueIndex:idx_app_user_job,priority:2" json:"job_id"`
	// Denormalized from job.company_id at creation time, never re-derived.
	CompanyID    string    `gorm:"type:uuid;index;not null" json:"company_id"`
	CoverLetter  string    `json:"lettre_motivation"`
	Status       string    `gorm:"not null"                 json:"statut"`
	CompanyNotes string    `json:"notes_entreprise"`
	CreatedAt    time.Time `json:"date_candidature"`
	UpdatedAt    time.Time `json:"date_modification"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
