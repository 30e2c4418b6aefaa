package workforce

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// Gender values follow the Indonesian immigration paperwork
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// IsValid checks if the gender is a known value
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// FamilyRelationship describes how a family member relates to a worker
type FamilyRelationship string

const (
	RelationshipSpouse FamilyRelationship = "spouse"
	RelationshipParent FamilyRelationship = "parent"
	RelationshipChild  FamilyRelationship = "child"
)

// IsValid checks if the relationship is a known value
func (r FamilyRelationship) IsValid() bool {
	switch r {
	case RelationshipSpouse, RelationshipParent, RelationshipChild:
		return true
	}
	return false
}

// TkaWorker represents a foreign worker (Tenaga Kerja Asing) that
// invoice lines bill for. Passport numbers are unique across workers
// and family members.
type TkaWorker struct {
	shared.BaseAggregateRoot
	Nama         string `gorm:"size:100;not null"`
	Passport     string `gorm:"size:20;not null;uniqueIndex"`
	Divisi       string `gorm:"size:100"`
	JenisKelamin Gender `gorm:"size:20;not null;default:'Laki-laki'"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// NewTkaWorker creates a new active worker
func NewTkaWorker(nama, passport, divisi string, gender Gender) (*TkaWorker, error) {
	if strings.TrimSpace(nama) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Worker name cannot be empty")
	}
	if strings.TrimSpace(passport) == "" {
		return nil, shared.NewDomainError("INVALID_PASSPORT", "Passport number cannot be empty")
	}
	if gender == "" {
		gender = GenderMale
	}
	if !gender.IsValid() {
		return nil, shared.NewDomainError("INVALID_GENDER", "Unknown gender value")
	}

	return &TkaWorker{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Nama:              strings.TrimSpace(nama),
		Passport:          strings.ToUpper(strings.TrimSpace(passport)),
		Divisi:            strings.TrimSpace(divisi),
		JenisKelamin:      gender,
		IsActive:          true,
	}, nil
}

// Update changes the worker's editable fields
func (w *TkaWorker) Update(nama, passport, divisi string, gender Gender) error {
	if strings.TrimSpace(nama) == "" {
		return shared.NewDomainError("INVALID_NAME", "Worker name cannot be empty")
	}
	if strings.TrimSpace(passport) == "" {
		return shared.NewDomainError("INVALID_PASSPORT", "Passport number cannot be empty")
	}
	if !gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Unknown gender value")
	}

	w.Nama = strings.TrimSpace(nama)
	w.Passport = strings.ToUpper(strings.TrimSpace(passport))
	w.Divisi = strings.TrimSpace(divisi)
	w.JenisKelamin = gender
	w.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-disables the worker
func (w *TkaWorker) Deactivate() {
	w.IsActive = false
	w.UpdatedAt = time.Now()
}

// Activate re-enables the worker
func (w *TkaWorker) Activate() {
	w.IsActive = true
	w.UpdatedAt = time.Now()
}

// TkaFamilyMember is a relative of a worker who can also appear on
// invoice lines in the worker's place
type TkaFamilyMember struct {
	shared.BaseEntity
	TkaWorkerID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	Nama         string             `gorm:"size:100;not null"`
	Passport     string             `gorm:"size:20;not null;uniqueIndex"`
	JenisKelamin Gender             `gorm:"size:20;not null;default:'Laki-laki'"`
	Relationship FamilyRelationship `gorm:"size:20;not null;default:'spouse'"`
	IsActive     bool               `gorm:"not null;default:true"`
}

// NewTkaFamilyMember creates a family member attached to a worker
func NewTkaFamilyMember(workerID uuid.UUID, nama, passport string, gender Gender, relationship FamilyRelationship) (*TkaFamilyMember, error) {
	if workerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORKER", "Worker ID cannot be empty")
	}
	if strings.TrimSpace(nama) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Family member name cannot be empty")
	}
	if strings.TrimSpace(passport) == "" {
		return nil, shared.NewDomainError("INVALID_PASSPORT", "Passport number cannot be empty")
	}
	if gender == "" {
		gender = GenderMale
	}
	if !gender.IsValid() {
		return nil, shared.NewDomainError("INVALID_GENDER", "Unknown gender value")
	}
	if relationship == "" {
		relationship = RelationshipSpouse
	}
	if !relationship.IsValid() {
		return nil, shared.NewDomainError("INVALID_RELATIONSHIP", "Unknown family relationship")
	}

	return &TkaFamilyMember{
		BaseEntity:   shared.NewBaseEntity(),
		TkaWorkerID:  workerID,
		Nama:         strings.TrimSpace(nama),
		Passport:     strings.ToUpper(strings.TrimSpace(passport)),
		JenisKelamin: gender,
		Relationship: relationship,
		IsActive:     true,
	}, nil
}
