package models

import "gorm.io/gorm"

type TargetType string

const (
	TargetURL    TargetType = "url"
	TargetIP     TargetType = "ip"
	TargetDomain TargetType = "domain"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetURL, TargetIP, TargetDomain:
		return true
	}
	return false
}

type TargetStatus string

const (
	TargetActive    TargetStatus = "active"
	TargetInactive  TargetStatus = "inactive"
	TargetCompleted TargetStatus = "completed"
)

func (s TargetStatus) Valid() bool {
	switch s {
	case TargetActive, TargetInactive, TargetCompleted:
		return true
	}
	return false
}

// Target is a single engagement subject (URL, IP or domain) under a project.
// Its checklist is cloned from the item catalog at creation time.
type Target struct {
	gorm.Model
	ProjectID uint
	Project   Project

	Name        string       `gorm:"size:255;not null"`
	Target      string       `gorm:"size:512;not null"` // the URL/IP/domain value itself
	TargetType  TargetType   `gorm:"type:varchar(20);not null"`
	Description string       `gorm:"type:text"`
	Status      TargetStatus `gorm:"type:varchar(50);not null"`

	Checklist []TargetChecklistEntry `gorm:"foreignKey:TargetID"`
}
