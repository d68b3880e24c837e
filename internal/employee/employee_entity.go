package employee

import (
	"strings"
	"time"

	"go-hrsuit/internal/department"
	"go-hrsuit/internal/role"

	"github.com/google/uuid"
)

type Title string

const (
	TitleMr    Title = "Mr"
	TitleMrs   Title = "Mrs"
	TitleMss   Title = "Mss"
	TitleDr    Title = "Dr"
	TitleSir   Title = "Sir"
	TitleMadam Title = "Madam"
)

type EmployeeType string

const (
	EmployeeTypeFullTime EmployeeType = "Full-Time"
	EmployeeTypePartTime EmployeeType = "Part-Time"
	EmployeeTypeContract EmployeeType = "Contract"
	EmployeeTypeIntern   EmployeeType = "Intern"
)

const DefaultImage = "default.png"

type Employee struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:uq_employees_user_id"`
	Title        Title                  `gorm:"size:10"`
	Image        string                 `gorm:"size:255;default:default.png"`
	FirstName    string                 `gorm:"size:125;not null"`
	LastName     string                 `gorm:"size:125;not null"`
	OtherName    *string                `gorm:"size:125"`
	Birthday     time.Time              `gorm:"type:date;not null"`
	DepartmentID *uuid.UUID             `gorm:"type:uuid;index"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:SET NULL"`
	RoleID       *uuid.UUID             `gorm:"type:uuid;index"`
	Role         *role.Role             `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:SET NULL"`
	StartDate    *time.Time             `gorm:"type:date"`
	EmployeeType EmployeeType           `gorm:"size:15;default:Full-Time"`
	EmployeeCode *string                `gorm:"column:employee_code;size:20"`
	DateIssued   *time.Time             `gorm:"type:date"`
	IsBlocked    bool                   `gorm:"not null;default:false;index"`
	IsDeleted    bool                   `gorm:"not null;default:false;index"`
	CreatedAt    time.Time              `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time              `gorm:"autoUpdateTime"`
}

// FullName joins first and last name, appending the other name when set.
func (e Employee) FullName() string {
	name := e.FirstName + " " + e.LastName
	if e.OtherName != nil && strings.TrimSpace(*e.OtherName) != "" {
		name += " " + *e.OtherName
	}
	return name
}

// Age is the difference in calendar years only; month and day are ignored.
func (e Employee) Age(now time.Time) int {
	if e.Birthday.IsZero() {
		return 0
	}
	return now.Year() - e.Birthday.Year()
}

func (t Title) Valid() bool {
	switch t {
	case TitleMr, TitleMrs, TitleMss, TitleDr, TitleSir, TitleMadam:
		return true
	}
	return false
}

func (t EmployeeType) Valid() bool {
	switch t {
	case EmployeeTypeFullTime, EmployeeTypePartTime, EmployeeTypeContract, EmployeeTypeIntern:
		return true
	}
	return false
}
