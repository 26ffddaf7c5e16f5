package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/smallbiznis/recibo/internal/visibility"
)

const (
	DefaultCompanyName = "EMPRESA"
	DefaultCompanyInfo = "Dirección de la empresa | Tel: 0000-0000"

	// SingletonID is the primary key of the only settings row.
	SingletonID int64 = 1
)

type Settings struct {
	ID              int64             `gorm:"primaryKey;autoIncrement:false" json:"-"`
	CompanyName     string            `gorm:"column:company_name;size:200;not null" json:"company_name"`
	CompanyInfo     string            `gorm:"column:company_info;type:text" json:"company_info"`
	ReceiptTitle    string            `gorm:"column:receipt_title;size:200" json:"receipt_title"`
	FieldVisibility datatypes.JSONMap `gorm:"column:field_visibility" json:"field_visibility"`
	CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }

// CompanyProfile is how the issuing company presents itself on receipts.
type CompanyProfile struct {
	CompanyName  string `json:"company_name"`
	CompanyInfo  string `json:"company_info"`
	ReceiptTitle string `json:"receipt_title"`
}

func DefaultProfile() CompanyProfile {
	return CompanyProfile{CompanyName: DefaultCompanyName, CompanyInfo: DefaultCompanyInfo}
}

// InfoLines splits CompanyInfo on "|" into trimmed, non-empty display lines.
func (p CompanyProfile) InfoLines() []string {
	var out []string
	for _, part := range strings.Split(p.CompanyInfo, "|") {
		if line := strings.TrimSpace(part); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// View is the settings as consumers see them, with visibility fully resolved.
type View struct {
	Profile         CompanyProfile `json:"profile"`
	FieldVisibility visibility.Set `json:"field_visibility"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func DefaultView() View {
	return View{Profile: DefaultProfile(), FieldVisibility: visibility.Defaults()}
}

// ToView resolves the stored row. Stray or non-boolean visibility values are ignored.
func (s Settings) ToView() View {
	return View{
		Profile: CompanyProfile{
			CompanyName:  s.CompanyName,
			CompanyInfo:  s.CompanyInfo,
			ReceiptTitle: s.ReceiptTitle,
		},
		FieldVisibility: visibility.ResolveAny(s.FieldVisibility),
		UpdatedAt:       s.UpdatedAt,
	}
}
