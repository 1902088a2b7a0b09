package models

type Barbershop struct {
	Base

	OwnerID string `gorm:"size:255;uniqueIndex;not null" json:"owner_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Slug         string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	Address      string `gorm:"size:255" json:"address"`
	Phone        string `gorm:"size:20" json:"phone"`
	Email        string `gorm:"size:255" json:"email"`
	LogoURL      string `gorm:"size:500" json:"logo_url"`
	CoverURL     string `gorm:"size:500" json:"cover_url"`
	PrimaryColor string `gorm:"size:7" json:"primary_color"`

	OpeningTime string `gorm:"size:5" json:"opening_time"`
	ClosingTime string `gorm:"size:5" json:"closing_time"`
	WorkDays    string `gorm:"size:20" json:"work_days"`
	Timezone    string `gorm:"size:64" json:"timezone"`
}

const (
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "19:00"
	DefaultWorkDays    = "1,2,3,4,5,6"
)
