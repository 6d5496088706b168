package entity

import (
	"database/sql"
	"time"

	"github.com/dawerha/backend/internal/domain/activation"
	"gorm.io/gorm"
)

type ActivationSchedule struct {
	Base

	TenantID string
	Tenant   Tenant `gorm:"foreignKey:TenantID"`

	Saturday  bool
	Sunday    bool
	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool

	StartHour     int
	EndHour       int
	DurationHours int

	IsEnabled        bool `gorm:"index"`
	LastActivationAt sql.NullTime
}

// BeforeSave keeps DurationHours derived from the window.
func (s *ActivationSchedule) BeforeSave(tx *gorm.DB) error {
	s.DurationHours = s.Window().DurationHours()
	return nil
}

func (s *ActivationSchedule) Window() activation.TimeWindow {
	return activation.TimeWindow{StartHour: s.StartHour, EndHour: s.EndHour}
}

func (s *ActivationSchedule) Days() activation.Days {
	return activation.Days{
		activation.Saturday:  s.Saturday,
		activation.Sunday:    s.Sunday,
		activation.Monday:    s.Monday,
		activation.Tuesday:   s.Tuesday,
		activation.Wednesday: s.Wednesday,
		activation.Thursday:  s.Thursday,
		activation.Friday:    s.Friday,
	}
}

func (s *ActivationSchedule) SetDays(days activation.Days) {
	s.Saturday = days.Has(activation.Saturday)
	s.Sunday = days.Has(activation.Sunday)
	s.Monday = days.Has(activation.Monday)
	s.Tuesday = days.Has(activation.Tuesday)
	s.Wednesday = days.Has(activation.Wednesday)
	s.Thursday = days.Has(activation.Thursday)
	s.Friday = days.Has(activation.Friday)
}

// WeeklySchedule evaluates the row in loc. A nil loc selects the reference
// timezone.
func (s *ActivationSchedule) WeeklySchedule(loc *time.Location) activation.WeeklySchedule {
	ws := activation.WeeklySchedule{
		Days:     s.Days(),
		Window:   s.Window(),
		Enabled:  s.IsEnabled,
		Location: loc,
	}

	if s.LastActivationAt.Valid {
		last := s.LastActivationAt.Time
		ws.LastActivationAt = &last
	}

	return ws
}
