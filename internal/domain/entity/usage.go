package entity

import "time"

// UsageTypeRegular tipo de uso por defecto.
const UsageTypeRegular = "regular"

// UsagePeriod intervalo cerrado de uso histórico de un edredón.
type UsagePeriod struct {
	ID         string
	QuiltID    string
	StartDate  time.Time
	EndDate    time.Time
	SeasonUsed Season
	Notes      string
	CreatedAt  time.Time
}

// DurationDays días transcurridos entre inicio y fin.
func (p UsagePeriod) DurationDays() int {
	return int(p.EndDate.Sub(p.StartDate).Hours() / 24)
}

// CurrentUsage uso abierto (en curso); a lo sumo uno por edredón.
type CurrentUsage struct {
	ID              string
	QuiltID         string
	StartedAt       time.Time
	ExpectedEndDate *time.Time
	UsageType       string
	Notes           *string
	CreatedAt       time.Time
}
