package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultMaxAdvanceDays      = 30
	DefaultMinNoticeMinutes    = 60
	DefaultTimezone            = "Europe/Paris"
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinAdvanceDays         = 0
	MaxAdvanceDays         = 365   // 1 year
	MaxMinNoticeMinutes    = 10080 // 7 days
	MaxNameLength          = 100
	MaxCompanyLength       = 200
	MaxPhoneLength         = 30
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// NoonHour separates morning slots from afternoon slots
const NoonHour = 12
