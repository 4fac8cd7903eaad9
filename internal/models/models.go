package models

import "time"

// DayLayout is the calendar-date key used for the daily search quota.
const DayLayout = "2006-01-02"

type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Usage struct {
	Email string `json:"email"`
	Day   string `json:"day"`
	Count int    `json:"count"`
}
