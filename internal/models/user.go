package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	FirstName string
	LastName  string

	// BirthDate drives norm-table lookups; age is always derived at
	// evaluation time, never stored.
	BirthDate time.Time
	Gender    string

	EmailNotificationsEnabled bool
	ReminderTime              string // HH:MM, stored in UTC
	TimeZone                  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Age returns the user's age in whole years as of now.
func (u *User) Age() int {
	return u.AgeAt(time.Now())
}

// AgeAt returns the user's age in whole years at the given time.
func (u *User) AgeAt(at time.Time) int {
	if u.BirthDate.IsZero() {
		return 0
	}
	years := at.Year() - u.BirthDate.Year()
	anniversary := u.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
