package model

import "time"

type User struct {
	TelegramID       int64
	Username         string
	FirstName        string
	LastName         string
	IsAdmin          bool
	Points           int
	QuestsCompleted  int
	QuestsSubmitted  int
	RegistrationDate time.Time
}
