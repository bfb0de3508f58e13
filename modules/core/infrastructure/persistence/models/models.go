package models

import "time"

type User struct {
	ID            int
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	AccessLevelID *int
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

type Group struct {
	ID   int
	Name string
}

type Project struct {
	ID   int
	Name string
}

type AccessLevel struct {
	ID    int
	Name  string
	Level int
}
