// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// records, view, export, and the HTTP handlers can all import types
// without depending on each other.
package types

import "time"

// Student represents one student record in the roster.
//
// The json:"..." names are the persisted field names: the whole list is
// stored as a JSON array of these objects, so renaming a tag is a storage
// format change.
//
// ID is a generated UUID string. It is the record's identity for edits and
// deletes; positions in the list shift after every delete and must not be
// used to address a record across requests.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	Course    string    `json:"course"`
	Phone     string    `json:"phone"`
	DateAdded time.Time `json:"dateAdded"`
}

// StudentInput is the form payload for add and update.
//
// validate:"..." tags are checked by go-playground/validator.
// "required" on Age rejects 0, which is how an empty age field arrives.
type StudentInput struct {
	Name   string `json:"name"   validate:"required"`
	Age    int    `json:"age"    validate:"required,min=16,max=100"`
	Email  string `json:"email"  validate:"required"`
	Course string `json:"course" validate:"required"`
	Phone  string `json:"phone"  validate:"required"`
}

// Stats is the dashboard summary computed over the whole roster.
type Stats struct {
	Total           int `json:"totalStudents"`
	RecentAdditions int `json:"recentAdditions"`
	AverageAge      int `json:"avgAge"`
}

// Courses is the fixed list offered by the record form.
var Courses = []string{
	"Computer Science",
	"Information Technology",
	"Software Engineering",
	"Data Science",
	"Cyber Security",
	"Business Administration",
	"Mechanical Engineering",
	"Electrical Engineering",
}
