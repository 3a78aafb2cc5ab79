package models

import (
	"regexp"
	"strings"
)

// emailPattern mirrors the backend's expectation: something@something.tld
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

const (
	minPasswordLen = 6
	minNameLen     = 3
)

// FieldErrors maps a form field name to its validation message.
//
// An empty map means the form is valid and may be submitted.
type FieldErrors map[string]string

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// Credentials carries the login form input.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks required fields, email format and password length.
func (c Credentials) Validate() FieldErrors {
	errs := FieldErrors{}

	if c.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(c.Email) {
		errs["email"] = "Invalid email format"
	}

	if c.Password == "" {
		errs["password"] = "Password is required"
	} else if len(c.Password) < minPasswordLen {
		errs["password"] = "Minimum 6 characters"
	}

	return errs
}

// Registration carries the register form input.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Validate checks required fields, name and password lengths and email format.
func (r Registration) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Name == "" {
		errs["name"] = "Full Name is required"
	} else if len(r.Name) < minNameLen {
		errs["name"] = "Minimum 3 characters"
	}

	if r.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(r.Email) {
		errs["email"] = "Invalid email format"
	}

	if r.Password == "" {
		errs["password"] = "Password is required"
	} else if len(r.Password) < minPasswordLen {
		errs["password"] = "Minimum 6 characters"
	}

	return errs
}

// PlaylistForm carries the create/edit playlist dialog input.
type PlaylistForm struct {
	Name        string
	Description string
}

// Validate requires both fields to be non-blank.
func (f PlaylistForm) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}

	return errs
}
