package models

import "testing"

func TestCredentials(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		errs := Credentials{Email: "user@example.com", Password: "secret1"}.Validate()
		if !errs.Valid() {
			t.Errorf("expected valid credentials, got %v", errs)
		}
	})

	t.Run("Empty Email", func(t *testing.T) {
		errs := Credentials{Password: "secret1"}.Validate()
		if errs["email"] != "Email is required" {
			t.Errorf("expected required email error, got %q", errs["email"])
		}
	})

	t.Run("Malformed Email", func(t *testing.T) {
		for _, email := range []string{"no-at-sign", "missing@tld", "@example.com"} {
			errs := Credentials{Email: email, Password: "secret1"}.Validate()
			if errs["email"] != "Invalid email format" {
				t.Errorf("expected format error for %q, got %q", email, errs["email"])
			}
		}
	})

	t.Run("Short Password", func(t *testing.T) {
		errs := Credentials{Email: "user@example.com", Password: "12345"}.Validate()
		if errs["password"] != "Minimum 6 characters" {
			t.Errorf("expected short password error, got %q", errs["password"])
		}
	})

	t.Run("Empty Password", func(t *testing.T) {
		errs := Credentials{Email: "user@example.com"}.Validate()
		if errs["password"] != "Password is required" {
			t.Errorf("expected required password error, got %q", errs["password"])
		}
	})
}

func TestRegistration(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		errs := Registration{Name: "Ada", Email: "ada@example.com", Password: "secret1"}.Validate()
		if !errs.Valid() {
			t.Errorf("expected valid registration, got %v", errs)
		}
	})

	t.Run("Short Name", func(t *testing.T) {
		errs := Registration{Name: "Al", Email: "al@example.com", Password: "secret1"}.Validate()
		if errs["name"] != "Minimum 3 characters" {
			t.Errorf("expected short name error, got %q", errs["name"])
		}
	})

	t.Run("Missing Name", func(t *testing.T) {
		errs := Registration{Email: "al@example.com", Password: "secret1"}.Validate()
		if errs["name"] != "Full Name is required" {
			t.Errorf("expected required name error, got %q", errs["name"])
		}
	})

	t.Run("Collects All Errors", func(t *testing.T) {
		errs := Registration{}.Validate()
		if len(errs) != 3 {
			t.Errorf("expected three field errors, got %d: %v", len(errs), errs)
		}
	})
}

func TestPlaylistForm(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		errs := PlaylistForm{Name: "Road Trip", Description: "Long drives"}.Validate()
		if !errs.Valid() {
			t.Errorf("expected valid form, got %v", errs)
		}
	})

	t.Run("Blank Fields", func(t *testing.T) {
		errs := PlaylistForm{Name: "   ", Description: ""}.Validate()
		if errs["name"] != "Name is required" {
			t.Errorf("expected name error, got %q", errs["name"])
		}
		if errs["description"] != "Description is required" {
			t.Errorf("expected description error, got %q", errs["description"])
		}
	})
}
