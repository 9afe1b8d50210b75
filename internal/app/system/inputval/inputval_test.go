package inputval

import (
	"errors"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user..name@example.com", false},
		{"user@example..com", false},
		{"user@.example.com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type roleInput struct {
	Name        string   `json:"name" validate:"required,max=60"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
}

type applicantInput struct {
	Email string   `json:"email" validate:"required,loginemail"`
	Areas []string `json:"ministryAreas" validate:"required,min=1,dive,ministryarea"`
}

func TestValidate_OK(t *testing.T) {
	in := roleInput{Name: "Secretary", Permissions: []string{"view_minutes", "upload_minutes"}}
	if err := Validate(in); err != nil {
		t.Fatalf("Validate: unexpected error %v", err)
	}
}

func TestValidate_UnknownPermission(t *testing.T) {
	in := roleInput{Name: "Secretary", Permissions: []string{"view_minutes", "launch_rockets"}}
	err := Validate(in)

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if msg := verr.Fields["permissions[1]"]; msg != "is not a known permission" {
		t.Errorf("permissions[1]: got %q", msg)
	}
}

func TestValidate_RequiredUsesJSONName(t *testing.T) {
	err := Validate(roleInput{})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Errorf("expected error keyed by json name, got %v", verr.Fields)
	}
}

func TestValidate_DomainTags(t *testing.T) {
	err := Validate(applicantInput{Email: "not-an-email", Areas: []string{"sound", "catering"}})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Error("expected email error")
	}
	if _, ok := verr.Fields["ministryAreas[1]"]; !ok {
		t.Errorf("expected ministryAreas[1] error, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["ministryAreas[0]"]; ok {
		t.Error("did not expect error for a known area")
	}
}
