// Package validation holds the client-side form checks. Anything caught
// here is surfaced per-field and never reaches the network; the backend
// still has the final say on everything that passes.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const minPasswordLength = 8

var (
	emailRegexp       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRegexp       = regexp.MustCompile(`[A-Z]`)
	lowerRegexp       = regexp.MustCompile(`[a-z]`)
	digitRegexp       = regexp.MustCompile(`[0-9]`)
	specialCharRegexp = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// FieldErrors maps form field names to their validation message. A nil or
// empty map means the form is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "valid"
	}
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// PasswordStrength reports which of the strength requirements a password
// meets, one flag per indicator on the registration form.
type PasswordStrength struct {
	HasMinLength   bool
	HasUppercase   bool
	HasLowercase   bool
	HasNumber      bool
	HasSpecialChar bool
}

// Strong is true when every indicator is satisfied.
func (ps PasswordStrength) Strong() bool {
	return ps.HasMinLength && ps.HasUppercase && ps.HasLowercase && ps.HasNumber && ps.HasSpecialChar
}

// CheckPassword evaluates the strength indicators for a password.
func CheckPassword(password string) PasswordStrength {
	return PasswordStrength{
		HasMinLength:   len(password) >= minPasswordLength,
		HasUppercase:   upperRegexp.MatchString(password),
		HasLowercase:   lowerRegexp.MatchString(password),
		HasNumber:      digitRegexp.MatchString(password),
		HasSpecialChar: specialCharRegexp.MatchString(password),
	}
}

// Validator provides the form-level checks used before any network call.
type Validator struct {
	nowFunc func() time.Time
}

// ValidatorOption modifies a Validator during construction.
type ValidatorOption func(*Validator)

// WithNowFunc sets the clock used for expiry validation (for testing).
func WithNowFunc(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.nowFunc = now
	}
}

// NewValidator creates a new Validator instance.
func NewValidator(options ...ValidatorOption) *Validator {
	v := &Validator{nowFunc: time.Now}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// ValidateRegistration checks the registration form. The confirm field is
// compared but never sent anywhere.
func (v *Validator) ValidateRegistration(username, email, password, confirmPassword string) FieldErrors {
	errs := FieldErrors{}

	username = strings.TrimSpace(username)
	if username == "" {
		errs["username"] = "username is required"
	} else if len(username) < 3 {
		errs["username"] = "username must be at least 3 characters"
	}

	if msg := validateEmail(email); msg != "" {
		errs["email"] = msg
	}

	if password == "" {
		errs["password"] = "password is required"
	} else if !CheckPassword(password).Strong() {
		errs["password"] = "password must be at least 8 characters and include uppercase, lowercase, number, and special character"
	}

	if password != confirmPassword {
		errs["confirmPassword"] = "passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateLogin checks the sign-in form.
func (v *Validator) ValidateLogin(username, password string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(username) == "" {
		errs["username"] = "username is required"
	}
	if password == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateLongURL checks a URL before asking the backend to shorten it.
func (v *Validator) ValidateLongURL(longURL string) error {
	longURL = strings.TrimSpace(longURL)
	if longURL == "" {
		return fmt.Errorf("long URL is required")
	}

	u, err := url.Parse(longURL)
	if err != nil {
		return fmt.Errorf("invalid URL format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

// ValidateExpiry checks an optional expiry date. Nil means no expiry and is
// always valid.
func (v *Validator) ValidateExpiry(expiresAt *time.Time) error {
	if expiresAt == nil {
		return nil
	}
	if !expiresAt.After(v.nowFunc()) {
		return fmt.Errorf("expiry date must be in the future")
	}
	return nil
}

func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if !emailRegexp.MatchString(email) {
		return "please enter a valid email address"
	}
	return ""
}
