// Package auth manages credential records and the active session marker on
// top of the key-value store. Sessions expire lazily 24 hours after sign-in;
// expiry is evaluated on read, there is no background timer.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sadopc/fitbot/internal/store"
)

const (
	usersKey   = "users"
	sessionKey = "currentUser"
	sessionTTL = 24 * time.Hour
)

var (
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrNotFound           = errors.New("no account found with this email")
	ErrInvalidCredentials = errors.New("invalid password")
)

// ValidationError reports which registration/sign-in requirements failed.
// It is recoverable: the caller re-prompts.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credential is one stored account record, keyed by normalized email.
type Credential struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"password"`
	CreatedAt      time.Time `json:"createdAt"`
	LastLogin      time.Time `json:"lastLogin"`
}

// Session marks the currently authenticated identity. At most one exists.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LoginTime time.Time `json:"loginTime"`
}

// Service implements registration, sign-in, and session handling.
type Service struct {
	kv  store.KV
	now func() time.Time
}

func NewService(kv store.KV) *Service {
	return &Service{kv: kv, now: time.Now}
}

// Register validates the input, creates a credential record, and opens a
// session. Either both the record and the session are committed or neither.
func (s *Service) Register(name, email, password, confirmPassword string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, &ValidationError{Reasons: []string{"please fill in all fields"}}
	}
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Reasons: []string{"please enter a valid email address"}}
	}
	if missing := passwordIssues(password); len(missing) > 0 {
		return nil, &ValidationError{Reasons: []string{"password must include: " + strings.Join(missing, ", ")}}
	}
	if password != confirmPassword {
		return nil, &ValidationError{Reasons: []string{"passwords do not match"}}
	}

	rawUsers, hadUsers, err := s.kv.Get(usersKey)
	if err != nil {
		return nil, err
	}
	users, err := decodeUsers(rawUsers, hadUsers)
	if err != nil {
		return nil, err
	}
	if _, exists := users[email]; exists {
		return nil, ErrDuplicateAccount
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	users[email] = Credential{
		Name:           name,
		Email:          email,
		PasswordDigest: string(digest),
		CreatedAt:      now,
		LastLogin:      now,
	}

	if err := s.saveUsers(users); err != nil {
		return nil, err
	}

	session := &Session{ID: uuid.NewString(), Name: name, Email: email, LoginTime: now}
	if err := s.writeSession(session); err != nil {
		// Roll the record back so a half-registered account never exists.
		if hadUsers {
			s.kv.Set(usersKey, rawUsers)
		} else {
			s.kv.Delete(usersKey)
		}
		return nil, err
	}
	return session, nil
}

// SignIn verifies the password digest, bumps lastLogin, and opens a new
// session marker.
func (s *Service) SignIn(email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, &ValidationError{Reasons: []string{"please fill in all fields"}}
	}
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Reasons: []string{"please enter a valid email address"}}
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	cred, ok := users[email]
	if !ok {
		return nil, ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordDigest), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	cred.LastLogin = now
	users[email] = cred
	if err := s.saveUsers(users); err != nil {
		return nil, err
	}

	session := &Session{ID: uuid.NewString(), Name: cred.Name, Email: email, LoginTime: now}
	if err := s.writeSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// CurrentSession returns the active session, or nil when none exists. A
// marker older than 24 hours is cleared as a side effect of the read.
func (s *Service) CurrentSession() (*Session, error) {
	raw, ok, err := s.kv.Get(sessionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// A corrupt marker is as good as no marker.
		s.kv.Delete(sessionKey)
		return nil, nil
	}

	if s.now().Sub(session.LoginTime) >= sessionTTL {
		if err := s.kv.Delete(sessionKey); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &session, nil
}

// SignOut clears the session marker. Idempotent.
func (s *Service) SignOut() error {
	return s.kv.Delete(sessionKey)
}

// NormalizeEmail lower-cases and trims an email so it can serve as a record
// key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// passwordIssues checks the composite policy: at least 8 characters with
// uppercase, lowercase, digit, and a symbol.
func passwordIssues(password string) []string {
	var missing []string
	if len(password) < 8 {
		missing = append(missing, "at least 8 characters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		missing = append(missing, "an uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		missing = append(missing, "a lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		missing = append(missing, "a number")
	}
	if !strings.ContainsAny(password, `!@#$%^&*(),.?":{}|<>`) {
		missing = append(missing, "a special character")
	}
	return missing
}

func (s *Service) loadUsers() (map[string]Credential, error) {
	raw, ok, err := s.kv.Get(usersKey)
	if err != nil {
		return nil, err
	}
	return decodeUsers(raw, ok)
}

func decodeUsers(raw string, ok bool) (map[string]Credential, error) {
	users := make(map[string]Credential)
	if !ok {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode user records: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(users map[string]Credential) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user records: %w", err)
	}
	return s.kv.Set(usersKey, string(data))
}

func (s *Service) writeSession(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.kv.Set(sessionKey, string(data))
}
