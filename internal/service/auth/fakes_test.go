// internal/service/auth/fakes_test.go
package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/admin"
	"github.com/swayamn72/Aegis2.0/internal/domain/audit"
	"github.com/swayamn72/Aegis2.0/internal/domain/organization"
	"github.com/swayamn72/Aegis2.0/internal/domain/player"
	"github.com/swayamn72/Aegis2.0/internal/domain/ratelimit"
	"github.com/swayamn72/Aegis2.0/internal/domain/session"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
)

func ratePolicy(max, windowMinutes int) ratelimit.Policy {
	return ratelimit.Policy{MaxAttempts: max, WindowMinutes: windowMinutes}
}

// ----- players -----

type fakePlayers struct {
	byEmail   map[string]*player.Player
	passwords map[string]string
	authCalls int
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{byEmail: map[string]*player.Player{}, passwords: map[string]string{}}
}

func (f *fakePlayers) add(email, username, password string) *player.Player {
	p := &player.Player{ID: uuid.New(), Username: username, Email: email}
	f.byEmail[email] = p
	f.passwords[email] = password
	return p
}

func (f *fakePlayers) Authenticate(_ context.Context, email, password string) (*player.Player, error) {
	f.authCalls++
	p, ok := f.byEmail[email]
	if !ok || f.passwords[email] != password {
		return nil, nil
	}
	return p, nil
}

func (f *fakePlayers) Create(_ context.Context, username, email, password string) (*player.Player, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, xerrors.Validation("Email already exists")
	}
	return f.add(email, username, password), nil
}

func (f *fakePlayers) GetByID(_ context.Context, id uuid.UUID) (*player.Player, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakePlayers) GetByEmail(_ context.Context, email string) (*player.Player, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakePlayers) UpdatePassword(_ context.Context, id uuid.UUID, password string) error {
	for _, p := range f.byEmail {
		if p.ID == id {
			f.passwords[p.Email] = password
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakePlayers) VerifyEmail(_ context.Context, id uuid.UUID) error {
	for _, p := range f.byEmail {
		if p.ID == id {
			p.Verified = true
			return nil
		}
	}
	return xerrors.ErrNotFound
}

// ----- admins -----

type fakeAdmins struct {
	byEmail   map[string]*admin.Admin
	passwords map[string]string
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byEmail: map[string]*admin.Admin{}, passwords: map[string]string{}}
}

func (f *fakeAdmins) add(email, username, password, role string, active bool) *admin.Admin {
	a := &admin.Admin{ID: uuid.New(), Username: username, Email: email, Role: role, IsActive: active}
	f.byEmail[email] = a
	f.passwords[email] = password
	return a
}

func (f *fakeAdmins) Authenticate(_ context.Context, email, password string) (*admin.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok || !a.IsActive || a.Locked(time.Now()) || f.passwords[email] != password {
		return nil, nil
	}
	return a, nil
}

func (f *fakeAdmins) GetByID(_ context.Context, id uuid.UUID) (*admin.Admin, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (*admin.Admin, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeAdmins) UpdatePassword(_ context.Context, id uuid.UUID, password string) error {
	for _, a := range f.byEmail {
		if a.ID == id {
			f.passwords[a.Email] = password
			return nil
		}
	}
	return xerrors.ErrNotFound
}

// ----- organizations -----

type fakeOrgs struct {
	byEmail   map[string]*organization.Organization
	passwords map[string]string
}

func newFakeOrgs() *fakeOrgs {
	return &fakeOrgs{byEmail: map[string]*organization.Organization{}, passwords: map[string]string{}}
}

func (f *fakeOrgs) add(email, orgName, password string) *organization.Organization {
	o := &organization.Organization{
		ID:             uuid.New(),
		OrgName:        orgName,
		OwnerName:      "Owner",
		Email:          email,
		ApprovalStatus: organization.ApprovalPending,
	}
	f.byEmail[email] = o
	f.passwords[email] = password
	return o
}

func (f *fakeOrgs) Authenticate(_ context.Context, email, password string) (*organization.Organization, error) {
	o, ok := f.byEmail[email]
	if !ok || f.passwords[email] != password {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrgs) Create(_ context.Context, orgName, ownerName, email, password, country, description string) (*organization.Organization, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, xerrors.Validation("Email already exists")
	}
	o := f.add(email, orgName, password)
	o.OwnerName = ownerName
	o.Country = country
	o.Description = description
	return o, nil
}

func (f *fakeOrgs) GetByID(_ context.Context, id uuid.UUID) (*organization.Organization, error) {
	for _, o := range f.byEmail {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeOrgs) GetByEmail(_ context.Context, email string) (*organization.Organization, error) {
	if o, ok := f.byEmail[email]; ok {
		return o, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeOrgs) UpdatePassword(_ context.Context, id uuid.UUID, password string) error {
	for _, o := range f.byEmail {
		if o.ID == id {
			f.passwords[o.Email] = password
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakeOrgs) VerifyEmail(_ context.Context, id uuid.UUID) error {
	for _, o := range f.byEmail {
		if o.ID == id {
			o.EmailVerified = true
			return nil
		}
	}
	return xerrors.ErrNotFound
}

// ----- sessions -----

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[uuid.UUID]*session.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, userID uuid.UUID, userType, ip, userAgent string) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &session.Session{
		ID:           uuid.New(),
		UserID:       userID,
		UserType:     userType,
		SessionToken: uuid.NewString(),
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(30 * 24 * time.Hour),
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessions) Validate(_ context.Context, sessionID uuid.UUID) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok || !s.Valid(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessions) Refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	f.mu.Lock()
	var old *session.Session
	for _, s := range f.sessions {
		if s.RefreshToken == refreshToken && !s.Revoked {
			old = s
			break
		}
	}
	if old == nil {
		f.mu.Unlock()
		return nil, nil
	}
	old.Revoked = true
	f.mu.Unlock()
	return f.Create(ctx, old.UserID, old.UserType, "", "")
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[sessionID]; ok {
		s.Revoked = true
	}
	return nil
}

func (f *fakeSessions) RevokeAll(_ context.Context, userID uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.Revoked = true
		}
	}
	return nil
}

// ----- rate limiter -----

type fakeLimiter struct {
	counts  map[string]int
	blocked map[string]bool
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: map[string]int{}, blocked: map[string]bool{}}
}

func limiterKey(identifier, identifierType, action string) string {
	return identifier + "|" + identifierType + "|" + action
}

func (f *fakeLimiter) CheckAndIncrement(_ context.Context, identifier, identifierType, action string, p ratelimit.Policy) error {
	key := limiterKey(identifier, identifierType, action)
	if f.blocked[key] {
		return xerrors.ErrRateLimited
	}
	f.counts[key]++
	if f.counts[key] > p.MaxAttempts {
		f.blocked[key] = true
		return xerrors.ErrRateLimited
	}
	return nil
}

func (f *fakeLimiter) IsBlocked(_ context.Context, identifier, identifierType, action string) (bool, error) {
	return f.blocked[limiterKey(identifier, identifierType, action)], nil
}

// ----- audit -----

type auditRecord struct {
	Action        string
	Success       bool
	FailureReason string
	Event         audit.Event
}

type fakeAuditor struct {
	mu      sync.Mutex
	records []auditRecord
}

func (f *fakeAuditor) LogAction(_ context.Context, action string, success bool, failureReason string, ev audit.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, auditRecord{action, success, failureReason, ev})
}

func (f *fakeAuditor) LogAuthAttempt(ctx context.Context, action string, success bool, failureReason string, ev audit.Event) {
	f.LogAction(ctx, action, success, failureReason, ev)
}

func (f *fakeAuditor) last() (auditRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) == 0 {
		return auditRecord{}, false
	}
	return f.records[len(f.records)-1], true
}

// ----- mailer -----

type sentMail struct {
	Kind  string
	To    string
	Name  string
	Token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) SendVerificationEmail(to, name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{"verification", to, name, token})
}

func (f *fakeMailer) SendPasswordResetEmail(to, name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{"reset", to, name, token})
}
