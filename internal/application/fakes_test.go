package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/domain"
	"github.com/nestfeed/server/internal/ports"
)

type memIdentityRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.Identity
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{users: map[uuid.UUID]domain.Identity{}}
}

func (r *memIdentityRepo) Create(_ context.Context, params ports.CreateIdentityParams) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == params.Email || u.Username == params.Username {
			return domain.Identity{}, domain.ErrConflict
		}
	}
	identity := domain.Identity{
		UserID:       uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		Name:         params.Name,
		Surname:      params.Surname,
		PasswordHash: params.PasswordHash,
		CreatedAt:    params.CreatedAtUTC,
		UpdatedAt:    params.CreatedAtUTC,
	}
	r.users[identity.UserID] = identity
	return identity, nil
}

func (r *memIdentityRepo) GetByEmail(_ context.Context, email string) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.Identity{}, domain.ErrNotFound
}

func (r *memIdentityRepo) GetByUsername(_ context.Context, username string) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.Identity{}, domain.ErrNotFound
}

func (r *memIdentityRepo) GetByID(_ context.Context, userID uuid.UUID) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.Identity{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *memIdentityRepo) SetActive(_ context.Context, userID uuid.UUID, activatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = true
	u.UpdatedAt = activatedAt
	r.users[userID] = u
	return nil
}

func (r *memIdentityRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	r.users[userID] = u
	return nil
}

func (r *memIdentityRepo) delete(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
}

type memActivationRepo struct {
	mu      sync.Mutex
	records map[string]domain.ActivationRecord
}

func newMemActivationRepo() *memActivationRepo {
	return &memActivationRepo{records: map[string]domain.ActivationRecord{}}
}

func (r *memActivationRepo) Create(_ context.Context, record domain.ActivationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Token] = record
	return nil
}

func (r *memActivationRepo) GetByToken(_ context.Context, token string) (domain.ActivationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[token]
	if !ok {
		return domain.ActivationRecord{}, domain.ErrNotFound
	}
	return record, nil
}

func (r *memActivationRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, token)
	return nil
}

func (r *memActivationRepo) tokenFor(userID uuid.UUID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, record := range r.records {
		if record.UserID == userID {
			return token, true
		}
	}
	return "", false
}

func (r *memActivationRepo) expire(token string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[token]
	if !ok {
		return
	}
	record.ExpiresAt = at
	r.records[token] = record
}

type memRefreshRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]domain.RefreshRecord
}

func newMemRefreshRepo() *memRefreshRepo {
	return &memRefreshRepo{records: map[uuid.UUID]domain.RefreshRecord{}}
}

func (r *memRefreshRepo) Upsert(_ context.Context, userID uuid.UUID, token string, expiresAt, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[userID]
	if !ok {
		record = domain.RefreshRecord{UserID: userID, CreatedAt: now}
	}
	record.Token = token
	record.ExpiresAt = expiresAt
	record.UpdatedAt = now
	r.records[userID] = record
	return nil
}

func (r *memRefreshRepo) GetByUser(_ context.Context, userID uuid.UUID) (domain.RefreshRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[userID]
	if !ok {
		return domain.RefreshRecord{}, domain.ErrNotFound
	}
	return record, nil
}

func (r *memRefreshRepo) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, record := range r.records {
		if record.Token == token {
			delete(r.records, userID)
		}
	}
	return nil
}

func (r *memRefreshRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type memFollowRepo struct {
	mu        sync.Mutex
	followers map[uuid.UUID]int64
	following map[uuid.UUID]int64
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{followers: map[uuid.UUID]int64{}, following: map[uuid.UUID]int64{}}
}

func (r *memFollowRepo) Counts(_ context.Context, userID uuid.UUID) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.followers[userID], r.following[userID], nil
}

type memThrottle struct {
	mu       sync.Mutex
	counters map[string]int
}

func newMemThrottle() *memThrottle {
	return &memThrottle{counters: map[string]int{}}
}

func (t *memThrottle) key(identifier, origin string) string {
	return identifier + ":" + origin
}

func (t *memThrottle) Attempts(_ context.Context, identifier, origin string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counters[t.key(identifier, origin)], nil
}

func (t *memThrottle) RecordFailure(_ context.Context, identifier, origin string, _ time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counters[t.key(identifier, origin)]++
	return t.counters[t.key(identifier, origin)], nil
}

func (t *memThrottle) Clear(_ context.Context, identifier, origin string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.counters, t.key(identifier, origin))
	return nil
}

type memResetStore struct {
	mu        sync.Mutex
	tokens    map[string]uuid.UUID
	cooldowns map[string]bool
}

func newMemResetStore() *memResetStore {
	return &memResetStore{tokens: map[string]uuid.UUID{}, cooldowns: map[string]bool{}}
}

func (s *memResetStore) SaveToken(_ context.Context, tokenHash string, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = userID
	return nil
}

func (s *memResetStore) LookupToken(_ context.Context, tokenHash string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[tokenHash]
	if !ok {
		return uuid.Nil, false, nil
	}
	return userID, true, nil
}

func (s *memResetStore) DeleteToken(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenHash)
	return nil
}

func (s *memResetStore) MarkCooldown(_ context.Context, email string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cooldowns[email] = true
	return nil
}

func (s *memResetStore) InCooldown(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cooldowns[email], nil
}

func (s *memResetStore) tokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// plainHasher keeps unit tests fast; bcrypt has its own adapter tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type stubIssuer struct {
	mu     sync.Mutex
	serial int
	claims map[string]ports.SessionClaims
}

func newStubIssuer() *stubIssuer {
	return &stubIssuer{claims: map[string]ports.SessionClaims{}}
}

func (i *stubIssuer) IssuePair(userID uuid.UUID, now time.Time) (ports.TokenPair, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.serial++
	claims := ports.SessionClaims{UserID: userID, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	pair := ports.TokenPair{
		AccessToken:  fmt.Sprintf("access-%s-%d", userID, i.serial),
		RefreshToken: fmt.Sprintf("refresh-%s-%d", userID, i.serial),
	}
	i.claims[pair.AccessToken] = claims
	i.claims[pair.RefreshToken] = claims
	return pair, nil
}

func (i *stubIssuer) VerifyAccess(token string) (ports.SessionClaims, error) {
	return i.verify(token, "access-")
}

func (i *stubIssuer) VerifyRefresh(token string) (ports.SessionClaims, error) {
	return i.verify(token, "refresh-")
}

func (i *stubIssuer) verify(token, prefix string) (ports.SessionClaims, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !strings.HasPrefix(token, prefix) {
		return ports.SessionClaims{}, domain.ErrUnauthorized
	}
	claims, ok := i.claims[token]
	if !ok {
		return ports.SessionClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

type sentMail struct {
	to   string
	link string
}

type recordingMailer struct {
	mu          sync.Mutex
	activations []sentMail
	resets      []sentMail
}

func (m *recordingMailer) SendActivationMail(_ context.Context, to, activationLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activations = append(m.activations, sentMail{to: to, link: activationLink})
	return nil
}

func (m *recordingMailer) SendPasswordResetMail(_ context.Context, to, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, sentMail{to: to, link: resetLink})
	return nil
}

func (m *recordingMailer) activationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.activations)
}

func (m *recordingMailer) lastActivation() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.activations) == 0 {
		return sentMail{}, false
	}
	return m.activations[len(m.activations)-1], true
}

func (m *recordingMailer) resetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resets)
}

func (m *recordingMailer) lastReset() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.resets) == 0 {
		return sentMail{}, false
	}
	return m.resets[len(m.resets)-1], true
}

type fixture struct {
	service     *Service
	identities  *memIdentityRepo
	activations *memActivationRepo
	refreshes   *memRefreshRepo
	follows     *memFollowRepo
	throttle    *memThrottle
	resets      *memResetStore
	issuer      *stubIssuer
	mailer      *recordingMailer
	now         time.Time
	nowMu       sync.Mutex
}

func newFixture() *fixture {
	f := &fixture{
		identities:  newMemIdentityRepo(),
		activations: newMemActivationRepo(),
		refreshes:   newMemRefreshRepo(),
		follows:     newMemFollowRepo(),
		throttle:    newMemThrottle(),
		resets:      newMemResetStore(),
		issuer:      newStubIssuer(),
		mailer:      &recordingMailer{},
		now:         time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service = NewService(Dependencies{
		Config: Config{
			AccessTokenTTL:    time.Hour,
			RefreshTokenTTL:   7 * 24 * time.Hour,
			ActivationTTL:     24 * time.Hour,
			ResetTokenTTL:     15 * time.Minute,
			ResetCooldown:     15 * time.Minute,
			ThrottleWindow:    10 * time.Minute,
			ThrottleThreshold: 5,
			ClientURL:         "https://app.example.com",
		},
		Identities:    f.identities,
		Activations:   f.activations,
		RefreshTokens: f.refreshes,
		Follows:       f.follows,
		Throttle:      f.throttle,
		Resets:        f.resets,
		Hasher:        plainHasher{},
		Tokens:        f.issuer,
		Mailer:        f.mailer,
		Now:           f.clock,
	})
	return f
}

func (f *fixture) clock() time.Time {
	f.nowMu.Lock()
	defer f.nowMu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.nowMu.Lock()
	defer f.nowMu.Unlock()
	f.now = f.now.Add(d)
}
