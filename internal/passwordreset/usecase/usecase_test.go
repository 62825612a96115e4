package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/hash"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
)

var t0 = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

type fakeDB struct {
	mu        sync.Mutex
	accounts  map[string]entity.Account
	tokens    map[string]*entity.ResetToken
	passwords map[string]string

	failCreate error
	failCommit error
	deleted    []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		accounts: map[string]entity.Account{
			"student:ana@mabini.edu.ph":   {Email: "ana@mabini.edu.ph", FirstName: "Ana", LastName: "Reyes", Status: "active"},
			"teacher:ben@mabini.edu.ph":   {Email: "ben@mabini.edu.ph", FirstName: "Ben", LastName: "Santos", Status: "inactive"},
			"teacher:carla@mabini.edu.ph": {Email: "carla@mabini.edu.ph", FirstName: "Carla", LastName: "Lim", Status: "active"},
		},
		tokens:    map[string]*entity.ResetToken{},
		passwords: map[string]string{},
	}
}

func (f *fakeDB) GetAccount(_ context.Context, role entity.Role, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[role.String()+":"+email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeDB) GetLatestUnusedToken(_ context.Context, role entity.Role, email, codeHash string) (*entity.ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var best *entity.ResetToken
	for _, t := range f.tokens {
		if t.Role != role || t.Email != email || t.CodeHash != codeHash || t.Used {
			continue
		}
		if best == nil || t.CreatedAt.After(best.CreatedAt) {
			best = t
		}
	}
	if best == nil {
		return nil, goerror.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *fakeDB) GetUnusedToken(_ context.Context, id string, role entity.Role, email string) (*entity.ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[id]
	if !ok || t.Used || t.Role != role || t.Email != email {
		return nil, goerror.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeDB) ListPurgeableTokens(_ context.Context, cutoff time.Time, limit int) ([]entity.ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.ResetToken
	for _, t := range f.tokens {
		if t.ExpiresAt.Before(cutoff) || (t.Used && t.UsedAt != nil && t.UsedAt.Before(cutoff)) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDB) CreateToken(_ context.Context, tok entity.ResetToken) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tokens[tok.ID] = &tok
	return nil
}

func (f *fakeDB) MarkTokenVerified(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[id]
	if !ok {
		return goerror.ErrNotFound
	}
	if t.VerifiedAt == nil {
		t.VerifiedAt = &at
	}
	return nil
}

func (f *fakeDB) CommitPassword(_ context.Context, in entity.CommitPassword) error {
	if f.failCommit != nil {
		return f.failCommit
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[in.TokenID]
	if !ok || t.Used {
		return goerror.ErrConflict
	}
	key := in.Role.String() + ":" + in.Email
	if _, ok := f.accounts[key]; !ok {
		return goerror.ErrNotFound
	}
	t.Used = true
	t.UsedAt = &in.At
	f.passwords[key] = in.Password
	return nil
}

func (f *fakeDB) DeleteTokens(_ context.Context, ids []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := f.tokens[id]; ok {
			delete(f.tokens, id)
			f.deleted = append(f.deleted, id)
			n++
		}
	}
	return n, nil
}

type fakeMail struct {
	sent []entity.CodeMail
	err  error
}

func (m *fakeMail) SendCode(_ context.Context, in entity.CodeMail) error {
	m.sent = append(m.sent, in)
	return m.err
}

type fakeMQ struct {
	events []ResetCompletedEvent
	err    error
}

func (m *fakeMQ) PublishResetCompleted(_ context.Context, ev ResetCompletedEvent) error {
	m.events = append(m.events, ev)
	return m.err
}

type fakeArchive struct {
	batches [][]entity.ResetToken
	err     error
}

func (a *fakeArchive) Archive(_ context.Context, rows []entity.ResetToken) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.batches = append(a.batches, rows)
	return "password-reset-tokens/batch", nil
}

type seqOTP struct {
	codes []string
	i     int
}

func (g *seqOTP) Generate() (string, error) {
	c := g.codes[g.i%len(g.codes)]
	g.i++
	return c, nil
}

type fakeThrottle struct {
	held    map[string]time.Time
	clock   clock.Clocker
	err     error
	lockErr error
	locked  bool
}

func (f *fakeThrottle) Acquire(_ context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	if until, ok := f.held[key]; ok && f.clock.Now().Before(until) {
		return false, until.Sub(f.clock.Now()), nil
	}
	f.held[key] = f.clock.Now().Add(window)
	return true, 0, nil
}

func (f *fakeThrottle) Forget(_ context.Context, key string) error {
	delete(f.held, key)
	return nil
}

func (f *fakeThrottle) Lock(context.Context, string, string, time.Duration) (bool, error) {
	if f.lockErr != nil {
		return false, f.lockErr
	}
	return !f.locked, nil
}

func (f *fakeThrottle) Release(context.Context, string, string) error { return nil }

type harness struct {
	uc      *Usecase
	db      *fakeDB
	mail    *fakeMail
	mq      *fakeMQ
	archive *fakeArchive
	clock   *clock.Manual
	thr     *fakeThrottle
	otp     *seqOTP
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	h := &harness{
		db:      newFakeDB(),
		mail:    &fakeMail{},
		mq:      &fakeMQ{},
		archive: &fakeArchive{},
		clock:   clock.NewManual(t0),
		otp:     &seqOTP{codes: []string{"482913", "105577", "999000"}},
	}
	h.thr = &fakeThrottle{held: map[string]time.Time{}, clock: h.clock}

	h.uc = New(Dependency{
		RepoDB:        h.db,
		RepoMail:      h.mail,
		RepoMessaging: h.mq,
		RepoArchive:   h.archive,
		Throttle:      h.thr,
		Validator:     v,
		CodeHash:      hash.NewHMACSHA256("test-secret"),
		PasswordHash:  hash.NewPlain(),
		OTP:           h.otp,
		UUID:          uid.NewUUID(),
		Clock:         h.clock,
		Instrument:    instrument.NewNoop(),
		Options:       opts,
	})
	return h
}

func codeOf(t *testing.T, err error) goerror.Code {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T (%v)", err, err)
	}
	return ge.Code()
}

func msgOf(err error) string {
	var ge *goerror.Error
	if errors.As(err, &ge) {
		return ge.Msg()
	}
	return ""
}

func errorsAs(err error, target **goerror.Error) bool {
	return errors.As(err, target)
}
