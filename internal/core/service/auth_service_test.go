package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/movieverse/api/internal/core/domain"
	"github.com/movieverse/api/internal/core/ports"
)

// stubUserRepo mimics the unique indexes of the real stores.
type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = strconv.Itoa(r.nextID)
	created.CreatedAt = time.Now().UTC()
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newTestAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour), zerolog.Nop(), WithHashCost(bcrypt.MinCost))
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an id")
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("expected normalised identity, got %q %q", user.Username, user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@example.com", Password: "pass"},
		{Username: "bob", Email: "  ", Password: "pass"},
		{Username: "bob", Email: "bob@example.com", Password: ""},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pass"})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Email: "other@example.com", Password: "pass2"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	_, err = svc.Register(context.Background(), ports.RegisterInput{Username: "bobby", Email: "BOB@example.com", Password: "pass2"})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.users))
	}
}

func TestAuthService_Register_ConcurrentDuplicates(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), ports.RegisterInput{
				Username: "racer", Email: "racer@example.com", Password: "pass",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, succeeded, conflicts)
	}
}

func TestAuthService_Register_RepoFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTestAuthService(&failingUserRepo{err: boom})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carl", Email: "c@example.com", Password: "pass"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
	if errors.Is(err, domain.ErrConflict) {
		t.Fatalf("storage failure must not look like a conflict")
	}
}

type failingUserRepo struct{ err error }

func (r *failingUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, r.err
}

func (r *failingUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, r.err
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Email: "carol@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if session.User == nil || session.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", session.ExpiresAt)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != session.User.ID {
		t.Fatalf("expected sub %s, got %v", session.User.ID, claims["sub"])
	}
}

func TestAuthService_Login_TrimsUsername(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice ", Email: "alice@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, username := range []string{"alice ", "  alice", "alice"} {
		session, err := svc.Login(context.Background(), username, "s3cret")
		if err != nil {
			t.Fatalf("login as %q failed: %v", username, err)
		}
		if session.User.Username != "alice" {
			t.Fatalf("unexpected user: %+v", session.User)
		}
	}

	if _, err := svc.Login(context.Background(), "   ", "s3cret"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Login_FailuresLookAlike(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Email: "dave@example.com", Password: "goodpass"})

	_, wrongPassword := svc.Login(context.Background(), "dave", "badpass")
	_, unknownUser := svc.Login(context.Background(), "ghost", "badpass")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("failures must be indistinguishable: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestAuthService_Login_RepoFailure(t *testing.T) {
	boom := errors.New("connection reset")
	repo := newStubUserRepo()
	repo.findErr = boom
	svc := newTestAuthService(repo)

	if _, err := svc.Login(context.Background(), "erin", "pass"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
