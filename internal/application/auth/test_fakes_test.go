package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/avercheq/taskhive/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	nextID     int64
	byID       map[int64]domain.User
	byUsername map[string]domain.User

	// injected errors (if set, method returns error)
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[int64]domain.User{},
		byUsername: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) add(u domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	}
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
	return u
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return domain.User{}, f.getErr
	}
	u, ok := f.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return domain.User{}, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	f.mu.Lock()
	if _, exists := f.byUsername[u.Username]; exists {
		f.mu.Unlock()
		return domain.User{}, domain.ErrUsernameAlreadyExists()
	}
	f.mu.Unlock()
	return f.add(u), nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signFn func(username string, userID int64, role string) (string, error)
}

func (f *fakeSigner) Sign(username string, userID int64, role string) (string, error) {
	if f.signFn != nil {
		return f.signFn(username, userID, role)
	}
	return fmt.Sprintf("tok.%s.%d.%s", username, userID, role), nil
}

func (f *fakeSigner) Verify(token string) (TokenClaims, error) {
	return TokenClaims{}, errors.New("not implemented in fake")
}

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	return NewService(users, hasher, signer), users, hasher, signer
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
