package impl

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sync"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
)

// Same rules as the proper_email and proper_username CHECK constraints.
var (
	memEmailPattern    = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	memUsernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z_0-9]*$`)
)

type accountKey struct {
	workspaceID string
	username    string
}

// memStore is an in-memory stand-in for the two tables. Inserts enforce the same keys and
// format rules as the schema, and transactions keep an undo log so a failed Execute
// reverts exactly the rows it wrote.
type memStore struct {
	mu          sync.Mutex
	credentials map[string]entity.Credential
	accounts    map[accountKey]entity.Account

	rootWrites int
	txWrites   int
	commits    int
	rollbacks  int

	// Fault and race injection.
	existsErr        error
	createAccountErr error
	updateErr        error
	afterEmailCheck  func(s *memStore)
	beforeUpdateHash func(s *memStore)
}

func newMemStore() *memStore {
	return &memStore{
		credentials: make(map[string]entity.Credential),
		accounts:    make(map[accountKey]entity.Account),
	}
}

// seedCredential inserts a committed credential as if by an earlier request.
func (s *memStore) seedCredential(c entity.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[c.Email] = c
}

func (s *memStore) seedAccount(a entity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[accountKey{a.WorkspaceID, a.Username}] = a
}

func (s *memStore) credential(email string) (entity.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.credentials[email]

	return c, ok
}

func (s *memStore) account(workspaceID, username string) (entity.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountKey{workspaceID, username}]

	return a, ok
}

func (s *memStore) counts() (credentials, accounts int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.credentials), len(s.accounts)
}

// memTx records the undo actions of one transaction.
type memTx struct {
	undo []func()
}

// memCredentialRepo implements repository.CredentialRepository. tx is nil for the root repository.
type memCredentialRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memCredentialRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.store.mu.Lock()
	if r.store.existsErr != nil {
		defer r.store.mu.Unlock()

		return false, r.store.existsErr
	}
	_, ok := r.store.credentials[email]
	hook := r.store.afterEmailCheck
	r.store.mu.Unlock()

	if hook != nil {
		hook(r.store)
	}

	return ok, nil
}

func (r *memCredentialRepo) FindByEmail(_ context.Context, email string) (*entity.Credential, error) {
	c, ok := r.store.credential(email)
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return &c, nil
}

func (r *memCredentialRepo) Create(_ context.Context, credential *entity.Credential) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	r.countWrite()
	if !memEmailPattern.MatchString(credential.Email) {
		return domainerrors.ErrInvalidEmail.WithDetails("proper_email")
	}
	if _, taken := s.credentials[credential.Email]; taken {
		return domainerrors.ErrEmailExists.WithDetails("password_pkey")
	}

	s.credentials[credential.Email] = *credential
	r.onUndo(func() { delete(s.credentials, credential.Email) })

	return nil
}

func (r *memCredentialRepo) UpdatePasswordHash(_ context.Context, email, passwordHash string) error {
	if hook := r.store.beforeUpdateHash; hook != nil {
		hook(r.store)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	r.countWrite()
	if s.updateErr != nil {
		return s.updateErr
	}
	c, ok := s.credentials[email]
	if !ok {
		return repository.ErrCredentialNotFound
	}

	previous := c.PasswordHash
	c.PasswordHash = passwordHash
	s.credentials[email] = c
	r.onUndo(func() {
		c.PasswordHash = previous
		s.credentials[email] = c
	})

	return nil
}

func (r *memCredentialRepo) countWrite() {
	if r.tx == nil {
		r.store.rootWrites++
	} else {
		r.store.txWrites++
	}
}

func (r *memCredentialRepo) onUndo(fn func()) {
	if r.tx != nil {
		r.tx.undo = append(r.tx.undo, fn)
	}
}

// memAccountRepo implements repository.AccountRepository.
type memAccountRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memAccountRepo) ExistsByUsername(_ context.Context, workspaceID, username string) (bool, error) {
	_, ok := r.store.account(workspaceID, username)

	return ok, nil
}

func (r *memAccountRepo) FindByUsername(_ context.Context, workspaceID, username string) (*entity.Account, error) {
	a, ok := r.store.account(workspaceID, username)
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &a, nil
}

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.tx == nil {
		s.rootWrites++
	} else {
		s.txWrites++
	}
	if s.createAccountErr != nil {
		return s.createAccountErr
	}
	if !memUsernamePattern.MatchString(account.Username) {
		return domainerrors.ErrInvalidUsername.WithDetails("proper_username")
	}
	if !memEmailPattern.MatchString(account.Email) {
		return domainerrors.ErrInvalidEmail.WithDetails("proper_email")
	}
	key := accountKey{account.WorkspaceID, account.Username}
	if _, taken := s.accounts[key]; taken {
		return domainerrors.ErrUsernameExists.WithDetails("usr_pkey")
	}

	s.accounts[key] = *account
	if r.tx != nil {
		r.tx.undo = append(r.tx.undo, func() { delete(s.accounts, key) })
	}

	return nil
}

// memFactory hands out repositories bound to one memTx.
type memFactory struct {
	store *memStore
	tx    *memTx
}

func (f *memFactory) CredentialRepo() repository.CredentialRepository {
	return &memCredentialRepo{store: f.store, tx: f.tx}
}

func (f *memFactory) AccountRepo() repository.AccountRepository {
	return &memAccountRepo{store: f.store, tx: f.tx}
}

// memTxManager implements repository.TransactionManager over a memStore.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	tx := &memTx{}

	rollback := func() {
		m.store.mu.Lock()
		defer m.store.mu.Unlock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		m.store.rollbacks++
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(&memFactory{store: m.store, tx: tx}); err != nil {
		rollback()

		return err
	}

	if err := ctx.Err(); err != nil {
		rollback()

		return err
	}

	m.store.mu.Lock()
	m.store.commits++
	m.store.mu.Unlock()

	return nil
}

func (s *memStore) rootCredentialRepo() repository.CredentialRepository {
	return &memCredentialRepo{store: s}
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
