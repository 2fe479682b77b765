package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/jwt"
)

// testCounter returns an unregistered counter so tests never collide on the
// default prometheus registry.
func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

type FakeUserRepository struct {
	usersByEmail map[string]*user.User
	usersByUUID  map[user.UUID]*user.User

	createdUsers  []user.User
	passwordByUID map[user.UUID]string
	internalIDs   map[user.UUID]user.ID

	createErr error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		usersByEmail:  map[string]*user.User{},
		usersByUUID:   map[user.UUID]*user.User{},
		passwordByUID: map[user.UUID]string{},
	}
}

func (f *FakeUserRepository) add(u *user.User) {
	f.usersByEmail[u.Email] = u
	f.usersByUUID[u.UUID] = u
}

func (f *FakeUserRepository) FetchUserByUUID(_ context.Context, uid user.UUID) (*user.User, error) {
	return f.usersByUUID[uid], nil
}

func (f *FakeUserRepository) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	return f.usersByEmail[email], nil
}

func (f *FakeUserRepository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdUsers = append(f.createdUsers, req)
	u := req
	u.UUID = uuid.New()
	f.add(&u)
	return &u, nil
}

func (f *FakeUserRepository) UpdateProfile(_ context.Context, req user.User) (*user.User, error) {
	u := f.usersByUUID[req.UUID]
	if u == nil {
		return nil, nil
	}
	u.Username = req.Username
	u.Email = req.Email
	return u, nil
}

func (f *FakeUserRepository) UpdatePassword(_ context.Context, uid user.UUID, passwordHash string) error {
	f.passwordByUID[uid] = passwordHash
	if u := f.usersByUUID[uid]; u != nil {
		h := passwordHash
		u.PasswordHash = &h
	}
	return nil
}

func (f *FakeUserRepository) FetchInternalID(_ context.Context, uid user.UUID) (user.ID, error) {
	if id, ok := f.internalIDs[uid]; ok {
		return id, nil
	}
	return 1, nil
}

func newAuthForTest(repo user.Repository) *AuthService {
	return &AuthService{
		userRepository: repo,
		jwtService:     jwt.New("test-secret"),
		mCounter:       testCounter(),
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := NewFakeUserRepository()
	as := newAuthForTest(repo)

	u, err := as.Register(context.Background(), "  alice ", "Alice@Example.com ", "hunter2-99")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)

	require.Len(t, repo.createdUsers, 1)
	stored := repo.createdUsers[0]
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter2-99", *stored.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("hunter2-99")))
}

func TestAuthService_Login_Table(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-pass-1"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	repo := NewFakeUserRepository()
	repo.add(&user.User{
		UUID:         uuid.New(),
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: &h,
	})

	as := newAuthForTest(repo)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "bob@example.com", "correct-pass-1", nil},
		{"email is normalized before lookup", " BOB@Example.com ", "correct-pass-1", nil},
		{"wrong password", "bob@example.com", "wrong-pass", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "correct-pass-1", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			token, u, err := as.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.Equal(t, "bob@example.com", u.Email)
			assert.NotEmpty(t, token)
		})
	}
}

func TestAuthService_Login_TokenCarriesIdentity(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw-123456"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	uid := uuid.New()
	repo := NewFakeUserRepository()
	repo.add(&user.User{UUID: uid, Email: "carol@example.com", PasswordHash: &h})

	as := newAuthForTest(repo)

	token, _, err := as.Login(context.Background(), "carol@example.com", "pw-123456")
	require.NoError(t, err)

	claims, err := as.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uid.String(), claims.UserID)
	assert.Equal(t, "carol@example.com", claims.Email)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass-1"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	uid := uuid.New()
	repo := NewFakeUserRepository()
	repo.add(&user.User{UUID: uid, Email: "dave@example.com", PasswordHash: &h})

	as := newAuthForTest(repo)

	t.Run("wrong current password", func(t *testing.T) {
		err := as.ChangePassword(context.Background(), uid, "not-the-old-pass", "new-pass-1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, repo.passwordByUID)
	})

	t.Run("success stores a new hash", func(t *testing.T) {
		err := as.ChangePassword(context.Background(), uid, "old-pass-1", "new-pass-1")
		require.NoError(t, err)

		stored, ok := repo.passwordByUID[uid]
		require.True(t, ok)
		assert.NotEqual(t, "new-pass-1", stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-pass-1")))
	})
}
