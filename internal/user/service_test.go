// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carterperez-dev/holidays-api/internal/core"
)

type fakeRepo struct {
	rows        map[int64]*User
	nextID      int64
	creates     int
	pwUpdates   map[int64]string
	passwordErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]*User{}, nextID: 1, pwUpdates: map[int64]string{}}
}

func (r *fakeRepo) seed(u User) *User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	row := u
	r.rows[row.ID] = &row
	return &row
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	r.creates++
	u.ID = r.nextID
	u.Active = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.seed(*u)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	row := *u
	return &row, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			row := *u
			return &row, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.rows[u.ID]; !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	row := *u
	r.rows[u.ID] = &row
	return nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	if r.passwordErr != nil {
		return r.passwordErr
	}
	u, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	r.pwUpdates[id] = hash
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, p ListUsersParams) ([]User, int, error) {
	var out []User
	for _, u := range r.rows {
		if p.Active != nil && u.Active != *p.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	return len(r.rows), nil
}

func TestCreateUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	u, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "a@b.c",
		Password: "secret",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret", u.PasswordHash)

	ok, err := core.VerifyPassword("secret", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUser_DuplicateDoesNotInsert(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(User{Email: "a@b.c", Role: RoleUser})
	svc := NewService(repo)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{Email: "a@b.c", Password: "secret", Name: "A"})
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))
	assert.Zero(t, repo.creates)
}

func TestUpdateUser_Partial(t *testing.T) {
	repo := newFakeRepo()
	existing := repo.seed(User{Email: "a@b.c", Name: "Alice", Role: RoleUser, Active: true})
	repo.seed(User{Email: "taken@b.c", Role: RoleUser, Active: true})
	svc := NewService(repo)
	ctx := context.Background()

	inactive := false
	u, err := svc.UpdateUser(ctx, existing.ID, UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, u.Active)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "a@b.c", u.Email)

	taken := "taken@b.c"
	_, err = svc.UpdateUser(ctx, existing.ID, UpdateUserRequest{Email: &taken})
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))

	same := "a@b.c"
	_, err = svc.UpdateUser(ctx, existing.ID, UpdateUserRequest{Email: &same})
	assert.NoError(t, err)

	bad := "superuser"
	_, err = svc.UpdateUser(ctx, existing.ID, UpdateUserRequest{Role: &bad})
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	_, err = svc.UpdateUser(ctx, 999, UpdateUserRequest{})
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestDeleteUser_Self(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed(User{Email: "admin@b.c", Role: RoleAdmin, Active: true})
	other := repo.seed(User{Email: "u@b.c", Role: RoleUser, Active: true})
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.True(t, errors.Is(err, core.ErrSelfDeletion))
	assert.Len(t, repo.rows, 2)

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, other.ID))
	assert.True(t, errors.Is(svc.DeleteUser(ctx, admin.ID, other.ID), core.ErrNotFound))
}

func TestResetPassword(t *testing.T) {
	repo := newFakeRepo()
	u := repo.seed(User{Email: "u@b.c", Role: RoleUser, Active: true})
	svc := NewService(repo)

	require.NoError(t, svc.ResetPassword(context.Background(), u.ID, "brandnew"))
	ok, err := core.VerifyPassword("brandnew", repo.pwUpdates[u.ID])
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, errors.Is(svc.ResetPassword(context.Background(), 99, "brandnew"), core.ErrNotFound))
}

func TestValidatePassword_UpgradesLegacyHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("teste"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeRepo()
	u := repo.seed(User{Email: "u@b.c", PasswordHash: string(legacy), Role: RoleUser, Active: true})
	svc := NewService(repo)

	info, err := svc.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	ok, err := svc.ValidatePassword(context.Background(), info, "teste")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, repo.pwUpdates[u.ID], "$argon2id$")
	assert.Equal(t, repo.pwUpdates[u.ID], info.PasswordHash)
}

func TestValidatePassword_RehashFailureStillValid(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("teste"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeRepo()
	u := repo.seed(User{Email: "u@b.c", PasswordHash: string(legacy), Role: RoleUser, Active: true})
	repo.passwordErr = errors.New("db down")
	svc := NewService(repo)

	info, err := svc.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	ok, err := svc.ValidatePassword(context.Background(), info, "teste")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, string(legacy), info.PasswordHash)
}

func TestResolveIdentity(t *testing.T) {
	repo := newFakeRepo()
	u := repo.seed(User{Email: "u@b.c", Name: "U", Role: RoleUser, Active: false})
	svc := NewService(repo)

	id, err := svc.ResolveIdentity(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "u@b.c", id.Email)
	assert.False(t, id.Active)

	_, err = svc.ResolveIdentity(context.Background(), 404)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
