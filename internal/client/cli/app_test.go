package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/models"
	"github.com/dmitrijs2005/pokestore/internal/services"
)

type stubAccounts struct {
	registered    []models.Role
	loginPair     *services.TokenPair
	loginErr      error
	principal     models.Principal
	principalErr  error
	refreshedPair *services.TokenPair
	refreshErr    error
}

func (s *stubAccounts) Register(ctx context.Context, username string, password []byte, role models.Role) (*models.User, error) {
	s.registered = append(s.registered, role)
	return &models.User{Username: username, Role: role}, nil
}

func (s *stubAccounts) Login(ctx context.Context, username string, password []byte) (*services.TokenPair, error) {
	return s.loginPair, s.loginErr
}

func (s *stubAccounts) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return s.refreshedPair, s.refreshErr
}

func (s *stubAccounts) PrincipalFromToken(tokenString string) (models.Principal, error) {
	return s.principal, s.principalErr
}

type stubInventory struct {
	InventoryAPI

	listBoxNumber int
	listUser      string
	listRecs      []models.CreatureRecord
	listErr       error
}

func (s *stubInventory) ListBox(ctx context.Context, acting models.Principal, targetUser string, boxNumber int) ([]models.CreatureRecord, error) {
	s.listBoxNumber = boxNumber
	s.listUser = targetUser
	return s.listRecs, s.listErr
}

func newTestApp(accounts AccountService, inventory InventoryAPI, in string, out io.Writer, admin bool) *App {
	return &App{
		accounts:  accounts,
		inventory: inventory,
		admin:     admin,
		reader:    bufio.NewReader(strings.NewReader(in)),
		out:       out,
	}
}

func withInputStubs(t *testing.T, texts []string, password string) {
	t.Helper()
	origText, origPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPw })

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestRegister_TrainerConsoleAlwaysStandard(t *testing.T) {
	accounts := &stubAccounts{}
	var out bytes.Buffer
	app := newTestApp(accounts, &stubInventory{}, "", &out, false)

	withInputStubs(t, []string{"ash"}, "pikapika")

	require.NoError(t, app.Register(context.Background()))
	require.Len(t, accounts.registered, 1)
	assert.Equal(t, models.RoleStandard, accounts.registered[0])
}

func TestRegister_OperatorConsoleGrantsRole(t *testing.T) {
	accounts := &stubAccounts{}
	var out bytes.Buffer
	app := newTestApp(accounts, &stubInventory{}, "", &out, true)

	withInputStubs(t, []string{"oak", "y"}, "secret")

	require.NoError(t, app.Register(context.Background()))
	require.Len(t, accounts.registered, 1)
	assert.Equal(t, models.RoleAdministrator, accounts.registered[0])
}

func TestLogin_StoresSession(t *testing.T) {
	accounts := &stubAccounts{
		loginPair: &services.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}
	var out bytes.Buffer
	app := newTestApp(accounts, &stubInventory{}, "", &out, false)

	withInputStubs(t, []string{"ash"}, "pikapika")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "ash", app.userName)

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
}

func TestLogin_Failure(t *testing.T) {
	accounts := &stubAccounts{loginErr: common.ErrorUnauthorized}
	var out bytes.Buffer
	app := newTestApp(accounts, &stubInventory{}, "", &out, false)

	withInputStubs(t, []string{"ash"}, "wrong")

	err := app.Login(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Login failed")
}

func TestPrincipal_NotLoggedIn(t *testing.T) {
	app := newTestApp(&stubAccounts{}, &stubInventory{}, "", io.Discard, false)

	_, err := app.principal(context.Background())
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestPrincipal_RefreshesExpiredSession(t *testing.T) {
	accounts := &stubAccounts{
		refreshedPair: &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"},
	}
	app := newTestApp(accounts, &stubInventory{}, "", io.Discard, false)
	app.tokens = &services.TokenPair{AccessToken: "a1", RefreshToken: "r1"}

	// first resolution fails, refresh succeeds, second resolution succeeds
	calls := 0
	app.accounts = &principalSeqAccounts{stubAccounts: accounts, next: func() (models.Principal, error) {
		calls++
		if calls == 1 {
			return models.Principal{}, common.ErrInvalidToken
		}
		return models.Principal{UserID: "u1", Username: "ash"}, nil
	}}
	p, err := app.principal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ash", p.Username)
	assert.Equal(t, "a2", app.tokens.AccessToken)
}

type principalSeqAccounts struct {
	*stubAccounts
	next func() (models.Principal, error)
}

func (s *principalSeqAccounts) PrincipalFromToken(tokenString string) (models.Principal, error) {
	return s.next()
}

func TestPrincipal_RefreshFails(t *testing.T) {
	accounts := &stubAccounts{
		principalErr: common.ErrInvalidToken,
		refreshErr:   common.ErrRefreshTokenExpired,
	}
	app := newTestApp(accounts, &stubInventory{}, "", io.Discard, false)
	app.tokens = &services.TokenPair{AccessToken: "a", RefreshToken: "r"}

	_, err := app.principal(context.Background())
	assert.ErrorIs(t, err, errSessionExpired)
	assert.False(t, app.isLoggedIn(), "session should be dropped")
}

func TestListCommand_ParsesArgs(t *testing.T) {
	accounts := &stubAccounts{principal: models.Principal{UserID: "u1", Username: "oak", Role: models.RoleAdministrator}}
	inventory := &stubInventory{
		listRecs: []models.CreatureRecord{{
			Creature:    models.Creature{ID: 7, DexNumber: 25, Nickname: "sparky", Level: 50, Nature: "jolly"},
			SpeciesName: "pikachu", Type1: "electric", BoxNumber: 3,
		}},
	}
	var out bytes.Buffer
	app := newTestApp(accounts, inventory, "", &out, true)
	app.tokens = &services.TokenPair{AccessToken: "a", RefreshToken: "r"}

	require.NoError(t, app.list(context.Background(), []string{"3", "ash"}))
	assert.Equal(t, 3, inventory.listBoxNumber)
	assert.Equal(t, "ash", inventory.listUser)
	assert.Contains(t, out.String(), "sparky")
	assert.Contains(t, out.String(), "electric")
}

func TestListCommand_Usage(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&stubAccounts{}, &stubInventory{}, "", &out, false)

	require.NoError(t, app.list(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: list")
}
