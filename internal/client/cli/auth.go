package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/models"
)

var (
	errNotLoggedIn    = errors.New("not logged in")
	errSessionExpired = errors.New("session expired, please log in again")
)

// getSimpleText, getInt and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getInt        = GetInt
	getPassword   = GetPassword
)

// Register prompts for credentials and creates a new account. The trainer
// console always creates standard accounts; the administrator console asks
// which role to grant. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username (lowercase, max 10 chars)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role := models.RoleStandard
	if a.admin {
		answer, err := getSimpleText(a.reader, "Grant administrator role? (y/N)", a.out)
		if err != nil {
			return err
		}
		if answer == "y" || answer == "yes" {
			role = models.RoleAdministrator
		}
	}

	if _, err := a.accounts.Register(ctx, userName, password, role); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			fmt.Fprintln(a.out, "Username already taken")
			return err
		}
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can log in now")
	return nil
}

// Login prompts for credentials and starts a session. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	pair, err := a.accounts.Login(ctx, userName, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed: invalid username or password")
		return err
	}

	a.tokens = pair
	a.userName = userName
	fmt.Fprintln(a.out, "Welcome,", userName)
	return nil
}

// Logout drops the session tokens.
func (a *App) Logout(ctx context.Context) error {
	a.tokens = nil
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
