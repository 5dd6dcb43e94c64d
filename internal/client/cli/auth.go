package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/securepass/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and account password and creates a new
// account. The account password only authenticates to the server; it is not
// the master password that encrypts vault entries.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter account password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			fmt.Println("This email is already registered")
			return err
		}
		fmt.Println("Registration failed:", err)
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login authenticates against the server and then asks for the master
// password, which stays in memory for the session and never leaves the
// process.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter account password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	totpCode, err := getSimpleText(a.reader, "Enter 2FA code (leave empty if not enabled)", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.api.Login(ctx, email, string(password), totpCode); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	masterPassword, err := getPassword("Enter master password (never sent to the server)", os.Stdout)
	if err != nil {
		return err
	}

	a.wipeMasterPassword()
	a.masterPassword = masterPassword
	a.userName = email

	fmt.Println("Logged in")
	return nil
}

// Logout wipes the master password and drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.wipeMasterPassword()
	a.api.SetToken("")
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}

// SetupTwoFactor runs the TOTP enrollment dialog: fetches a fresh secret,
// shows the provisioning URI and confirms a code before the server enables
// the requirement.
func (a *App) SetupTwoFactor(ctx context.Context) error {
	setup, err := a.api.SetupTwoFactor(ctx)
	if err != nil {
		fmt.Println("2FA setup failed:", err)
		return err
	}

	fmt.Println("Secret:", setup.Secret)
	fmt.Println("Add this URI to your authenticator app:")
	fmt.Println(setup.URI)

	code, err := getSimpleText(a.reader, "Enter the 6-digit code to confirm", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.EnableTwoFactor(ctx, setup.Secret, code); err != nil {
		fmt.Println("2FA confirmation failed:", err)
		return err
	}

	fmt.Println("Two-factor authentication enabled")
	return nil
}
