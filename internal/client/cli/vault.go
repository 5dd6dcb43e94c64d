package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/cryptox"
)

// Add prompts for a site and password, seals the password with the master
// password and stores the resulting blob on the server.
func (a *App) Add(ctx context.Context) error {
	siteName, err := getSimpleText(a.reader, "Enter site name", os.Stdout)
	if err != nil {
		return err
	}

	siteURL, err := getSimpleText(a.reader, "Enter site URL (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter site password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	blob, err := cryptox.Encrypt(string(a.masterPassword), password)
	if err != nil {
		fmt.Println("Encryption failed:", err)
		return err
	}

	entry, err := a.api.CreateEntry(ctx, siteName, siteURL, blob)
	if err != nil {
		fmt.Println("Saving failed:", err)
		return err
	}

	fmt.Println("Saved entry", entry.ID)
	return nil
}

// List prints the user's entries. Passwords stay sealed here; use show to
// open one.
func (a *App) List(ctx context.Context) error {
	entries, err := a.api.ListEntries(ctx)
	if err != nil {
		fmt.Println("Listing failed:", err)
		return err
	}

	if len(entries) == 0 {
		fmt.Println("Vault is empty")
		return nil
	}

	for _, e := range entries {
		marker := ""
		if e.HasAttachment {
			marker = " [attachment]"
		}
		fmt.Printf("%s  %s  %s%s\n", e.ID, e.SiteName, e.SiteURL, marker)
	}
	return nil
}

// Show decrypts a single entry locally and prints the password.
func (a *App) Show(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}

	entries, err := a.api.ListEntries(ctx)
	if err != nil {
		fmt.Println("Fetching failed:", err)
		return err
	}

	for _, e := range entries {
		if e.ID != entryID {
			continue
		}

		plaintext, err := cryptox.Decrypt(string(a.masterPassword), e.EncryptedPassword)
		if err != nil {
			if errors.Is(err, common.ErrAuthenticationFailed) {
				fmt.Println("Cannot decrypt: wrong master password or corrupted data")
			} else {
				fmt.Println("Cannot decrypt:", err)
			}
			return err
		}
		defer common.WipeByteArray(plaintext)

		fmt.Printf("%s: %s\n", e.SiteName, string(plaintext))
		return nil
	}

	fmt.Println("Entry not found")
	return common.ErrNotFound
}

// CheckHealth submits a candidate password for strength scoring and breach
// lookup. The user supplies the password explicitly for checking.
func (a *App) CheckHealth(ctx context.Context) error {
	password, err := getPassword("Enter password to check", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	report, err := a.api.CheckHealth(ctx, string(password), []string{a.userName})
	if err != nil {
		fmt.Println("Check failed:", err)
		return err
	}

	fmt.Printf("Strength: %d/4 (crack time: %s)\n", report.Score, report.CrackTime)
	for _, hint := range report.Feedback {
		fmt.Println(" -", hint)
	}
	if report.BreachCount > 0 {
		fmt.Printf("WARNING: this password appears in %d known breaches\n", report.BreachCount)
	} else {
		fmt.Println("Not found in known breaches")
	}
	return nil
}
