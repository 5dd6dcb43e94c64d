package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/cryptox"
)

// Share sends a secret to the server for one-time sharing and prints the
// resulting link. The decryption key rides in the URL fragment, so the
// server that stores the secret never holds both pieces.
func (a *App) Share(ctx context.Context) error {
	content, err := getSimpleText(a.reader, "Enter secret to share", os.Stdout)
	if err != nil {
		return err
	}

	ttlText, err := getSimpleText(a.reader, "Enter lifetime in minutes (default 60)", os.Stdout)
	if err != nil {
		return err
	}

	ttl := time.Hour
	if ttlText != "" {
		minutes, err := strconv.Atoi(ttlText)
		if err != nil {
			fmt.Println("Invalid lifetime")
			return common.ErrInvalidInput
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	share, err := a.api.CreateShare(ctx, content, ttl)
	if err != nil {
		fmt.Println("Sharing failed:", err)
		return err
	}

	fmt.Println("One-time link (valid until", share.ExpiresAt.Format(time.RFC3339), "):")
	fmt.Println(share.URL)
	fmt.Println("The link works exactly once.")
	return nil
}

// Reveal consumes a one-time link and decrypts its content locally using the
// key from the URL fragment.
func (a *App) Reveal(ctx context.Context) error {
	link, err := getSimpleText(a.reader, "Enter share link (or uuid#key)", os.Stdout)
	if err != nil {
		return err
	}

	shareUUID, keyText, err := parseShareLink(link)
	if err != nil {
		fmt.Println("Invalid link")
		return err
	}

	sealed, err := a.api.RevealShare(ctx, shareUUID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("Link invalid or already used")
		} else {
			fmt.Println("Reveal failed:", err)
		}
		return err
	}

	content, err := decryptShare(keyText, sealed)
	if err != nil {
		fmt.Println("Cannot decrypt share:", err)
		return err
	}
	defer common.WipeByteArray(content)

	fmt.Println("Shared secret:")
	fmt.Println(string(content))
	return nil
}

// parseShareLink extracts the share uuid and the fragment key from a full
// link like "https://host/s/<uuid>#<key>" or the short "<uuid>#<key>" form.
func parseShareLink(link string) (shareUUID string, key string, err error) {
	id, key, found := strings.Cut(link, "#")
	if !found || key == "" {
		return "", "", fmt.Errorf("%w: missing key fragment", common.ErrInvalidInput)
	}

	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		id = id[idx+1:]
	}
	if id == "" {
		return "", "", fmt.Errorf("%w: missing share id", common.ErrInvalidInput)
	}

	return id, key, nil
}

func decryptShare(keyText string, sealed string) ([]byte, error) {
	key, err := base64.URLEncoding.DecodeString(keyText)
	if err != nil {
		return nil, fmt.Errorf("%w: bad key encoding", common.ErrInvalidInput)
	}
	defer common.WipeByteArray(key)

	payload, err := base64.URLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: bad content encoding", common.ErrInvalidInput)
	}

	return cryptox.DecryptWithKey(key, payload)
}
