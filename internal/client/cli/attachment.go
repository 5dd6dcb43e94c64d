package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/securepass/internal/cryptox"
)

// AddFile encrypts a local file with the master password and uploads it as
// the entry's attachment via a presigned URL. The object store only ever
// receives ciphertext.
func (a *App) AddFile(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Cannot read file:", err)
		return err
	}

	blob, err := cryptox.Encrypt(string(a.masterPassword), data)
	if err != nil {
		fmt.Println("Encryption failed:", err)
		return err
	}

	_, uploadURL, err := a.api.PresignAttachmentUpload(ctx, entryID)
	if err != nil {
		fmt.Println("Upload preparation failed:", err)
		return err
	}

	if err := a.api.UploadToURL(ctx, uploadURL, []byte(blob)); err != nil {
		fmt.Println("Upload failed:", err)
		return err
	}

	fmt.Println("Attachment uploaded")
	return nil
}

// GetFile downloads an entry's attachment, decrypts it locally and writes
// the plaintext to the given path.
func (a *App) GetFile(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Enter output file path", os.Stdout)
	if err != nil {
		return err
	}

	downloadURL, err := a.api.PresignAttachmentDownload(ctx, entryID)
	if err != nil {
		fmt.Println("Download preparation failed:", err)
		return err
	}

	blob, err := a.api.DownloadFromURL(ctx, downloadURL)
	if err != nil {
		fmt.Println("Download failed:", err)
		return err
	}

	data, err := cryptox.Decrypt(string(a.masterPassword), string(blob))
	if err != nil {
		fmt.Println("Cannot decrypt attachment:", err)
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Println("Cannot write file:", err)
		return err
	}

	fmt.Println("Attachment saved to", path)
	return nil
}
