// Package cli implements the interactive SecurePass terminal client. The
// master password lives only in this process: entries are sealed before the
// API client ever sees them and opened only after they come back.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/securepass/internal/client/api"
	"github.com/dmitrijs2005/securepass/internal/client/config"
	"github.com/dmitrijs2005/securepass/internal/common"
)

type App struct {
	config         *config.Config
	api            *api.Client
	masterPassword []byte
	userName       string
	reader         *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.wipeMasterPassword()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.masterPassword != nil
}

func (a *App) wipeMasterPassword() {
	if a.masterPassword != nil {
		common.WipeByteArray(a.masterPassword)
		a.masterPassword = nil
	}
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}
