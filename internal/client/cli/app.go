// Package cli implements the interactive memberctl shell: login, the member
// directory listing and the stats summary.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/memberhub/internal/client/api"
	"github.com/dmitrijs2005/memberhub/internal/client/config"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

// portalAPI is the command surface the shell needs. The api.Client satisfies
// it; tests provide a stub.
type portalAPI interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Members(ctx context.Context, query, status string) ([]*models.Member, error)
	Stats(ctx context.Context) (*models.MemberStats, error)
	LoggedIn() bool
}

type App struct {
	config *config.Config
	api    portalAPI
	user   *models.User
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) Run(ctx context.Context) {
	a.Main(ctx)
}
