package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/clients/formsclient"
	"github.com/rowanhart/cohortly/pkg/clients/gmailclient"
	"github.com/rowanhart/cohortly/pkg/clients/sheetsclient"
	"github.com/rowanhart/cohortly/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.Config
	OauthCfg     *config.OAuthClientConfig
	SheetsClient *sheetsclient.Client
	FormsClient  *formsclient.Client
	GmailClient  *gmailclient.Client
	Database     db.Database
	Logger       *zap.Logger
	Ctx          context.Context
}
