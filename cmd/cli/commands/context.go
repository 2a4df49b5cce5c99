package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/internal/config"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	TenantID int
}
