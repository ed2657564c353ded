package container

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-validation/config"
	"github.com/oksasatya/go-user-validation/internal/application"
	"github.com/oksasatya/go-user-validation/pkg/helpers"
)

// app-level container to share constructed components across the programs

var (
	cfg         *config.Config
	logger      *logrus.Logger
	logOutput   io.Writer = os.Stderr
	userService *application.UserService
)

func SetConfig(c *config.Config)                { cfg = c }
func GetConfig() *config.Config                 { return cfg }
func SetLogger(l *logrus.Logger)                { logger = l }
func GetLogger() *logrus.Logger                 { return logger }
func SetLogOutput(w io.Writer)                  { logOutput = w }
func SetUserService(s *application.UserService) { userService = s }
func GetUserService() *application.UserService  { return userService }

// Init builds the logger and user service from c and registers them.
func Init(c *config.Config) {
	SetConfig(c)
	l := helpers.NewLogger(logOutput, c.AppName, c.Env, c.LogLevel)
	SetLogger(l)

	var opts []application.Option
	if c.PasswordHashing {
		opts = append(opts, application.WithPasswordHashing(c.BcryptCost))
	}
	SetUserService(application.NewUserService(l, opts...))
}
