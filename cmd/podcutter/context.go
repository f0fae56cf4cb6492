package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/podcutter/internal/app"
	"github.com/five82/podcutter/internal/logging"
)

type commandContext struct {
	configFlag *string
	apiFlag    *string
	prefsFlag  *string
}

func newCommandContext(configFlag, apiFlag, prefsFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiFlag:    apiFlag,
		prefsFlag:  prefsFlag,
	}
}

func (c *commandContext) options() app.Options {
	return app.Options{
		ConfigPath: flagValue(c.configFlag),
		APIURL:     flagValue(c.apiFlag),
		PrefsPath:  flagValue(c.prefsFlag),
	}
}

// withEnv opens the application environment with a stderr logger at the
// configured level, runs fn and releases the environment.
func (c *commandContext) withEnv(cmd *cobra.Command, fn func(*app.Env) error) error {
	logger := logging.New(cmd.ErrOrStderr(), "info")
	env, err := app.Open(c.options(), logger)
	if err != nil {
		return err
	}
	defer env.Close()
	logger.SetLevel(logging.ParseLevel(env.Config.LogLevel))
	return fn(env)
}

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
