// Package cmd implements the chronowall command line.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/chronowall/chronowall/cmd/common"
	cwcommon "github.com/chronowall/chronowall/common"
	"github.com/urfave/cli"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "config, c",
		Usage:  "path of the configuration file",
		EnvVar: cwcommon.ConfigEnv,
	},
	cli.BoolFlag{
		Name:   "debug, d",
		Usage:  "also log to stdout",
		EnvVar: cwcommon.DebugEnv,
	},
}

// Execute runs the command line with args (including the program name).
func Execute(args []string, bArgs BuildArgs) error {
	app := cli.App{
		Name:                  "chronowall",
		HelpName:              "chronowall",
		Usage:                 "Time of day wallpapers.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "chronowall [global options] <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Flags:                 globalFlags,
		Commands: []cli.Command{
			{
				Name:               "run",
				Aliases:            []string{"r"},
				Usage:              "change wallpapers with the hours (default)",
				Action:             run,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        RunDescription,
			},
			{
				Name:               "once",
				Aliases:            []string{"o"},
				Usage:              "apply the current wallpaper and exit",
				Action:             once,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        OnceDescription,
			},
			{
				Name:               "list",
				Aliases:            []string{"l"},
				Usage:              "show buckets, special entries and collections",
				Action:             list,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ListDescription,
			},
			{
				Name:               "next",
				Aliases:            []string{"n"},
				Usage:              "show the current pick and the time until the next change",
				Action:             next,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        NextDescription,
			},
			{
				Name:               "stop",
				Usage:              "stop the running instance",
				Action:             stop,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StopDescription,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of chronowall",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      run,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}

// runtimeError carries the command and step that failed; main prints it as
// "chronowall: <cmd>[<action>]: <msg>".
type runtimeError struct {
	cmd    string
	action string
	err    error
}

func (e *runtimeError) Error() string {
	return fmt.Sprintf("%s[%s]: %v", e.cmd, e.action, e.err)
}

func (e *runtimeError) Unwrap() error { return e.err }

func fail(cmd, action string, err error) error {
	return &runtimeError{cmd: cmd, action: action, err: err}
}
