package cmd

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}

Global Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`

const DESCRIPTION = `
chronowall changes your wallpaper with the time of day. Put images (or
folders of images) named after the hour, 00 to 23, into your wallpaper
directory and chronowall shows the one for the current hour, switching
exactly on the hour.
`

const (
	RunDescription = `The run command starts the wallpaper loop in the foreground.
It applies the wallpaper for the current hour, then sleeps until
the next change and repeats until interrupted. Only one instance
runs at a time.

Example:
        chronowall run
                OR
        chronowall

`
	OnceDescription = `The once command applies the wallpaper for the current hour
a single time and exits.

Example:
        chronowall once

`
	ListDescription = `The list command shows the hour buckets, special entries and
collections found in your wallpaper directories.

Example:
        chronowall list

`
	NextDescription = `The next command prints what would be shown right now and
how long until the next change.

Example:
        chronowall next

`
	StopDescription = `The stop command stops a running chronowall instance.

Example:
        chronowall stop

`
)
