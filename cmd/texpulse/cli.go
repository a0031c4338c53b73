package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/listener"
	"github.com/hpungsan/texpulse/internal/render"
	"github.com/hpungsan/texpulse/internal/report"
	"github.com/hpungsan/texpulse/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(database *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "texpulse",
		Usage:   "Writing statistics for LaTeX projects",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "LaTeX project root (overrides config)"},
		},
		Before: func(c *cli.Context) error {
			if cfg != nil && c.IsSet("project") {
				cfg.ProjectDir = c.String("project")
			}
			return nil
		},
		Commands: []*cli.Command{
			tocCmd(database, cfg),
			lofCmd(cfg),
			lotCmd(cfg),
			unusedCmd(cfg),
			undefinedCmd(cfg),
			warningsCmd(cfg),
			summaryCmd(database, cfg),
			backupCmd(database, cfg),
			exportCmd(database, cfg),
			reportCmd(database, cfg),
			serveCmd(database, cfg),
			webCmd(database, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// tocCmd creates the toc command.
func tocCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "toc",
		Usage: "Show the outline with word counts and day-over-day growth",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output, err := report.Outline(database, cfg, report.OutlineInput{})
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(render.Toc(output))
			return nil
		},
	}
}

// lofCmd creates the lof command.
func lofCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "lof",
		Usage: "Show the list of figures",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output, err := report.Figures(cfg)
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(render.Floats("List of Figures", output.Items))
			return nil
		},
	}
}

// lotCmd creates the lot command.
func lotCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "lot",
		Usage: "Show the list of tables",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output, err := report.Tables(cfg)
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(render.Floats("List of Tables", output.Items))
			return nil
		},
	}
}

// unusedCmd creates the unused command. Without flags it checks references,
// matching the listener's bare "unu" command.
func unusedCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "unused",
		Usage: "List bibliography keys never cited or figure files never embedded",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "references", Aliases: []string{"r"}, Usage: "Check bibliography keys (default)"},
			&cli.BoolFlag{Name: "figures", Aliases: []string{"f"}, Usage: "Check figure files"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			figures := c.Bool("figures")
			references := c.Bool("references") || !figures

			result := make(map[string]*report.KeysOutput)
			if references {
				output, err := report.UnusedReferences(cfg)
				if err != nil {
					return outputError(err)
				}
				result["references"] = output
			}
			if figures {
				output, err := report.UnusedFigures(cfg)
				if err != nil {
					return outputError(err)
				}
				result["figures"] = output
			}

			if c.Bool("json") {
				return outputJSON(result)
			}
			if output := result["references"]; output != nil {
				printSection(render.Enumeration("Unused references", output.Keys))
			}
			if output := result["figures"]; output != nil {
				printSection(render.Enumeration("Unused figures", output.Keys))
			}
			return nil
		},
	}
}

// undefinedCmd creates the undefined command.
func undefinedCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "undefined",
		Usage: "List citation keys used in the document but missing from the bibliography",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output, err := report.UndefinedReferences(cfg)
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(render.Enumeration("Undefined references", output.Keys))
			return nil
		},
	}
}

// warningsCmd creates the warnings command.
func warningsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "warnings",
		Usage: "Show warnings from the build logs",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output, err := report.Warnings(cfg)
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(render.Warnings("Build warnings", output.Items))
			return nil
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Show project counters: units, words, floats, pages, warnings",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output, err := report.Summary(database, cfg, report.SummaryInput{})
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(render.Summary(output))
			return nil
		},
	}
}

// backupCmd creates the backup command.
func backupCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Take today's snapshot if one does not exist yet",
		Action: func(c *cli.Context) error {
			output, err := report.Backup(database, cfg, report.BackupInput{})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the progress report to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Export file path (default: <state dir>/exports/report-<day>.md)"},
			&cli.BoolFlag{Name: "html", Usage: "Convert the report to a standalone HTML page"},
		},
		Action: func(c *cli.Context) error {
			output, err := report.Export(database, cfg, report.ExportInput{
				Path: c.String("path"),
				HTML: c.Bool("html"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command: every report in sequence, then
// today's snapshot.
func reportCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print every report, then take today's snapshot",
		Action: func(c *cli.Context) error {
			outline, err := report.Outline(database, cfg, report.OutlineInput{})
			if err != nil {
				return outputError(err)
			}
			printSection(render.Toc(outline))

			figures, err := report.Figures(cfg)
			if err != nil {
				return outputError(err)
			}
			printSection(render.Floats("List of Figures", figures.Items))

			tables, err := report.Tables(cfg)
			if err != nil {
				return outputError(err)
			}
			printSection(render.Floats("List of Tables", tables.Items))

			unusedFigures, err := report.UnusedFigures(cfg)
			if err != nil {
				return outputError(err)
			}
			printSection(render.Enumeration("Unused figures", unusedFigures.Keys))

			unusedReferences, err := report.UnusedReferences(cfg)
			if err != nil {
				return outputError(err)
			}
			printSection(render.Enumeration("Unused references", unusedReferences.Keys))

			undefined, err := report.UndefinedReferences(cfg)
			if err != nil {
				return outputError(err)
			}
			printSection(render.Enumeration("Undefined references", undefined.Keys))

			warnings, err := report.Warnings(cfg)
			if err != nil {
				return outputError(err)
			}
			printSection(render.Warnings("Build warnings", warnings.Items))

			backup, err := report.Backup(database, cfg, report.BackupInput{})
			if err != nil {
				return outputError(err)
			}
			if backup.Created {
				fmt.Printf("snapshot created for %s\n", backup.Day)
			}
			return nil
		},
	}
}

// serveCmd creates the serve command running the plain-text TCP listener.
func serveCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the plain-text command listener",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "Listen address (default from config)"},
		},
		Action: func(c *cli.Context) error {
			addr := c.String("listen")
			if addr == "" {
				addr = cfg.ListenAddr
			}

			srv := listener.New(database, cfg)
			if err := srv.Listen(addr); err != nil {
				return outputError(err)
			}
			log.Printf("command listener on %s", srv.Addr())

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve() }()

			select {
			case err := <-errCh:
				if err != nil {
					return outputError(err)
				}
				return nil
			case <-sigCh:
				log.Println("shutting down command listener")
				return srv.Close()
			}
		},
	}
}

// webCmd creates the web command running the progress dashboard.
func webCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Run the progress dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(database, cfg, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var opErr *errors.Error
	if stderrors.As(err, &opErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", opErr.Code, opErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// printSection writes one rendered block followed by a separating blank
// line. Empty blocks are skipped.
func printSection(s string) {
	if s == "" {
		return
	}
	fmt.Print(s)
	fmt.Println()
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Print the raw result as JSON"}
}
