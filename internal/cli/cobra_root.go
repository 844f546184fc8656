package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskboard/internal/config"
	"taskboard/internal/di"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	config    *config.Config
	overrides *config.ConfigOverrides
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "taskboard",
		Short: "Projects, tasks and comments for one organization",
		Long: `taskboard tracks the projects of an organization, their tasks and the
comments on each task. It ships the GraphQL server, a browser front end and
terminal commands that talk to the server.

EXAMPLES:
  taskboard serve --seed                       # Run the GraphQL server on sqlite
  taskboard web                                # Serve the dashboard on :3000
  taskboard projects                           # Print the dashboard once
  taskboard watch                              # Print the dashboard as it changes
  taskboard new-project "Mobile App" --due 2026-12-01
  taskboard show <project-id>                  # A project with tasks and comments
  taskboard add-task <project-id> "Write the release notes"
  taskboard status <project-id> <task-id> DONE
  taskboard comment <project-id> <task-id> "Shipped"
  taskboard edit-project <project-id> --status ON_HOLD --due ""

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is YAML, named by --config or TB_CONFIG.

  Client Configuration:
    TB_API_ENDPOINT                            GraphQL endpoint (default: http://127.0.0.1:8000/graphql)
    TB_ORG_SLUG                                Organization shown (default: voiceai)
    TB_WEB_ADDR                                Web front end address (default: 127.0.0.1:3000)
    TB_POLL_INTERVAL                           Dashboard poll interval (default: 2s)

  Server Configuration:
    TB_SERVER_ADDR                             GraphQL server address (default: 127.0.0.1:8000)
    TB_ALLOWED_ORIGINS                         Comma separated CORS origins
    TB_DB_DIR                                  Database directory (default: ~/.taskboard)
    TB_DB_FILENAME                             Database filename (default: taskboard.db)
    TB_DB_QUERY_TIMEOUT                        Query timeout (default: 10s)
    TB_DB_WRITE_TIMEOUT                        Write timeout (default: 5s)

  Observability:
    TB_LOG_LEVEL                               debug, info, warn or error (default: info)
    TB_ENV                                     development, testing or production
    TB_OTLP_ENDPOINT                           OTLP gRPC collector; empty disables export
    TB_SERVICE_NAME                            Service name on exported spans

  Application Configuration:
    TB_APP_TIMEOUT                             Timeout of one-shot commands (default: 60s)
    TB_APP_VERBOSE                             Enable verbose output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command; ctx is handed to every subcommand
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Config is the configuration loaded before the last command ran
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML config file (overrides TB_CONFIG)")

	// Client configuration
	flags.String("api-endpoint", "", "GraphQL endpoint (overrides TB_API_ENDPOINT)")
	flags.String("org", "", "Organization slug (overrides TB_ORG_SLUG)")
	flags.String("web-addr", "", "Web front end address (overrides TB_WEB_ADDR)")
	flags.Duration("poll-interval", 0, "Dashboard poll interval (overrides TB_POLL_INTERVAL)")

	// Server configuration
	flags.String("server-addr", "", "GraphQL server address (overrides TB_SERVER_ADDR)")
	flags.String("db-dir", "", "Database directory (overrides TB_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TB_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TB_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TB_DB_WRITE_TIMEOUT)")

	// Observability
	flags.String("log-level", "", "Log level (overrides TB_LOG_LEVEL)")
	flags.String("env", "", "Environment (overrides TB_ENV)")
	flags.String("otlp-endpoint", "", "OTLP collector endpoint (overrides TB_OTLP_ENDPOINT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TB_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the GraphQL server",
		Long: `Run the GraphQL server over the sqlite database.

With --seed the configured organization is created when it does not exist.
With --with-web the browser front end is served from the same process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")
			withWeb, _ := cmd.Flags().GetBool("with-web")
			return r.runServe(cmd.Context(), seed, withWeb)
		},
	}
	serveCmd.Flags().Bool("seed", false, "Create the configured organization if missing")
	serveCmd.Flags().Bool("with-web", false, "Also serve the web front end")

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the dashboard and project pages",
		Long: `Serve the browser front end. The dashboard polls the GraphQL server every
poll interval; editing the config file changes the interval without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWeb(cmd.Context())
		},
	}

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Print the dashboard once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				return NewProjectsCommand(app).Execute(ctx, args)
			})
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the dashboard whenever it changes",
		Long:  "Poll the organization every poll interval and print the dashboard when it changes. Stop with Ctrl-C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Runs until interrupted, so no timeout.
			return r.withApp(cmd, 0, func(ctx context.Context, app *App) error {
				return NewWatchCommand(app).Execute(ctx, args)
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its tasks and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				return NewShowCommand(app).Execute(ctx, args)
			})
		},
	}

	newProjectCmd := &cobra.Command{
		Use:   "new-project <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, _ := cmd.Flags().GetString("due")
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				handler := NewNewProjectCommand(app)
				handler.DueDate = due
				return handler.Execute(ctx, args)
			})
		},
	}
	newProjectCmd.Flags().String("due", "", "Due date, YYYY-MM-DD")

	addTaskCmd := &cobra.Command{
		Use:   "add-task <project-id> <title>",
		Short: "Add a TODO task to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				return NewAddTaskCommand(app).Execute(ctx, args)
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <project-id> <task-id> <TODO|IN_PROGRESS|DONE>",
		Short: "Change the status of a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				return NewStatusCommand(app).Execute(ctx, args)
			})
		},
	}

	commentCmd := &cobra.Command{
		Use:   "comment <project-id> <task-id> <text>",
		Short: "Comment on a task",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				return NewCommentCommand(app).Execute(ctx, args)
			})
		},
	}

	editProjectCmd := &cobra.Command{
		Use:   "edit-project <project-id>",
		Short: "Change the name, status or due date of a project",
		Long: `Change the name, status or due date of a project. Only the flags given are
changed; --due "" clears the due date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, r.getAppTimeout(), func(ctx context.Context, app *App) error {
				handler := NewEditProjectCommand(app)
				handler.Name = changedString(cmd, "name")
				handler.Status = changedString(cmd, "status")
				handler.DueDate = changedString(cmd, "due")
				return handler.Execute(ctx, args)
			})
		},
	}
	editProjectCmd.Flags().String("name", "", "New name")
	editProjectCmd.Flags().String("status", "", "ACTIVE, COMPLETED or ON_HOLD")
	editProjectCmd.Flags().String("due", "", "Due date, YYYY-MM-DD; empty clears it")

	r.cmd.AddCommand(
		serveCmd,
		webCmd,
		projectsCmd,
		watchCmd,
		showCmd,
		newProjectCmd,
		addTaskCmd,
		statusCmd,
		commentCmd,
		editProjectCmd,
	)
}

// runServe assembles and runs the GraphQL server, and the web front end
// alongside it when withWeb is set.
func (r *RootCommand) runServe(ctx context.Context, seed, withWeb bool) error {
	server, cleanup, err := di.InitializeAPIServer(ctx, r.config)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	defer cleanup()

	if seed {
		if err := server.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed organization: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })

	if withWeb {
		webClient, webCleanup, err := di.InitializeWebClient(ctx, r.config)
		if err != nil {
			return fmt.Errorf("failed to initialize web client: %w", err)
		}
		defer webCleanup()
		g.Go(func() error { return webClient.Run(ctx) })
	}

	return g.Wait()
}

// runWeb serves the browser front end and follows poll interval changes in
// the config file.
func (r *RootCommand) runWeb(ctx context.Context) error {
	webClient, cleanup, err := di.InitializeWebClient(ctx, r.config)
	if err != nil {
		return fmt.Errorf("failed to initialize web client: %w", err)
	}
	defer cleanup()

	if path := config.ConfigFilePath(r.overrides); path != "" {
		watcher, err := config.NewWatcher(path, r.config, r.overrides, webClient.Logger)
		if err != nil {
			webClient.Logger.Warn("config reload disabled", zap.String("path", path), zap.Error(err))
		} else {
			watcher.OnChange(func(cfg *config.Config) {
				webClient.Dashboard.SetInterval(cfg.Web.PollInterval)
				webClient.Logger.Info("poll interval updated", zap.Duration("interval", cfg.Web.PollInterval))
			})
			watcher.Start()
			defer watcher.Stop()
		}
	}

	return webClient.Run(ctx)
}

// withApp builds the terminal dependencies and runs fn with an App writing
// to the command's output. A zero timeout leaves ctx without a deadline.
func (r *RootCommand) withApp(cmd *cobra.Command, timeout time.Duration, fn func(context.Context, *App) error) error {
	ctx := cmd.Context()
	term, cleanup, err := di.InitializeTerminal(ctx, r.config)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	defer cleanup()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	app := NewApp(term.API, r.config, WithViewOptions(term.ViewOptions()), WithOutput(cmd.OutOrStdout()))
	return fn(ctx, app)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags loads the configuration with every flag the user set
// applied on top.
func (r *RootCommand) getConfigFromFlags() error {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	str := func(name string, target **string) {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*target = &v
		}
	}
	dur := func(name string, target **time.Duration) {
		if flags.Changed(name) {
			v, _ := flags.GetDuration(name)
			*target = &v
		}
	}

	str("config", &overrides.ConfigFile)
	str("api-endpoint", &overrides.APIEndpoint)
	str("org", &overrides.OrgSlug)
	str("server-addr", &overrides.ServerAddr)
	str("web-addr", &overrides.WebAddr)
	dur("poll-interval", &overrides.PollInterval)

	str("db-dir", &overrides.DBDir)
	str("db-filename", &overrides.DBFilename)
	dur("db-query-timeout", &overrides.DBQueryTimeout)
	dur("db-write-timeout", &overrides.DBWriteTimeout)

	str("log-level", &overrides.LogLevel)
	str("env", &overrides.Environment)
	str("otlp-endpoint", &overrides.OTLPEndpoint)

	dur("app-timeout", &overrides.Timeout)
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
		if verbose && overrides.LogLevel == nil {
			debug := "debug"
			overrides.LogLevel = &debug
		}
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	r.overrides = overrides
	return nil
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
