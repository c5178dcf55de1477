package cli

import (
	"github.com/spf13/cobra"

	"logreader/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandHelp CommandType = iota
	CommandVersion
	CommandInit
	CommandDays
	CommandLogs
	CommandWatch
	CommandRepos
	CommandRepoAdd
	CommandFilters
	CommandFilterAdd
	CommandFilterRemove
)

// Options contains the parsed command-line arguments
type Options struct {
	Type       CommandType
	Repository string
	Day        string
	Levels     string
	Text       string
	Filter     string
	Order      string
	Limit      int
	Force      bool
	DryRun     bool
	Repo       RepoOptions
	Definition DefinitionOptions
}

// RepoOptions holds the flags of repos add
type RepoOptions struct {
	Name    string
	Kind    string
	Dir     string
	Include []string
	Ignore  []string
	Format  string
	DSN     string
	Table   string
}

// DefinitionOptions holds the arguments of filters add and filters rm
type DefinitionOptions struct {
	ID         string
	Name       string
	Expression string
	Parent     string
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{Type: CommandHelp}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildInitCommand(result),
		buildDaysCommand(result),
		buildLogsCommand(result),
		buildWatchCommand(result),
		buildReposCommand(result),
		buildFiltersCommand(result),
		buildVersionCommand(result),
	)

	if args == nil {
		args = []string{}
	}

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logreader",
		Short: "Browse, filter and watch application logs by day",
		Long: `Logreader reads log files and log tables, groups them by calendar day
and lets you filter by level and text or follow a day live.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandHelp
		},
	}

	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Generate logreader.yaml template",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	cmd.Flags().BoolVarP(&result.Force, "force", "f", false, "Overwrite an existing logreader.yaml")
	cmd.Flags().BoolVar(&result.DryRun, "dry-run", false, "Print the template instead of writing it")

	return cmd
}

// buildDaysCommand creates the days subcommand
func buildDaysCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "days <repository>",
		Aliases: []string{"d"},
		Short:   "Show the days a repository has logs for",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandDays
			result.Repository = args[0]
		},
	}

	return cmd
}

// buildLogsCommand creates the logs subcommand
func buildLogsCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logs <repository> [day]",
		Aliases: []string{"l"},
		Short:   "Show the logs of a day, the latest by default",
		Args:    cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandLogs
			setRepositoryAndDay(result, args)
		},
	}

	addFilterFlags(cmd, result)
	cmd.Flags().IntVarP(&result.Limit, "limit", "n", 0, "Show at most this many rows")

	return cmd
}

// buildWatchCommand creates the watch subcommand
func buildWatchCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch <repository> [day]",
		Aliases: []string{"w"},
		Short:   "Follow a day and print new rows as they arrive",
		Args:    cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandWatch
			setRepositoryAndDay(result, args)
		},
	}

	addFilterFlags(cmd, result)

	return cmd
}

// buildReposCommand creates the repos subcommand and its children
func buildReposCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Aliases: []string{"r"},
		Short:   "List configured repositories",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRepos
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured repositories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRepos
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a repository",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRepoAdd
			result.Repo.Name = args[0]

			if result.Repo.Kind == "" {
				result.Repo.Kind = config.SourceFile
			}
		},
	}

	add.Flags().StringVarP(&result.Repo.Kind, "type", "t", "", "Source type: file, sqlite or postgres")
	add.Flags().StringVar(&result.Repo.Dir, "dir", "", "Directory of a file repository")
	add.Flags().StringSliceVar(&result.Repo.Include, "include", nil, "Glob patterns of files to read")
	add.Flags().StringSliceVar(&result.Repo.Ignore, "ignore", nil, "Glob patterns of files to skip")
	add.Flags().StringVar(&result.Repo.Format, "format", "", "Line format: pattern or json")
	add.Flags().StringVar(&result.Repo.DSN, "dsn", "", "Connection string of a table repository")
	add.Flags().StringVar(&result.Repo.Table, "table", "", "Table of a table repository")

	cmd.AddCommand(list, add)

	return cmd
}

// buildFiltersCommand creates the filters subcommand and its children
func buildFiltersCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List saved filters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandFilters
		},
	}

	add := &cobra.Command{
		Use:   "add <name> [expression]",
		Short: "Save a filter, optionally as a subfilter of --parent",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandFilterAdd
			result.Definition.Name = args[0]

			if len(args) > 1 {
				result.Definition.Expression = args[1]
			}
		},
	}

	add.Flags().StringVarP(&result.Definition.Parent, "parent", "p", "", "Id or name of the parent filter")

	remove := &cobra.Command{
		Use:     "rm <filter>",
		Aliases: []string{"remove"},
		Short:   "Delete a saved filter and its subfilters",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandFilterRemove
			result.Definition.ID = args[0]
		},
	}

	cmd.AddCommand(add, remove)

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}

func addFilterFlags(cmd *cobra.Command, result *Options) {
	cmd.Flags().StringVar(&result.Levels, "levels", "", "Comma separated levels to show, all by default")
	cmd.Flags().StringVarP(&result.Text, "text", "q", "", "Only rows whose message contains this text")
	cmd.Flags().StringVar(&result.Filter, "filter", "", "Id or name of a saved filter to apply")
	cmd.Flags().StringVar(&result.Order, "order", "", "Sort order: asc or desc, the saved preference by default")
}

func setRepositoryAndDay(result *Options, args []string) {
	result.Repository = args[0]

	if len(args) > 1 {
		result.Day = args[1]
	}
}
