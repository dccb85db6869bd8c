package cmd

import (
	"context"
	"fmt"

	"github.com/aicmt/aicmt/internal/config"
	"github.com/aicmt/aicmt/internal/git"
	"github.com/aicmt/aicmt/internal/provider"
	"github.com/aicmt/aicmt/internal/ui"
	"github.com/aicmt/aicmt/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	cfgFile    string
	message    string
	stageAll   bool
	amend      bool
	dryRun     bool
	verbose    bool
	commitType string
	scope      string
	lang       string
	configErr  error

	rootCmd = &cobra.Command{
		Use:   "aicmt",
		Short: "aicmt - AI commit message assistant",
		Long: `aicmt inspects the staged changes of the current repository, asks a
generative text model for a Conventional Commits message, and runs
git commit with the result.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command with the process-level context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("configuration error: %w", configErr)
		}
		return runCommit(cmd.Context())
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $HOME/.aicmt.yaml)")
	rootCmd.Flags().StringVarP(&message, "message", "m", "",
		"Use this commit message instead of generating one")
	rootCmd.Flags().BoolVarP(&stageAll, "all", "a", false,
		"Stage all tracked and untracked changes before diffing")
	rootCmd.Flags().BoolVarP(&amend, "amend", "A", false,
		"Amend the previous commit; its message is fed to the generator")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"Print the message and commit command without executing it")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Print progress lines")
	rootCmd.Flags().StringVarP(&commitType, "type", "t", "",
		"Force the Conventional Commit type (feat, fix, ...)")
	rootCmd.Flags().StringVarP(&scope, "scope", "s", "",
		"Force the Conventional Commit scope")
	rootCmd.Flags().StringVarP(&lang, "lang", "l", "",
		"Target language for the generated message (default \"english\")")
	rootCmd.Flags().BoolP("version", "V", false,
		"Print version information")

	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func runCommit(ctx context.Context) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	gitClient := git.NewClient(git.Options{Verbose: verbose})
	if !gitClient.IsRepository() {
		return &git.RepositoryAccessError{
			Action: "not a git repository (or git is not installed)",
		}
	}

	gen, err := provider.New(cfg)
	if err != nil {
		return err
	}

	opts := workflow.Options{
		Message:    message,
		StageAll:   stageAll,
		Amend:      amend,
		DryRun:     dryRun,
		Verbose:    verbose,
		CommitType: commitType,
		Scope:      scope,
		Language:   resolveLanguage(cfg),
	}

	presenter := ui.NewPresenter(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr())
	flow := workflow.NewCommitFlow(gitClient, gen, presenter, opts)

	_, err = flow.Run(ctx)
	return err
}

// resolveLanguage applies flag > config file > built-in default.
func resolveLanguage(cfg *config.Config) string {
	if lang != "" {
		return lang
	}
	if cfg.Language != "" {
		return cfg.Language
	}
	return config.DefaultLanguage
}
