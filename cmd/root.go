// Package cmd provides the root command and CLI setup for kinfmt.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"kinfmt.dev/pkg/kinfmt/internal/adapter"
	"kinfmt.dev/pkg/kinfmt/internal/controller"
	"kinfmt.dev/pkg/kinfmt/internal/domain"
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

var fsAdapter adapter.StyleFSAdapter
var workflow domain.Workflow
var ui controller.UI

// projectFlag overrides the project root the base style file is searched in.
var projectFlag string

// keepStyleFlag leaves the derived style document on disk after formatting.
var keepStyleFlag bool

// noTUIFlag forces the plain text UI even when stdout is a terminal.
var noTUIFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalStyleFSAdapter()
}

const rootLongDescription = `kinfmt formats C++ sources with clang-format, first resolving the "main"
counterpart each file logically belongs to - the header a test exercises, the
interface a mock stands in for - from the project's directory layout and
filename suffixes. The resolved path is substituted into the project's
.clang-format so include-ordering rules can treat the main header specially.`

const formatLongDescription = `Format the given files in place. Each file's main counterpart is resolved
first; when one is found a derived style document is generated for it,
otherwise the base .clang-format is used unchanged.`

const resolveLongDescription = `Resolve the main counterpart for the given files and print the outcome
without formatting anything.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinfmt",
		Short: "Main-file-aware clang-format wrapper",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&projectFlag, projectFlagName, "C",
			viper.GetString(projectRootKey),
			"project root containing the base style file",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(projectFlagName), projectRootKey)

	cmd.PersistentFlags().BoolVar(&keepStyleFlag, keepStyleFlagName, viper.GetBool(keepStyleKey), "keep the derived style document after formatting")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(keepStyleFlagName), keepStyleKey)

	cmd.PersistentFlags().BoolVar(&noTUIFlag, noTUIFlagName, false, "disable the interactive progress display")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// ensureWorkflow builds the workflow from the effective configuration. Tests
// pre-set the workflow package var to inject a mock.
func ensureWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	projectRoot := projectRootPath()
	layout := layoutFromConfig(projectRoot)

	resolver := domain.NewResolver(layout, viper.GetString(implExtensionKey), fsAdapter)
	renderer := domain.NewStyleRenderer(layout, viper.GetString(placeholderKey), fsAdapter)
	formatter := adapter.NewLocalFormatterAdapter(
		viper.GetString(formatterBinaryKey),
		time.Duration(viper.GetInt64(formatterTimeoutKey))*time.Second,
	)

	workflow = domain.NewWorkflow(
		projectRoot,
		viper.GetString(styleFileKey),
		fsAdapter,
		formatter,
		resolver,
		renderer,
		ensureUI(cmd),
	)

	return workflow
}

// ensureUI picks the interactive or plain UI once per invocation. Tests
// pre-set the ui package var to inject a stub.
func ensureUI(cmd *cobra.Command) controller.UI {
	if ui == nil {
		ui = controller.NewUI(cmd, !noTUIFlag && controller.IsTTY(os.Stdout))
	}

	return ui
}

func projectRootPath() m.Path {
	root, err := fsAdapter.Abs(m.Path(viper.GetString(projectRootKey)))
	cobra.CheckErr(err)

	return root
}

// layoutFromConfig anchors the configured roots to the project root. Absolute
// root values are taken as-is.
func layoutFromConfig(projectRoot m.Path) m.Layout {
	return m.Layout{
		SourceRoot: anchorRoot(projectRoot, viper.GetString(sourceRootKey)),
		TestRoot:   anchorRoot(projectRoot, viper.GetString(testRootKey)),
		MockRoot:   anchorRoot(projectRoot, viper.GetString(mockRootKey)),
		Reflection: viper.GetString(reflectionKey),
	}
}

func anchorRoot(projectRoot m.Path, root string) m.Path {
	if filepath.IsAbs(root) {
		return m.Path(root)
	}

	return fsAdapter.JoinPath(string(projectRoot), root)
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
