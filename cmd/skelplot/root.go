package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"skelplot/internal/config"
	"skelplot/internal/logging"
	"skelplot/internal/mjcf"
	"skelplot/internal/skeleton"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool
	log        *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), log: logging.NewNop()}

	root := &cobra.Command{
		Use:           "skelplot",
		Short:         "Plot the zero pose of an MJCF humanoid skeleton.",
		Long:          `skelplot loads a MuJoCo MJCF body tree, evaluates the pose with no joint rotation, and draws joints, bones and labels.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = logging.NewLogger("skelplot", a.verbose)
			return config.ReadFile(a.v, a.configFile)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default .skelplot.yaml in . or $HOME)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRenderCmd(a),
		newJointsCmd(a),
		newChainsCmd(a),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves configuration, letting a positional model path win.
func (a *app) loadConfig(args []string) (config.Config, error) {
	if len(args) == 1 {
		model, err := filepath.Abs(args[0])
		if err != nil {
			return config.Config{}, errors.Wrap(err, "model path")
		}
		a.v.Set("model", model)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return config.Config{}, err
	}
	a.log.Debugw("config resolved", "model", cfg.Model, "output", cfg.Output, "views", cfg.Views)
	return cfg, nil
}

// loadPose reads the model and evaluates its zero pose.
func (a *app) loadPose(path string) (*mjcf.Model, *skeleton.State, error) {
	model, err := mjcf.Load(path)
	if err != nil {
		return nil, nil, err
	}
	tree, err := model.Tree()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "skeleton %s", path)
	}
	a.log.Infow("skeleton loaded", "model", model.Name, "joints", tree.Len())
	return model, skeleton.ZeroPose(tree), nil
}

// bindFlags exposes dashed flag names under their underscored config keys.
func (a *app) bindFlags(cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
