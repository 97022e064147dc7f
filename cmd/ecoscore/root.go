package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/ecoscore-cli/internal/model"
	"github.com/idlab-discover/ecoscore-cli/internal/predict"
	"github.com/idlab-discover/ecoscore-cli/internal/session"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

// rootCmd runs the interactive session when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "ecoscore",
	Short: "Predict the eco score of a product",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	RunE: runSession,
}

var cfgFile string

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ecoscore.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().String("model", model.DefaultPath, "Path to the scoring artifact (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: quiet|standard|debug")
	rootCmd.PersistentFlags().Int("timeout", 0, "Seconds allowed for one scoring call (0 = no limit)")

	viper.BindPFlag("model.path", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("predict.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.SetDefault("model.path", model.DefaultPath)

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(predictCmd, modelCmd)
}

func initConfig() {
	// Environment variables, e.g. model.path -> ECOSCORE_MODEL_PATH
	viper.SetEnvPrefix("ECOSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	var err error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err = viper.ReadInConfig()
	} else {
		home, herr := os.UserHomeDir()
		cobra.CheckErr(herr)

		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.AddConfigPath("./config")

		// Try .ecoscore first, then defaults.yaml
		viper.SetConfigName(".ecoscore")
		err = viper.ReadInConfig()
		notFound := &viper.ConfigFileNotFoundError{}
		if err != nil && errors.As(err, notFound) {
			viper.SetConfigName("defaults")
			err = viper.ReadInConfig()
		}
	}

	notFound := &viper.ConfigFileNotFoundError{}
	switch {
	case err != nil && errors.As(err, notFound):
		// The config file is optional
	case err != nil:
		cobra.CheckErr(err)
	default:
		configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, configMsg)
	}
}

const longDescription = "Predict the environmental impact of a product. Describe its production footprint, packaging and transport and get an eco score from 0 to 100 with a tier and a recommendation."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderGradientBanner(ui.BannerASCII) + "\n" + longDescription
}

// runSession opens the artifact behind a spinner and hands over to the
// interactive form loop.
func runSession(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings()
	if err != nil {
		return err
	}
	st.wireLogging(cmd.ErrOrStderr())

	var handle *model.Handle
	err = ui.RunWithSpinner(cmd.ErrOrStderr(), st.quiet(), "Loading model "+st.modelPath, func() error {
		handle = model.Open(st.modelPath)
		return nil
	})
	if err != nil {
		return err
	}

	svc := predict.NewService(handle, predict.Options{Timeout: st.timeout})
	presenter := ui.NewResultUI(cmd.OutOrStdout(), false, handle.Path())
	return session.New(svc, &ui.FormPrompter{}, presenter).Run(cmd.Context())
}
