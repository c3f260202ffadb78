package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/opd-ai/effectvts/bassboost"
	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/factory"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Build information, set via ldflags
var version = "dev"

var errSuiteFailed = errors.New("strength suite completed with failures")

// CLIConfig holds the flags shared by all subcommands.
type CLIConfig struct {
	manifest  string
	logLevel  string
	logFormat string
}

// RunConfig holds the flags of the run subcommand.
type RunConfig struct {
	parallel        int
	probeMaxPlusOne bool
	verbose         bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// validateCLIConfig validates the global flags.
func validateCLIConfig(config *CLIConfig) error {
	if _, err := logrus.ParseLevel(config.logLevel); err != nil {
		return fmt.Errorf("invalid log level %q", config.logLevel)
	}
	switch config.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", config.logFormat)
	}
	return nil
}

// setupLogging applies the validated logging flags to the standard logger.
func setupLogging(config *CLIConfig, errOut io.Writer) {
	level, _ := logrus.ParseLevel(config.logLevel)
	logrus.SetLevel(level)
	logrus.SetOutput(errOut)
	if config.logFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	config := &CLIConfig{}

	rootCmd := &cobra.Command{
		Use:   "effectvts",
		Short: "Bass boost strength conformance suite",
		Long: `effectvts discovers bass boost implementations registered with the effect
factory service and checks that every strength value in the sweep is accepted
or rejected as the implementation's capability requires.

Without --manifest the built-in simulated implementations are used.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCLIConfig(config); err != nil {
				return err
			}
			setupLogging(config, cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&config.manifest, "manifest", "m", "", "YAML manifest of simulated implementations")
	rootCmd.PersistentFlags().StringVar(&config.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&config.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(
		newListCmd(config),
		newRunCmd(config),
	)
	return rootCmd
}

// setupFactories builds the factory helper and registers the simulated
// factories from the manifest, or the default simulation without one.
func setupFactories(config *CLIConfig) (*factory.EffectFactoryHelper, error) {
	helper := factory.NewEffectFactoryHelper()

	if config.manifest == "" {
		if _, err := helper.CreateSimulationForTesting(); err != nil {
			return nil, err
		}
		return helper, nil
	}

	m, err := factory.LoadManifest(config.manifest)
	if err != nil {
		return nil, err
	}
	if _, err := helper.ApplyManifest(m); err != nil {
		return nil, fmt.Errorf("apply manifest %s: %w", config.manifest, err)
	}
	return helper, nil
}

// newListCmd creates the list subcommand
func newListCmd(config *CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered bass boost implementations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helper, err := setupFactories(config)
			if err != nil {
				return err
			}
			pairs, err := helper.GetAllEffectDescriptors(effect.BassBoostTypeUUID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(pairs) == 0 {
				fmt.Fprintln(out, "No bass boost implementations found.")
				return nil
			}
			printDescriptors(out, pairs)
			return nil
		},
	}
}

func printDescriptors(out io.Writer, pairs []factory.FactoryDescriptor) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACTORY\tNAME\tIMPLEMENTOR\tUUID\tSTRENGTH")
	for _, p := range pairs {
		strength := "unsupported"
		if p.Descriptor.Capability.BassBoost.StrengthSupported {
			strength = fmt.Sprintf("[%d, %d]", effect.MinPerMilleStrength, effect.MaxPerMilleStrength)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Descriptor.Common.Name,
			p.Descriptor.Common.Implementor, p.Descriptor.Common.ID.UUID, strength)
	}
	w.Flush()
}

// newRunCmd creates the run subcommand
func newRunCmd(config *CLIConfig) *cobra.Command {
	runConfig := &RunConfig{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the strength sweep",
		Long: `Run the strength sweep against every discovered implementation.

Example:
  effectvts run
  effectvts run --manifest vendor.yaml --parallel 8 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helper, err := setupFactories(config)
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, helper, runConfig); err != nil {
				return err
			}
			serviceConfig := helper.GetCurrentConfig()

			pairs, err := helper.GetAllEffectDescriptors(effect.BassBoostTypeUUID)
			if err != nil {
				return err
			}

			cases := bassboost.Cases(pairs, bassboost.StrengthValues(serviceConfig.ProbeMaxPlusOne))
			report := bassboost.Run(cases, serviceConfig.Parallel)

			out := cmd.OutOrStdout()
			printReport(out, report, runConfig.verbose)
			if !report.Passed() {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n❌ %v\n", errSuiteFailed)
				return errSuiteFailed
			}
			fmt.Fprintln(out, "\n🎉 Strength suite completed successfully!")
			return nil
		},
	}

	cmd.Flags().IntVarP(&runConfig.parallel, "parallel", "p", interfaces.MinParallel,
		fmt.Sprintf("Cases run concurrently (%d-%d)", interfaces.MinParallel, interfaces.MaxParallel))
	cmd.Flags().BoolVar(&runConfig.probeMaxPlusOne, "probe-max-plus-one", true, "Include MAX+1 in the strength sweep")
	cmd.Flags().BoolVarP(&runConfig.verbose, "verbose", "v", false, "Print every case, not only failures")

	return cmd
}

// applyRunFlags overrides the environment configuration with explicitly set flags.
func applyRunFlags(cmd *cobra.Command, helper *factory.EffectFactoryHelper, runConfig *RunConfig) error {
	serviceConfig := helper.GetCurrentConfig()
	if cmd.Flags().Changed("parallel") {
		serviceConfig.Parallel = runConfig.parallel
	}
	if cmd.Flags().Changed("probe-max-plus-one") {
		serviceConfig.ProbeMaxPlusOne = runConfig.probeMaxPlusOne
	}
	if err := helper.UpdateConfig(serviceConfig); err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}
	return nil
}

func printReport(out io.Writer, report bassboost.Report, verbose bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tRESULT\tDURATION")
	for _, res := range report.Results {
		if res.Passed && !verbose {
			continue
		}
		result := "PASS"
		if !res.Passed {
			result = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%v\n", res.Case.Name, result, res.Duration)
		for _, f := range res.Failures {
			for _, line := range strings.Split(strings.TrimSpace(f.Message), "\n") {
				fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(strings.TrimSpace(line), "\t", " "))
			}
		}
	}
	w.Flush()

	failed := len(report.Failed())
	fmt.Fprintf(out, "\n📊 Summary: %d cases, %d passed, %d failed\n",
		len(report.Results), len(report.Results)-failed, failed)
}
