package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itrgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "itrgo",
		Short: "Indian income tax regime calculator",
		Long: "Compares the old and new Indian income tax regimes for a salary and its " +
			"deductions, finds the deduction break-even point and keeps a personal profile.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Settings file (default: ./itrgo.yaml or the user config dir)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		breakevenCmd(),
		profileCmd(),
		serveCmd(),
		migrateCmd(),
		versionCmd(),
	)
	return root
}

// addAmountFlags registers the flags that override input file amounts
func addAmountFlags(cmd *cobra.Command) {
	cmd.Flags().String("gross", "", "Gross annual income")
	cmd.Flags().String("80c", "", "Section 80C investments")
	cmd.Flags().String("80d", "", "Section 80D premiums")
	cmd.Flags().String("other", "", "Other deductions")
}

// readInputs loads the optional input file and applies any amount flags the user set
func readInputs(cmd *cobra.Command, args []string) (domain.RawTaxInputs, string, error) {
	var raw domain.RawTaxInputs
	source := ""

	if len(args) > 0 {
		input, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return raw, "", err
		}
		raw = input.RawTaxInputs
		source = args[0]
	}

	var overrides config.Overrides
	changed := false
	for flag, target := range map[string]**string{
		"gross": &overrides.GrossIncome,
		"80c":   &overrides.Section80C,
		"80d":   &overrides.Section80D,
		"other": &overrides.OtherDeductions,
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, _ := cmd.Flags().GetString(flag)
		*target = &value
		changed = true
	}

	if len(args) == 0 && !changed {
		return raw, "", fmt.Errorf("provide an input file or at least one of --gross, --80c, --80d, --other")
	}
	if changed && source == "" {
		source = "command line"
	}
	return overrides.Apply(raw), source, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Compare the old and new regimes",
		Long: "Computes tax under both regimes from a YAML input file and/or amount flags. " +
			"Text formats print to stdout; pdf and xlsx are written to a file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			raw, source, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			formatName, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(formatName)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", formatName,
					strings.Join(output.FormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
			}

			var p *domain.Profile
			if withProfile, _ := cmd.Flags().GetBool("profile"); withProfile {
				p, err = a.loadProfile(cmd.Context())
				if err != nil {
					return err
				}
				if p == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "No stored profile; continuing without one")
				}
			}

			report, err := compare.NewEngine(a.calcEngine()).Build(cmd.Context(), raw, p)
			if err != nil {
				return err
			}
			report.Source = source

			outPath, _ := cmd.Flags().GetString("output")
			if outPath != "" || isBinaryFormat(f) {
				written, err := output.WriteFormatted(f, report, outPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addAmountFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, html, json, pdf, xlsx)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file")
	cmd.Flags().Bool("profile", false, "Attach the stored profile's age category to the report")
	return cmd
}

func isBinaryFormat(f output.Formatter) bool {
	switch output.ExtensionFor(f) {
	case "pdf", "xlsx":
		return true
	}
	return false
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Check inputs without computing tax",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, source, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warnings := calculation.InputWarnings(raw)
			if len(warnings) == 0 {
				fmt.Fprintf(out, "%s: all amounts are valid\n", source)
				return nil
			}
			fmt.Fprintf(out, "%s: %d amount(s) will be treated as zero\n", source, len(warnings))
			for _, w := range warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
			return nil
		},
	}
	addAmountFlags(cmd)
	return cmd
}

func breakevenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the extra deduction that makes the old regime competitive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			raw, _, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			calc := a.calcEngine()
			eval := calc.Evaluate(raw)
			solver := breakeven.NewDefaultSolver(calc)

			result, err := solver.Solve(cmd.Context(), eval.Inputs)
			if err != nil {
				return err
			}
			var plan *breakeven.Plan
			if !result.AlreadyCheaper {
				if plan, err = solver.PlanDeductions(cmd.Context(), eval.Inputs); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			formatName, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(formatName) {
			case "table", "":
				tf := &breakeven.TableFormatter{}
				fmt.Fprint(out, tf.Format(result))
				if plan != nil {
					fmt.Fprintln(out)
					fmt.Fprint(out, tf.FormatPlan(plan))
				}
			case "json":
				jf := &breakeven.JSONFormatter{Pretty: true}
				s, err := jf.Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				if plan != nil {
					s, err := jf.FormatPlan(plan)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
				}
			default:
				return fmt.Errorf("unknown format %q (want table or json)", formatName)
			}
			return nil
		},
	}
	addAmountFlags(cmd)
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
