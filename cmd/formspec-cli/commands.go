package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formspec/pkg/export/openapi"
	"github.com/goliatone/go-formspec/pkg/orchestrator"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/renderers/preview"
	"github.com/goliatone/go-formspec/pkg/renderers/tui"
	"github.com/goliatone/go-formspec/pkg/source"
	"github.com/goliatone/go-formspec/pkg/visibility"

	internalLoader "github.com/goliatone/go-formspec/internal/loader"
)

// driverFactory is swapped in tests to script the answer command.
var driverFactory = func(cmd *cobra.Command) tui.PromptDriver {
	return tui.NewSurveyDriver(cmd.ErrOrStderr())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formspec-cli",
		Short:         "Validate, normalize, preview and export form specifications",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	root.PersistentFlags().Duration("http-timeout", 0, "allow http(s) sources with this timeout")

	root.AddCommand(
		newValidateCmd(),
		newNormalizeCmd(),
		newPreviewCmd(),
		newExportCmd(),
		newAnswerCmd(),
	)
	return root
}

func newOrchestrator(cmd *cobra.Command, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	logger, err := loggerFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	timeout, err := cmd.Flags().GetDuration("http-timeout")
	if err != nil {
		return nil, err
	}

	var loaderOpts []source.LoaderOption
	if timeout > 0 {
		loaderOpts = append(loaderOpts, source.WithHTTPFallback(timeout))
	}
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithLoader(internalLoader.New(source.NewLoaderOptions(loaderOpts...))),
	}
	return orchestrator.New(append(options, extra...)...), nil
}

func requestFor(arg string) (orchestrator.Request, error) {
	src, err := source.Parse(arg)
	if err != nil {
		return orchestrator.Request{}, err
	}
	return orchestrator.Request{Source: src}, nil
}

// reportInvalid prints every validation issue and returns a short error.
func reportInvalid(cmd *cobra.Command, err error) error {
	invalid, ok := orchestrator.AsInvalidSpec(err)
	if !ok {
		return err
	}
	out := cmd.ErrOrStderr()
	issues := invalid.Result.Issues
	fmt.Fprintf(out, "Validation failed: %d issue(s)\n", max(len(issues), 1))
	if len(issues) == 0 {
		fmt.Fprintf(out, "  1. %s\n", invalid.Result.Reason)
	}
	for i, issue := range issues {
		fmt.Fprintf(out, "  %d. %s\n", i+1, issue.String())
	}
	return errors.New("invalid form specification")
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <spec>",
		Short: "Check a specification against the shape contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			req, err := requestFor(args[0])
			if err != nil {
				return err
			}
			prepared, err := orch.Prepare(cmd.Context(), req)
			if err != nil {
				return reportInvalid(cmd, err)
			}
			form := prepared.Form
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%s, %d section(s), %d conditional)\n",
				args[0], form.Mode, len(form.Sections), len(form.ConditionalSections()))
			for _, title := range form.DuplicateTitles() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  ⚠ section title %q is used more than once\n", title)
			}
			return nil
		},
	}
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <spec>",
		Short: "Print the normalized form as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			req, err := requestFor(args[0])
			if err != nil {
				return err
			}
			prepared, err := orch.Prepare(cmd.Context(), req)
			if err != nil {
				return reportInvalid(cmd, err)
			}
			return writeJSON(cmd, prepared.Form)
		},
	}
}

func newPreviewCmd() *cobra.Command {
	var (
		output      string
		answersPath string
		unknown     string
		combinator  string
		templates   string
		tokens      []string
		themeName   string
	)
	cmd := &cobra.Command{
		Use:   "preview <spec>",
		Short: "Render a read-only HTML preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := render.NewRegistry()
			renderer, err := preview.New(preview.WithTemplatesDir(templates))
			if err != nil {
				return err
			}
			registry.MustRegister(renderer)

			orch, err := newOrchestrator(cmd, orchestrator.WithRegistry(registry))
			if err != nil {
				return err
			}
			req, err := requestFor(args[0])
			if err != nil {
				return err
			}

			opts, err := visibilityOptions(unknown, combinator)
			if err != nil {
				return err
			}
			req.RenderOptions.Visibility = opts
			if answersPath != "" {
				answers, err := readAnswers(answersPath)
				if err != nil {
					return err
				}
				req.RenderOptions.Answers = answers
			}
			if len(tokens) > 0 {
				selection, err := tokenSelection(themeName, tokens)
				if err != nil {
					return err
				}
				req.RenderOptions.Theme = selection
			}

			html, err := orch.Render(cmd.Context(), req)
			if err != nil {
				return reportInvalid(cmd, err)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Preview written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON or YAML answers used to mark sections shown or hidden")
	cmd.Flags().StringVar(&unknown, "unknown", "visible", "treatment of unanswered fields in conditions (visible, hidden)")
	cmd.Flags().StringVar(&combinator, "combinator", "all", "how multiple conditions combine (all, any)")
	cmd.Flags().StringVar(&templates, "templates", "", "directory with replacement preview templates")
	cmd.Flags().StringArrayVar(&tokens, "token", nil, "theme token as key=value (repeatable)")
	cmd.Flags().StringVar(&themeName, "theme", "custom", "theme name recorded on the preview")
	return cmd
}

func newExportCmd() *cobra.Command {
	var asOpenAPI bool
	var version string
	cmd := &cobra.Command{
		Use:   "export <spec>",
		Short: "Print the forms-platform batch update (or an OpenAPI submission contract)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			req, err := requestFor(args[0])
			if err != nil {
				return err
			}

			if asOpenAPI {
				prepared, err := orch.Prepare(cmd.Context(), req)
				if err != nil {
					return reportInvalid(cmd, err)
				}
				doc, err := openapi.Document(prepared.Form, version)
				if err != nil {
					return err
				}
				return writeJSON(cmd, doc)
			}

			result, err := orch.Export(cmd.Context(), req)
			if err != nil {
				return reportInvalid(cmd, err)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "  ⚠ %s\n", w.String())
			}
			return writeJSON(cmd, result.Batch)
		},
	}
	cmd.Flags().BoolVar(&asOpenAPI, "openapi", false, "emit an OpenAPI document describing valid responses")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "document version for --openapi")
	return cmd
}

func newAnswerCmd() *cobra.Command {
	var (
		format   string
		validate bool
		unknown  string
	)
	cmd := &cobra.Command{
		Use:   "answer <spec>",
		Short: "Walk through the form in the terminal and print the answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			req, err := requestFor(args[0])
			if err != nil {
				return err
			}
			prepared, err := orch.Prepare(cmd.Context(), req)
			if err != nil {
				return reportInvalid(cmd, err)
			}

			opts, err := visibilityOptions(unknown, "all")
			if err != nil {
				return err
			}
			renderer, err := tui.New(
				tui.WithPromptDriver(driverFactory(cmd)),
				tui.WithOutputFormat(tui.OutputFormat(format)),
			)
			if err != nil {
				return err
			}
			answers, err := renderer.Collect(cmd.Context(), prepared.Form, render.RenderOptions{Visibility: opts})
			if err != nil {
				return err
			}
			if validate {
				if err := openapi.ValidateAnswers(prepared.Form, answers); err != nil {
					return err
				}
			}
			out, err := renderer.Serialize(answers)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "answer output format (json, form, pretty)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check the answers against the OpenAPI submission schema")
	cmd.Flags().StringVar(&unknown, "unknown", "visible", "treatment of unanswered fields in conditions (visible, hidden)")
	return cmd
}

func visibilityOptions(unknown, combinator string) (visibility.Options, error) {
	policy, err := visibility.ParseUnknownFieldPolicy(unknown)
	if err != nil {
		return visibility.Options{}, err
	}
	c, err := visibility.ParseCombinator(combinator)
	if err != nil {
		return visibility.Options{}, err
	}
	return visibility.Options{Unknown: policy, Combinator: c}, nil
}

func readAnswers(path string) (visibility.Answers, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	doc, err := source.NewDocument(source.FromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	value, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("answers must be an object, got %T", value)
	}
	return visibility.Answers(m), nil
}

func tokenSelection(name string, pairs []string) (*theme.Selection, error) {
	tokens := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid token %q, want key=value", pair)
		}
		tokens[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return &theme.Selection{
		Theme:    name,
		Manifest: &theme.Manifest{Name: name, Tokens: tokens},
	}, nil
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
