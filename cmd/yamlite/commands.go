package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yamlite/go-yamlite"
)

const envPrefix = "YAMLITE"

// app carries the resolved configuration shared by all subcommands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "yamlite",
		Short:         "Convert between yamlite documents and JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if a.v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("strict", false, "fail when the parser had to skip or normalize lines")
	flags.Int("indent", 0, "starting indentation level for emitted documents")
	flags.BoolP("verbose", "v", false, "log every parse note")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"strict", "indent", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "tojson [file]",
			Short: "Parse a yamlite document and print it as JSON",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runToJSON,
		},
		&cobra.Command{
			Use:   "fromjson [file]",
			Short: "Render a JSON object as a yamlite document",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runFromJSON,
		},
		&cobra.Command{
			Use:   "fmt [file]",
			Short: "Normalize a yamlite document by parsing and re-encoding it",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runFmt,
		},
	)

	return root
}

func (a *app) runToJSON(cmd *cobra.Command, args []string) error {
	res, err := a.parse(cmd, args)
	if err != nil {
		return err
	}

	out, err := yamlite.JSON(res.Value)
	if err != nil {
		return err
	}
	return writeOut(cmd, out)
}

func (a *app) runFromJSON(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out, err := yamlite.FromJSON(data, yamlite.StartIndent(a.v.GetInt("indent")))
	if err != nil {
		return err
	}
	return writeOut(cmd, out)
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	res, err := a.parse(cmd, args)
	if err != nil {
		return err
	}

	out, err := yamlite.Marshal(res.Value, yamlite.StartIndent(a.v.GetInt("indent")))
	if err != nil {
		return err
	}
	return writeOut(cmd, out)
}

// parse reads and parses the input, logs the parse notes and enforces
// --strict.
func (a *app) parse(cmd *cobra.Command, args []string) (*yamlite.Result, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	res := yamlite.Parse(data)
	for _, n := range res.Notes {
		a.logger.Debug(n.Message, "line", n.Line, "kind", n.Kind.String())
	}
	if len(res.Notes) > 0 {
		a.logger.Info("parsed with notes", "count", len(res.Notes))
		if a.v.GetBool("strict") {
			return nil, &yamlite.ParseError{Notes: res.Notes}
		}
	}

	return res, nil
}

// readInput reads the named file, or standard input when no file is given
// or the name is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func writeOut(cmd *cobra.Command, out []byte) error {
	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
