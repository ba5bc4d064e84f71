package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/codegen"
	"github.com/raymyers/cfront/pkg/config"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/parser"
)

var version = "0.1.0"

// Debug flags for dumping each stage
var (
	dTokens bool
	dParse  bool
	dGen    bool
)

// Settings that override the configuration file
var (
	configPath string
	logLevel   string
	format     string
	typeNames  []string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept single-dash debug flags such as -dparse
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that also accept single-dash style
var debugFlagNames = []string{"dtokens", "dparse", "dgen"}

// normalizeFlags converts single-dash debug flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfront [file]",
		Short: "cfront tokenizes and parses a small C dialect",
		Long: `cfront is the front end of a C-to-Zig translator. It tokenizes a
source file with a pattern table, parses it with a table-driven Pratt
parser and can dump each stage.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			err := compile(cmd.Flags(), args[0], out, errOut)
			if err != nil {
				diag.Render(errOut, err)
			}
			return err
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump significant tokens as YAML")
	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump after parsing")
	rootCmd.Flags().BoolVarP(&dGen, "dgen", "", false, "Dump generated Zig")

	rootCmd.Flags().StringVar(&configPath, "config", "", "Configuration file (default ./"+config.DefaultPath+" when present)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&format, "format", "", "Format of -dparse output: c or yaml")
	rootCmd.Flags().StringArrayVarP(&typeNames, "type", "T", nil, "Treat NAME as a type name")

	return rootCmd
}

// loadConfig reads the configuration file and applies command line overrides
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Discover(configPath)
	if err != nil {
		return nil, err
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	cfg.Parser.TypeNames = append(cfg.Parser.TypeNames, typeNames...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// compile runs the front end over filename and performs the requested dumps
func compile(flags *pflag.FlagSet, filename string, out, errOut io.Writer) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger, err := diag.NewLogger(errOut, cfg.Log.Level)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(string(content), lexer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	toks = lexer.Significant(toks, cfg.DiscardKinds()...)

	if dTokens {
		if err := doTokens(filename, toks, out); err != nil {
			return err
		}
	}

	p := parser.New(toks, filename,
		parser.WithTypeNames(cfg.Parser.TypeNames...),
		parser.WithLogger(logger))
	nodes, err := p.Parse()
	if err != nil {
		return err
	}

	if dParse {
		if err := doParse(filename, nodes, cfg.Output.Format, out); err != nil {
			return err
		}
	}
	if dGen {
		if err := doGen(filename, nodes, out, logger); err != nil {
			return err
		}
	}

	if !dTokens && !dParse && !dGen {
		fmt.Fprintf(errOut, "cfront: parsed %s: %d top-level nodes\n", filename, len(nodes))
	}
	return nil
}

// doTokens writes the significant tokens to a .tokens.yaml file
func doTokens(filename string, toks []lexer.Token, out io.Writer) error {
	data, err := yaml.Marshal(struct {
		Tokens []lexer.Token `yaml:"tokens"`
	}{toks})
	if err != nil {
		return err
	}
	return writeDump(outputFilename(filename, ".tokens.yaml"), data, out)
}

// doParse writes the parsed program to a .parsed.c file, or .parsed.yaml
// when the yaml format is selected
func doParse(filename string, nodes []ast.Expr, outFormat string, out io.Writer) error {
	if outFormat == config.FormatYAML {
		data, err := ast.Dump(nodes)
		if err != nil {
			return err
		}
		return writeDump(outputFilename(filename, ".parsed.yaml"), data, out)
	}

	var buf bytes.Buffer
	ast.NewPrinter(&buf).PrintProgram(nodes)
	return writeDump(outputFilename(filename, ".parsed.c"), buf.Bytes(), out)
}

// doGen translates the program to Zig and writes it to a .zig file
func doGen(filename string, nodes []ast.Expr, out io.Writer, logger *slog.Logger) error {
	src, err := codegen.Generate(nodes, codegen.Zig{})
	if err != nil {
		return err
	}
	logger.Debug("generated zig", slog.String("file", filename), slog.Int("bytes", len(src)))
	return writeDump(outputFilename(filename, ".zig"), []byte(src), out)
}

// writeDump writes data to path and also prints it to out
func writeDump(path string, data []byte, out io.Writer) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	_, err := out.Write(data)
	return err
}

// outputFilename replaces a trailing .c with ext: input.c -> input.parsed.c
func outputFilename(filename, ext string) string {
	return strings.TrimSuffix(filename, ".c") + ext
}
