package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/iancoleman/strcase"
	"github.com/kaptinlin/jsonrepair"
	"github.com/mcncl/jsonsieve/internal/config"
	"github.com/mcncl/jsonsieve/internal/errors"
	"github.com/mcncl/jsonsieve/internal/extractor"
	"github.com/mcncl/jsonsieve/internal/models"
	"github.com/mcncl/jsonsieve/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input text file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Key         string `help:"Collect every object owning this key instead of printing the root value." short:"k"`
	Pretty      bool   `help:"Indent the output JSON." short:"p"`
	Indent      string `help:"Indent string used with --pretty." default:"  "`
	KeyCase     string `help:"Rewrite object keys on output: snake, camel, lower_camel or kebab."`
	Repair      bool   `help:"Fall back to aggressive JSON repair when strict decoding fails." short:"R"`
	Config      string `help:"Path to config file. Defaults to the nearest .jsonsieve.yml." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct text input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug bool
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("jsonsieve"),
		kong.Description("A tool to extract JSON values from loosely-formatted text"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonsieve version %s\n", Version)
		return
	}

	err = run(&Context{Debug: CLI.Debug})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonsieve --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Resolve configuration
	cfg, err := loadConfig()
	if err != nil {
		return errors.NewConfigError("failed to load configuration", err)
	}

	// 2. Read the raw input text
	text, err := readInput()
	if err != nil {
		// Error is already wrapped by readInput
		return err
	}

	key := CLI.Key
	if key == "" {
		key = cfg.Search.Key
	}
	repair := CLI.Repair || cfg.Repair

	// 3. Extract, optionally searching for a key
	var result any
	if key != "" {
		result, err = extractor.Find(text, key)
		if err != nil && repair {
			if value, repairErr := repairDecode(text); repairErr == nil {
				result, err = extractor.Find(value, key)
			}
		}
		if err != nil {
			return err
		}
	} else {
		var value models.Value
		value, err = extractor.ExtractString(text)
		if err != nil && repair {
			value, err = repairDecode(text)
		}
		if err != nil {
			return err
		}
		if value == nil {
			return errors.NewInputError("no JSON value found in input", errors.ErrNoJSON)
		}
		result = value
	}

	// 4. Apply output transforms
	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "extracted result of type %T\n", result)
	}
	if keyCase := resolveKeyCase(cfg); keyCase != nil {
		result = applyKeyCase(result, keyCase)
	}

	// 5. Serialise and write the result
	out, err := marshalResult(result, cfg)
	if err != nil {
		return errors.NewOutputError("failed to serialise extracted value", err)
	}
	return writeOutput(out)
}

// loadConfig resolves the effective configuration: an explicit --config path,
// the nearest config file up the directory tree, or defaults.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// CLI flags override file values when explicitly set
	if CLI.Pretty {
		cfg.Output.Pretty = true
	}
	if CLI.Indent != "" && CLI.Indent != "  " {
		cfg.Output.Indent = CLI.Indent
	}
	if CLI.KeyCase != "" {
		cfg.Output.KeyCase = CLI.KeyCase
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// repairDecode is the --repair fallback: run the input through jsonrepair and
// decode the repaired text strictly.
func repairDecode(text string) (models.Value, error) {
	repaired, err := jsonrepair.JSONRepair(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.NewDecodeError("failed to repair input", err)
	}
	return parser.Decode(repaired)
}

// resolveKeyCase maps the configured key case name to its strcase converter.
func resolveKeyCase(cfg *config.Config) func(string) string {
	switch cfg.Output.KeyCase {
	case "snake":
		return strcase.ToSnake
	case "camel":
		return strcase.ToCamel
	case "lower_camel":
		return strcase.ToLowerCamel
	case "kebab":
		return strcase.ToKebab
	}
	return nil
}

// applyKeyCase rebuilds value with every object key passed through convert.
// Key order is preserved.
func applyKeyCase(value any, convert func(string) string) any {
	switch v := value.(type) {
	case *models.Object:
		out := models.NewObject()
		for _, key := range v.Keys() {
			out.Set(convert(key), applyKeyCase(v.Value(key), convert))
		}
		return out
	case models.Array:
		out := make(models.Array, len(v))
		for i, element := range v {
			out[i] = applyKeyCase(element, convert)
		}
		return out
	default:
		return v
	}
}

// marshalResult serialises the extracted result, honouring pretty-print settings.
func marshalResult(result any, cfg *config.Config) (string, error) {
	var data []byte
	var err error
	if cfg.Output.Pretty {
		data, err = json.MarshalIndent(result, "", cfg.Output.Indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readInput reads the raw text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		return readInputFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(data), nil
}

// readInputFile reads the whole input file, with friendlier errors for the
// common failure modes.
func readInputFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", path),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", path),
			err,
		)
	}

	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", path),
			errors.ErrFileEmpty,
		)
	}

	return string(data), nil
}

// writeOutput writes the serialised result to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Extracted JSON written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(out)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste text
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "JSONSieve Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your text below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	text := builder.String()
	if len(text) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing text...")
	return text, nil
}
