// Package main provides the command-line front end for deterministic password
// derivation.
//
// The master secret is read twice from the terminal without echo; the
// derived password is written to stdout and everything else to stderr, so
// the output can be piped into a clipboard tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/detpass"
	"github.com/opd-ai/detpass/crypto"
	"github.com/opd-ai/detpass/derive"
	"github.com/opd-ai/detpass/limits"
)

// tuningSpec overrides the pinned tuning at build time:
//
//	go build -ldflags "-X main.tuningSpec=f,c,r;f,c,r;f,c,r" ./cmd/detpass
var tuningSpec string

// CLI configuration
type CLIConfig struct {
	domain       string
	year         string
	length       int
	lower        bool
	upper        bool
	digits       bool
	symbols      bool
	showStrength bool
	wrapDivisor  bool
	logLevel     string
	version      bool
	help         bool
}

// parseCLIFlags parses command-line arguments into a configuration. The year
// defaults to the current year of the package-level clock.
func parseCLIFlags(args []string, output io.Writer) (*CLIConfig, *flag.FlagSet, error) {
	config := &CLIConfig{}
	fs := flag.NewFlagSet("detpass", flag.ContinueOnError)
	fs.SetOutput(output)

	// Derivation inputs
	fs.StringVar(&config.domain, "domain", "", "Domain or site label the password is for (may be empty)")
	fs.StringVar(&config.year, "year", strconv.Itoa(crypto.CurrentYear(nil)), "Year label (defaults to the current year)")
	fs.IntVar(&config.length, "length", 0, "Fixed password length (1-256, 0 for year-based length)")

	// Symbol categories
	fs.BoolVar(&config.lower, "lower", true, "Use lowercase letters")
	fs.BoolVar(&config.upper, "upper", true, "Use uppercase letters")
	fs.BoolVar(&config.digits, "digits", true, "Use digits")
	fs.BoolVar(&config.symbols, "symbols", true, "Use punctuation symbols")

	// Strength reporting
	fs.BoolVar(&config.showStrength, "strength", true, "Print the strength rating to stderr")
	fs.BoolVar(&config.wrapDivisor, "wrap-divisor", false, "Score years before 1940 with the legacy unsigned divisor")

	// Logging configuration
	fs.StringVar(&config.logLevel, "log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")

	fs.BoolVar(&config.version, "version", false, "Print the tuning fingerprint and exit")
	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return config, fs, nil
}

// printUsage prints the usage information.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Deterministic Password Generator")
	fmt.Fprintln(w, "================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Derives a site-specific password from one master secret. Nothing is")
	fmt.Fprintln(w, "stored: the same secret, domain and year always give the same password.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [-domain <label>] [options]\n", fs.Name())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  # Password for this year\n")
	fmt.Fprintf(w, "  %s -domain example.com\n", fs.Name())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  # Fixed 20 characters, no punctuation\n")
	fmt.Fprintf(w, "  %s -domain example.com -length 20 -symbols=false\n", fs.Name())
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(config *CLIConfig) error {
	if err := limits.ValidateLabel("domain", []byte(config.domain)); err != nil {
		return err
	}

	if err := limits.ValidateLabel("year", []byte(config.year)); err != nil {
		return err
	}

	if err := limits.ValidateFixedLength(config.length); err != nil {
		return fmt.Errorf("invalid length: %w", err)
	}

	// An empty set would print an empty line.
	if categoriesFromConfig(config).Empty() {
		return fmt.Errorf("at least one symbol category must be enabled")
	}

	if _, err := logrus.ParseLevel(config.logLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

// categoriesFromConfig converts the category toggles into a category set.
func categoriesFromConfig(config *CLIConfig) derive.Categories {
	c := derive.NoCategories
	if config.lower {
		c |= derive.Lower
	}
	if config.upper {
		c |= derive.Upper
	}
	if config.digits {
		c |= derive.Digit
	}
	if config.symbols {
		c |= derive.Symbol
	}
	return c
}

// loadTuning returns the build-time tuning when one was injected, otherwise
// the pinned tuning.
func loadTuning() (derive.Tuning, error) {
	if tuningSpec == "" {
		return derive.PinnedTuning(), nil
	}
	return derive.ParseTuning(tuningSpec)
}

// createOptions converts CLI configuration to derivation options.
func createOptions(config *CLIConfig) (*detpass.Options, error) {
	tuning, err := loadTuning()
	if err != nil {
		return nil, fmt.Errorf("build tuning: %w", err)
	}

	opts := detpass.NewOptions()
	opts.Tuning = tuning
	opts.Categories = categoriesFromConfig(config)
	opts.FixedLength = config.length
	if config.wrapDivisor {
		opts.DivisorPolicy = derive.DivisorWrap
	}
	return opts, nil
}

// configureLogging sets the logrus level and writes logs to w.
func configureLogging(level string, w io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return nil
}

// run reads the secret, derives the password and prints it. Every copy of
// the secret and of the password is wiped before run returns.
func run(config *CLIConfig, reader SecretReader, stdout, stderr io.Writer) error {
	opts, err := createOptions(config)
	if err != nil {
		return err
	}

	dp, err := detpass.New(opts)
	if err != nil {
		return err
	}

	secret, err := readConfirmedSecret(reader, stderr)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(secret)

	if err := limits.ValidateLabel("secret", secret); err != nil {
		return err
	}

	domain := []byte(config.domain)
	year := []byte(config.year)
	defer crypto.ZeroBytes(domain)
	defer crypto.ZeroBytes(year)

	pw := dp.Derive(secret, domain, year)
	defer pw.Wipe()

	crypto.NewPackageLogger("main", "run").
		WithFields(crypto.OperationFields("derive", "complete", logrus.Fields{
			"tuning":     dp.Fingerprint(),
			"length":     pw.Len(),
			"iterations": pw.Iterations(),
			"covered":    pw.Covered(),
		}, crypto.RedactedFields(domain, "domain"))).
		Info("Password derived")

	if !pw.Covered() {
		fmt.Fprintln(stderr, "⚠️  Not every selected category appears in this password")
	}

	line := make([]byte, 0, pw.Len()+1)
	line = append(line, pw.Bytes()...)
	line = append(line, '\n')
	defer crypto.ZeroBytes(line)

	if _, err := stdout.Write(line); err != nil {
		return fmt.Errorf("write password: %w", err)
	}

	if config.showStrength {
		rating := detpass.Rate(dp.Strength(pw, year))
		fmt.Fprintf(stderr, "Strength: %s (%.0f%%)\n", rating.Label, rating.Fraction*100)
	}

	return nil
}

// main is the entry point for the command-line front end.
func main() {
	cliConfig, fs, err := parseCLIFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if cliConfig.help {
		printUsage(os.Stdout, fs)
		os.Exit(0)
	}

	if cliConfig.version {
		tuning, err := loadTuning()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Invalid build tuning: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("detpass tuning %s\n", tuning.Fingerprint())
		os.Exit(0)
	}

	if err := validateCLIConfig(cliConfig); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(1)
	}

	if err := configureLogging(cliConfig.logLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid log level: %v\n", err)
		os.Exit(1)
	}

	reader := newSecretReader(os.Stdin, os.Stderr)
	if err := run(cliConfig, reader, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
