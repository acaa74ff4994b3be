package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/detpass/crypto"
	"github.com/opd-ai/detpass/derive"
)

// fixedClock is a crypto.TimeProvider pinned to one instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// scriptedReader returns prepared secret entries in order and keeps every
// slice it handed out so tests can check they were wiped.
type scriptedReader struct {
	entries [][]byte
	errAt   int
	issued  [][]byte
	prompts []string
}

func newScriptedReader(entries ...string) *scriptedReader {
	r := &scriptedReader{errAt: -1}
	for _, e := range entries {
		r.entries = append(r.entries, []byte(e))
	}
	return r
}

func (r *scriptedReader) ReadSecret(prompt string) ([]byte, error) {
	r.prompts = append(r.prompts, prompt)
	i := len(r.issued)
	if i == r.errAt || i >= len(r.entries) {
		r.issued = append(r.issued, nil)
		return nil, errors.New("no more input")
	}
	r.issued = append(r.issued, r.entries[i])
	return r.entries[i], nil
}

func (r *scriptedReader) allWiped() bool {
	for _, s := range r.issued {
		for _, b := range s {
			if b != 0 {
				return false
			}
		}
	}
	return true
}

func defaultConfig() *CLIConfig {
	return &CLIConfig{
		domain:       "example.com",
		year:         "2024",
		lower:        true,
		upper:        true,
		digits:       true,
		symbols:      true,
		showStrength: true,
		logLevel:     "WARN",
	}
}

// useClock installs c as the package-level clock for the duration of t.
func useClock(t *testing.T, c crypto.TimeProvider) {
	t.Helper()
	crypto.SetDefaultTimeProvider(c)
	t.Cleanup(func() { crypto.SetDefaultTimeProvider(nil) })
}

func TestParseCLIFlagsDefaults(t *testing.T) {
	useClock(t, fixedClock{time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC)})

	config, _, err := parseCLIFlags([]string{"-domain", "example.com"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "example.com", config.domain)
	assert.Equal(t, "2031", config.year)
	assert.Zero(t, config.length)
	assert.Equal(t, derive.AllCategories, categoriesFromConfig(config))
	assert.True(t, config.showStrength)
	assert.False(t, config.wrapDivisor)
	assert.Equal(t, "WARN", config.logLevel)
}

func TestParseCLIFlagsOverrides(t *testing.T) {
	useClock(t, fixedClock{time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC)})

	config, _, err := parseCLIFlags([]string{
		"-domain", "bank.test",
		"-year", "2026",
		"-length", "20",
		"-symbols=false",
		"-upper=false",
		"-wrap-divisor",
		"-log-level", "DEBUG",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "2026", config.year)
	assert.Equal(t, 20, config.length)
	assert.Equal(t, derive.Lower|derive.Digit, categoriesFromConfig(config))
	assert.True(t, config.wrapDivisor)
	assert.Equal(t, "DEBUG", config.logLevel)
}

func TestParseCLIFlagsUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := parseCLIFlags([]string{"-bogus"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "bogus")

	_, _, err = parseCLIFlags([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestValidateCLIConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *CLIConfig)
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid config with defaults",
			mutate:  func(c *CLIConfig) {},
			wantErr: false,
		},
		{
			name:    "empty domain is allowed",
			mutate:  func(c *CLIConfig) { c.domain = "" },
			wantErr: false,
		},
		{
			name:        "domain too large",
			mutate:      func(c *CLIConfig) { c.domain = strings.Repeat("d", 5000) },
			wantErr:     true,
			errContains: "label too large",
		},
		{
			name:        "length over 256",
			mutate:      func(c *CLIConfig) { c.length = 257 },
			wantErr:     true,
			errContains: "invalid length",
		},
		{
			name:        "negative length",
			mutate:      func(c *CLIConfig) { c.length = -3 },
			wantErr:     true,
			errContains: "invalid length",
		},
		{
			name: "no categories",
			mutate: func(c *CLIConfig) {
				c.lower, c.upper, c.digits, c.symbols = false, false, false, false
			},
			wantErr:     true,
			errContains: "at least one symbol category",
		},
		{
			name:        "bad log level",
			mutate:      func(c *CLIConfig) { c.logLevel = "LOUD" },
			wantErr:     true,
			errContains: "invalid log level",
		},
		{
			name:    "non-numeric year is allowed",
			mutate:  func(c *CLIConfig) { c.year = "next" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultConfig()
			tt.mutate(config)

			err := validateCLIConfig(config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadConfirmedSecret(t *testing.T) {
	t.Run("matching entries", func(t *testing.T) {
		r := newScriptedReader("correct horse", "correct horse")
		var status bytes.Buffer

		secret, err := readConfirmedSecret(r, &status)
		require.NoError(t, err)
		assert.Equal(t, "correct horse", string(secret))
		assert.Contains(t, status.String(), "Passwords match")
		assert.Equal(t, []string{"Master password: ", "Re-enter password: "}, r.prompts)

		// The confirmation copy is wiped immediately.
		assert.Equal(t, make([]byte, len("correct horse")), r.issued[1])
	})

	t.Run("mismatch wipes both", func(t *testing.T) {
		r := newScriptedReader("correct horse", "correct h0rse")
		var status bytes.Buffer

		secret, err := readConfirmedSecret(r, &status)
		assert.ErrorIs(t, err, ErrSecretMismatch)
		assert.Nil(t, secret)
		assert.Contains(t, status.String(), "Passwords differ")
		assert.True(t, r.allWiped())
	})

	t.Run("different lengths", func(t *testing.T) {
		r := newScriptedReader("abc", "abcd")
		_, err := readConfirmedSecret(r, io.Discard)
		assert.ErrorIs(t, err, ErrSecretMismatch)
	})

	t.Run("empty secret", func(t *testing.T) {
		r := newScriptedReader("", "")
		_, err := readConfirmedSecret(r, io.Discard)
		assert.ErrorIs(t, err, ErrEmptySecret)
	})

	t.Run("second read fails", func(t *testing.T) {
		r := newScriptedReader("correct horse", "correct horse")
		r.errAt = 1

		_, err := readConfirmedSecret(r, io.Discard)
		assert.Error(t, err)
		assert.True(t, r.allWiped())
	})
}

func TestLineReader(t *testing.T) {
	r := &lineReader{
		in:      strings.NewReader("correct horse\r\nsecond\nlast"),
		prompts: io.Discard,
	}

	first, err := r.ReadSecret("> ")
	require.NoError(t, err)
	assert.Equal(t, "correct horse", string(first))

	second, err := r.ReadSecret("> ")
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))

	last, err := r.ReadSecret("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", string(last))

	_, err = r.ReadSecret("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReaderLeavesNoSecretBehind(t *testing.T) {
	r := &lineReader{
		in:      strings.NewReader("correct horse\ncorrect horse\n"),
		prompts: io.Discard,
	}

	secret, err := readConfirmedSecret(r, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "correct horse", string(secret))
	crypto.ZeroBytes(secret)

	assert.True(t, crypto.IsZero(secret))
	assert.True(t, crypto.IsZero(r.buf[:cap(r.buf)]), "line buffer still holds secret bytes")
	assert.True(t, crypto.IsZero(r.one[:]))
}

func TestLineReaderLongSecret(t *testing.T) {
	long := strings.Repeat("s", 1000)
	r := &lineReader{
		in:      strings.NewReader(long + "\n"),
		prompts: io.Discard,
	}

	secret, err := r.ReadSecret("> ")
	require.NoError(t, err)
	assert.Equal(t, long, string(secret))
	assert.True(t, crypto.IsZero(r.buf[:cap(r.buf)]))
}

// chunkedReader returns its input together with io.EOF in a single Read.
type chunkedReader struct{ data []byte }

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.data)
	c.data = c.data[n:]
	if len(c.data) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func TestLineReaderDataWithEOF(t *testing.T) {
	r := &lineReader{in: &chunkedReader{data: []byte("ab")}, prompts: io.Discard}

	secret, err := r.ReadSecret("> ")
	require.NoError(t, err)
	assert.Equal(t, "ab", string(secret))

	_, err = r.ReadSecret("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestRunPrintsGoldenPassword(t *testing.T) {
	r := newScriptedReader("correct horse", "correct horse")
	var stdout, stderr bytes.Buffer

	err := run(defaultConfig(), r, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "K0iHjNGu;of/+H:3\n", stdout.String())
	assert.Contains(t, stderr.String(), "Strength: great (81%)")
	assert.NotContains(t, stderr.String(), "K0iHjNGu")
	assert.True(t, r.allWiped(), "secret entries must be wiped after run")
}

func TestRunEmptyDomain(t *testing.T) {
	config := defaultConfig()
	config.domain = ""
	config.year = "abc"
	config.lower, config.symbols = false, false

	var stdout bytes.Buffer
	err := run(config, newScriptedReader("hunter2", "hunter2"), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Z8VYVZMMYVHP\n", stdout.String())
}

func TestRunLogsWithoutSecrets(t *testing.T) {
	var logs bytes.Buffer
	require.NoError(t, configureLogging("INFO", &logs))
	t.Cleanup(func() { _ = configureLogging("WARN", io.Discard) })

	var stdout bytes.Buffer
	err := run(defaultConfig(), newScriptedReader("correct horse", "correct horse"), &stdout, io.Discard)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "Password derived")
	assert.Contains(t, out, "bbb09a2a084ea835")
	assert.NotContains(t, out, "correct horse")
	assert.NotContains(t, out, "K0iHjNGu")
	assert.NotContains(t, out, "example.com")
}

func TestParseCLIFlagsYearFollowsClock(t *testing.T) {
	useClock(t, fixedClock{time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC)})

	config, _, err := parseCLIFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "1999", config.year)
	assert.Empty(t, config.domain)
}

func TestRunHonoursOptions(t *testing.T) {
	config := defaultConfig()
	config.length = 20
	config.showStrength = false

	var stdout, stderr bytes.Buffer
	err := run(config, newScriptedReader("correct horse", "correct horse"), &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "qJ(=46XE3oI8O(U8}b9{\n", stdout.String())
	assert.NotContains(t, stderr.String(), "Strength")
}

func TestRunMismatchPrintsNothing(t *testing.T) {
	var stdout bytes.Buffer

	err := run(defaultConfig(), newScriptedReader("a", "b"), &stdout, io.Discard)
	assert.ErrorIs(t, err, ErrSecretMismatch)
	assert.Empty(t, stdout.String())
}

func TestRunRejectsBadBuildTuning(t *testing.T) {
	original := tuningSpec
	defer func() { tuningSpec = original }()

	tuningSpec = "1,2,3"
	err := run(defaultConfig(), newScriptedReader("x", "x"), io.Discard, io.Discard)
	assert.ErrorIs(t, err, derive.ErrInvalidTuning)
}

func TestLoadTuning(t *testing.T) {
	original := tuningSpec
	defer func() { tuningSpec = original }()

	tuningSpec = ""
	tuning, err := loadTuning()
	require.NoError(t, err)
	assert.Equal(t, derive.PinnedTuning(), tuning)

	tuningSpec = "1,2,3;4,5,6;7,8,9"
	tuning, err = loadTuning()
	require.NoError(t, err)
	assert.Equal(t, uint32(9), tuning.Year.Reverse)
	assert.NotEqual(t, derive.PinnedTuning().Fingerprint(), tuning.Fingerprint())
}

func TestCreateOptions(t *testing.T) {
	config := defaultConfig()
	config.length = 12
	config.digits = false
	config.wrapDivisor = true

	opts, err := createOptions(config)
	require.NoError(t, err)

	assert.Equal(t, 12, opts.FixedLength)
	assert.Equal(t, derive.Lower|derive.Upper|derive.Symbol, opts.Categories)
	assert.Equal(t, derive.DivisorWrap, opts.DivisorPolicy)
}

func TestConfigureLogging(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, configureLogging("ERROR", &buf))
	assert.Error(t, configureLogging("verbose", &buf))
	t.Cleanup(func() { _ = configureLogging("WARN", io.Discard) })
}

func TestPrintUsage(t *testing.T) {
	_, fs, err := parseCLIFlags(nil, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	printUsage(&out, fs)

	for _, want := range []string{"Usage:", "-domain", "-length", "-symbols", "Examples:"} {
		assert.Contains(t, out.String(), want)
	}
}
