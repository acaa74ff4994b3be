package main

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/opd-ai/detpass/crypto"
)

var (
	// ErrSecretMismatch indicates the two secret entries differ
	ErrSecretMismatch = errors.New("master secrets differ")

	// ErrEmptySecret indicates no secret was entered
	ErrEmptySecret = errors.New("master secret is empty")
)

// SecretReader reads one secret entry after showing a prompt.
type SecretReader interface {
	ReadSecret(prompt string) ([]byte, error)
}

// newSecretReader reads without echo when in is a terminal and falls back to
// reading lines otherwise.
func newSecretReader(in *os.File, prompts io.Writer) SecretReader {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		return &terminalReader{fd: fd, prompts: prompts}
	}
	return &lineReader{in: in, prompts: prompts}
}

// terminalReader reads secrets from a terminal with echo disabled.
type terminalReader struct {
	fd      int
	prompts io.Writer
}

func (r *terminalReader) ReadSecret(prompt string) ([]byte, error) {
	fmt.Fprint(r.prompts, prompt)
	secret, err := term.ReadPassword(r.fd)
	fmt.Fprintln(r.prompts)
	if err != nil {
		crypto.ZeroBytes(secret)
		return nil, fmt.Errorf("read secret: %w", err)
	}
	return secret, nil
}

// lineReader reads secrets one line at a time, for piped input. It reads
// one byte per call so no copy of the secret is left in a read-ahead buffer,
// and it zeroes its own storage before each ReadSecret returns.
type lineReader struct {
	in      io.Reader
	prompts io.Writer
	buf     []byte
	one     [1]byte
}

func (r *lineReader) ReadSecret(prompt string) ([]byte, error) {
	fmt.Fprint(r.prompts, prompt)
	defer r.wipe()

	r.buf = r.buf[:0]
	for {
		n, err := r.in.Read(r.one[:])
		if n == 1 {
			if r.one[0] == '\n' {
				break
			}
			r.appendByte(r.one[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(r.buf) > 0 {
				break
			}
			return nil, fmt.Errorf("read secret: %w", err)
		}
	}

	line := bytes.TrimRight(r.buf, "\r")
	secret := make([]byte, len(line))
	copy(secret, line)
	return secret, nil
}

// appendByte appends b to buf, wiping the old backing array when it grows.
func (r *lineReader) appendByte(b byte) {
	if len(r.buf) == cap(r.buf) {
		grown := make([]byte, len(r.buf), 2*cap(r.buf)+64)
		copy(grown, r.buf)
		crypto.ZeroBytes(r.buf[:cap(r.buf)])
		r.buf = grown
	}
	r.buf = append(r.buf, b)
}

// wipe zeroes every byte the reader has held.
func (r *lineReader) wipe() {
	crypto.ZeroBytes(r.buf[:cap(r.buf)])
	r.buf = r.buf[:0]
	r.one[0] = 0
}

// readConfirmedSecret reads the master secret twice and returns it only when
// both entries are identical. The confirmation entry is always wiped, and
// the first entry is wiped on every error path.
func readConfirmedSecret(r SecretReader, status io.Writer) ([]byte, error) {
	first, err := r.ReadSecret("Master password: ")
	if err != nil {
		return nil, err
	}

	second, err := r.ReadSecret("Re-enter password: ")
	if err != nil {
		crypto.ZeroBytes(first)
		return nil, err
	}
	defer crypto.ZeroBytes(second)

	if len(first) == 0 {
		return nil, ErrEmptySecret
	}

	if subtle.ConstantTimeCompare(first, second) != 1 {
		crypto.ZeroBytes(first)
		fmt.Fprintln(status, "Passwords differ")
		return nil, ErrSecretMismatch
	}

	fmt.Fprintln(status, "Passwords match")
	return first, nil
}
