// Package workload defines the named demo workloads the REPL spawns as
// futures. Each workload closes over the scheduler, so it can yield
// cooperatively while it works.
package workload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cooptask/cooptask/internal/compression"
	"github.com/cooptask/cooptask/internal/config"
	"github.com/cooptask/cooptask/pkg/sched"
	"github.com/cooptask/cooptask/pkg/sizeutil"
	"github.com/cooptask/cooptask/pkg/unsafeconv"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUnknownWorkload - no workload with the given name.
	ErrUnknownWorkload = errors.New("unknown workload")
	// ErrInvalidParams - the workload parameters fail validation.
	ErrInvalidParams = errors.New("invalid workload parameters")
	// ErrPayloadTooLarge - the input exceeds the configured payload limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)

const (
	defaultBcryptCost = 10
	defaultMaxPayload = 4 << 10
	defaultCodec      = compression.Zstd

	sumChunk = 100_000
)

// Kind - how a workload reports failure: a plain workload cannot fail,
// a fallible one settles its future with a result.
type Kind uint8

const (
	KindPlain Kind = iota
	KindTry
)

// Spec - a built workload, ready to wrap in a future. Exactly one of
// Plain and Try is set, according to Kind.
type Spec struct {
	Name  string
	Kind  Kind
	Plain func(args ...any) string
	Try   func(args ...any) (string, error)
}

// Registry - builds workloads with the configured knobs applied.
type Registry struct {
	bcryptCost int
	maxPayload int
	codec      compression.CompressionType
}

// NewRegistry - creates a registry from the workload config section;
// a nil section keeps the defaults.
func NewRegistry(cfg *config.WorkloadConfig) (*Registry, error) {
	r := &Registry{
		bcryptCost: defaultBcryptCost,
		maxPayload: defaultMaxPayload,
		codec:      defaultCodec,
	}
	if cfg == nil {
		return r, nil
	}

	if cfg.BcryptCost != 0 {
		if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidParams, cfg.BcryptCost)
		}
		r.bcryptCost = cfg.BcryptCost
	}

	if cfg.MaxPayload != "" {
		size, err := sizeutil.ParseSize(cfg.MaxPayload)
		if err != nil {
			return nil, fmt.Errorf("parse max payload: %w", err)
		}
		r.maxPayload = size
	}

	if cfg.Compression != "" {
		ct := compression.CompressionType(cfg.Compression)
		if _, err := compression.New(ct); err != nil {
			return nil, err
		}
		r.codec = ct
	}

	return r, nil
}

// Names - the known workload names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Usage - one-line usage text for a workload name, empty when unknown.
func (r *Registry) Usage(name string) string {
	return usages[name]
}

var usages = map[string]string{
	"sleep":    "sleep <ms> - cooperative sleep for the given milliseconds",
	"echo":     "echo <text...> - return the text immediately",
	"sum":      "sum <n> - sum 1..n, yielding between chunks",
	"bcrypt":   "bcrypt <password> - hash the password at the configured cost",
	"compress": "compress [codec] <text...> - compress the text, with the configured codec unless one is named",
	"fail":     "fail <message...> - settle with the given error",
	"panic":    "panic <message...> - panic with the given message",
}

// Build - validates params and builds the named workload on the given
// scheduler.
func (r *Registry) Build(s *sched.Scheduler, name string, params []string) (Spec, error) {
	switch name {
	case "sleep":
		return r.buildSleep(s, params)
	case "echo":
		return r.buildEcho(params)
	case "sum":
		return r.buildSum(s, params)
	case "bcrypt":
		return r.buildBcrypt(s, params)
	case "compress":
		return r.buildCompress(s, params)
	case "fail":
		return r.buildFail(params)
	case "panic":
		return r.buildPanic(params)
	}

	return Spec{}, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
}

func (r *Registry) buildSleep(s *sched.Scheduler, params []string) (Spec, error) {
	if len(params) != 1 {
		return Spec{}, fmt.Errorf("%w: sleep needs a duration in ms", ErrInvalidParams)
	}

	ms, err := strconv.Atoi(params[0])
	if err != nil || ms < 0 {
		return Spec{}, fmt.Errorf("%w: bad duration %q", ErrInvalidParams, params[0])
	}
	d := time.Duration(ms) * time.Millisecond

	return Spec{
		Name: "sleep",
		Kind: KindPlain,
		Plain: func(...any) string {
			s.Sleep(d)
			return fmt.Sprintf("slept %s", d)
		},
	}, nil
}

func (r *Registry) buildEcho(params []string) (Spec, error) {
	if len(params) == 0 {
		return Spec{}, fmt.Errorf("%w: echo needs text", ErrInvalidParams)
	}
	text := strings.Join(params, " ")

	return Spec{
		Name:  "echo",
		Kind:  KindPlain,
		Plain: func(...any) string { return text },
	}, nil
}

func (r *Registry) buildSum(s *sched.Scheduler, params []string) (Spec, error) {
	if len(params) != 1 {
		return Spec{}, fmt.Errorf("%w: sum needs an upper bound", ErrInvalidParams)
	}

	n, err := strconv.Atoi(params[0])
	if err != nil || n < 0 {
		return Spec{}, fmt.Errorf("%w: bad upper bound %q", ErrInvalidParams, params[0])
	}
	limit := unsafeconv.UnsafeIntToInt64(n)

	return Spec{
		Name: "sum",
		Kind: KindPlain,
		Plain: func(...any) string {
			var total int64
			for i := int64(1); i <= limit; i++ {
				total += i
				if i%sumChunk == 0 {
					s.Sleep(0)
				}
			}
			return fmt.Sprintf("sum(1..%d) = %d", n, total)
		},
	}, nil
}

func (r *Registry) buildBcrypt(s *sched.Scheduler, params []string) (Spec, error) {
	if len(params) != 1 {
		return Spec{}, fmt.Errorf("%w: bcrypt needs a password", ErrInvalidParams)
	}
	password := params[0]
	cost := r.bcryptCost

	return Spec{
		Name: "bcrypt",
		Kind: KindTry,
		Try: func(...any) (string, error) {
			// Yield once so a poll can observe the pending hash.
			s.Sleep(0)

			hash, err := bcrypt.GenerateFromPassword(unsafeconv.UnsafeStringToBytes(password), cost)
			if err != nil {
				return "", fmt.Errorf("bcrypt: %w", err)
			}
			return string(hash), nil
		},
	}, nil
}

func (r *Registry) buildCompress(s *sched.Scheduler, params []string) (Spec, error) {
	if len(params) == 0 {
		return Spec{}, fmt.Errorf("%w: compress needs text", ErrInvalidParams)
	}

	ct := r.codec
	if len(params) > 1 && knownCodec(params[0]) {
		ct = compression.CompressionType(params[0])
		params = params[1:]
	}

	codec, err := compression.New(ct)
	if err != nil {
		return Spec{}, err
	}

	text := strings.Join(params, " ")
	if len(text) > r.maxPayload {
		return Spec{}, fmt.Errorf("%w: %d bytes over the %d byte limit", ErrPayloadTooLarge, len(text), r.maxPayload)
	}

	return Spec{
		Name: "compress",
		Kind: KindTry,
		Try: func(...any) (string, error) {
			s.Sleep(0)

			compressed, err := codec.Compress([]byte(text))
			if err != nil {
				return "", fmt.Errorf("compress: %w", err)
			}

			ratio := 100 * float64(len(compressed)) / float64(len(text))
			return fmt.Sprintf("%s: %dB -> %dB (%.1f%%) %s",
				ct, len(text), len(compressed), ratio,
				base64.StdEncoding.EncodeToString(compressed)), nil
		},
	}, nil
}

func knownCodec(name string) bool {
	for _, ct := range compression.Types() {
		if string(ct) == name {
			return true
		}
	}

	return false
}

func (r *Registry) buildFail(params []string) (Spec, error) {
	if len(params) == 0 {
		return Spec{}, fmt.Errorf("%w: fail needs a message", ErrInvalidParams)
	}
	msg := strings.Join(params, " ")

	return Spec{
		Name: "fail",
		Kind: KindTry,
		Try: func(...any) (string, error) {
			return "", errors.New(msg)
		},
	}, nil
}

func (r *Registry) buildPanic(params []string) (Spec, error) {
	if len(params) == 0 {
		return Spec{}, fmt.Errorf("%w: panic needs a message", ErrInvalidParams)
	}
	msg := strings.Join(params, " ")

	return Spec{
		Name: "panic",
		Kind: KindTry,
		Try: func(...any) (string, error) {
			panic(msg)
		},
	}, nil
}
