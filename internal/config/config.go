// Package config reads bwell-logkit settings from BWELL_-prefixed
// environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/demengc/bwell-logkit/internal"
)

// EnvPrefix namespaces every variable read by Load
const EnvPrefix = "BWELL_"

// Conf is a namespaced view over environment variables
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	if v == "" {
		return def
	}
	return v
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	internal.LogWarn("Invalid int for %s=%q; using default %d", c.key(key), s, def)
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	internal.LogWarn("Invalid bool for %s=%q; using default %t", c.key(key), s, def)
	return def
}

// Options are the CLI defaults
type Options struct {
	LogLevel     string `validate:"oneof=debug info warn error"`
	Encoding     string `validate:"required,encoding"`
	Workers      int    `validate:"min=1,max=256"`
	Pattern      string `validate:"required,glob"`
	ExportFormat string `validate:"oneof=json jsonl yaml yml md markdown csv sqlite"`
	OutDir       string
	CacheDir     string
	SkipErrors   bool
}

// Defaults returns the built-in options
func Defaults() Options {
	return Options{
		LogLevel:     "info",
		Encoding:     internal.DefaultEncoding,
		Workers:      runtime.NumCPU(),
		Pattern:      internal.DefaultPattern,
		ExportFormat: "json",
		OutDir:       ".",
		SkipErrors:   true,
	}
}

// Load reads Options from the environment over Defaults and validates them
func Load() (Options, error) {
	return FromConf(New().Prefix(EnvPrefix))
}

// FromConf reads Options from c over Defaults and validates them
func FromConf(c Conf) (Options, error) {
	def := Defaults()
	opts := Options{
		LogLevel:     strings.ToLower(c.MayString("LOG_LEVEL", def.LogLevel)),
		Encoding:     c.MayString("ENCODING", def.Encoding),
		Workers:      c.MayInt("WORKERS", def.Workers),
		Pattern:      c.MayString("PATTERN", def.Pattern),
		ExportFormat: strings.ToLower(c.MayString("EXPORT_FORMAT", def.ExportFormat)),
		OutDir:       c.MayString("OUT_DIR", def.OutDir),
		CacheDir:     c.MayString("CACHE_DIR", def.CacheDir),
		SkipErrors:   c.MayBool("SKIP_ERRORS", def.SkipErrors),
	}
	if err := opts.Validate(); err != nil {
		return def, err
	}
	return opts, nil
}

// Validate checks field constraints and reports the first violation
func (o Options) Validate() error {
	v, trans := newValidator()
	err := v.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config %s: %s", fe.Field(), fe.Translate(trans))
	}
	return fmt.Errorf("invalid config: %w", err)
}

// newValidator builds a validator with english messages and the
// encoding and glob tags
func newValidator() (*validator.Validate, ut.Translator) {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, err := htmlindex.Get(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		_, err := filepath.Match(fl.Field().String(), "")
		return err == nil
	})
	registerMessage(v, trans, "encoding", "{0} must name a known text encoding")
	registerMessage(v, trans, "glob", "{0} must be a valid glob pattern")

	return v, trans
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, text, true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}
