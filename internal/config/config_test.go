package config

import (
	"strings"
	"testing"
)

func TestPrefixAndKey(t *testing.T) {
	c := New().Prefix(EnvPrefix)
	if got := c.key("WORKERS"); got != "BWELL_WORKERS" {
		t.Fatalf("key() = %q, want %q", got, "BWELL_WORKERS")
	}
	if got := c.Prefix("EXPORT_").key("FORMAT"); got != "BWELL_EXPORT_FORMAT" {
		t.Fatalf("nested key() = %q, want %q", got, "BWELL_EXPORT_FORMAT")
	}
}

func TestMayString(t *testing.T) {
	c := New().Prefix("T_")
	t.Setenv("T_NAME", "  session ")
	if got := c.MayString("NAME", "def"); got != "session" {
		t.Errorf("MayString = %q, want %q", got, "session")
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Errorf("MayString missing = %q, want def", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("T_")
	t.Setenv("T_N", " 8 ")
	t.Setenv("T_BAD", "eight")
	if got := c.MayInt("N", 1); got != 8 {
		t.Errorf("MayInt = %d, want 8", got)
	}
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Errorf("MayInt invalid = %d, want default 3", got)
	}
	if got := c.MayInt("MISSING", 5); got != 5 {
		t.Errorf("MayInt missing = %d, want default 5", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("T_")
	t.Setenv("T_ON", "false")
	t.Setenv("T_BAD", "nope")
	if got := c.MayBool("ON", true); got {
		t.Error("MayBool = true, want false")
	}
	if got := c.MayBool("BAD", true); !got {
		t.Error("MayBool invalid should return default true")
	}
}

func TestLoad_Defaults(t *testing.T) {
	opts, err := FromConf(New().Prefix("BWELL_TEST_UNSET_"))
	if err != nil {
		t.Fatalf("FromConf() error = %v", err)
	}
	def := Defaults()
	if opts != def {
		t.Errorf("FromConf() = %+v, want %+v", opts, def)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BWELL_LOG_LEVEL", "DEBUG")
	t.Setenv("BWELL_ENCODING", "latin1")
	t.Setenv("BWELL_WORKERS", "4")
	t.Setenv("BWELL_PATTERN", "log_*.json")
	t.Setenv("BWELL_EXPORT_FORMAT", "CSV")
	t.Setenv("BWELL_OUT_DIR", "/tmp/out")
	t.Setenv("BWELL_CACHE_DIR", "/tmp/cache")
	t.Setenv("BWELL_SKIP_ERRORS", "0")

	opts, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Options{
		LogLevel:     "debug",
		Encoding:     "latin1",
		Workers:      4,
		Pattern:      "log_*.json",
		ExportFormat: "csv",
		OutDir:       "/tmp/out",
		CacheDir:     "/tmp/cache",
		SkipErrors:   false,
	}
	if opts != want {
		t.Errorf("Load() = %+v, want %+v", opts, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "bad level", mutate: func(o *Options) { o.LogLevel = "loud" }, wantErr: "LogLevel"},
		{name: "bad encoding", mutate: func(o *Options) { o.Encoding = "klingon" }, wantErr: "known text encoding"},
		{name: "zero workers", mutate: func(o *Options) { o.Workers = 0 }, wantErr: "Workers"},
		{name: "bad pattern", mutate: func(o *Options) { o.Pattern = "[" }, wantErr: "valid glob pattern"},
		{name: "bad format", mutate: func(o *Options) { o.ExportFormat = "xml" }, wantErr: "ExportFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Defaults()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidFallsBackToDefaults(t *testing.T) {
	t.Setenv("BWELL_EXPORT_FORMAT", "xml")
	opts, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
	if opts.ExportFormat != Defaults().ExportFormat {
		t.Errorf("ExportFormat = %q, want default", opts.ExportFormat)
	}
}
