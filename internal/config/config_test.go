package config

import (
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := cfg.App
	if a.Width != 0 || a.Height != 0 || a.ShowFooter || a.LayoutPath != "" || a.Watch != 0 {
		t.Fatalf("unexpected defaults %+v", a)
	}
	if !a.Animate || a.Animation != 120*time.Millisecond || a.Step != 2 || a.Border != 1 {
		t.Fatalf("unexpected defaults %+v", a)
	}
	if cfg.Logging.Trace || cfg.Logging.FilePath != "" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"VWM_WIDTH=100",
		"VWM_HEIGHT=40",
		"VWM_LAYOUT=/tmp/env.yaml",
		"VWM_WATCH=750",
		"VWM_ANIMATE=false",
		"VWM_TRACE=1",
		"VWM_LOG_FILE=/tmp/vwm.log",
		"malformed",
	}
	cfg, err := LoadArgs([]string{"-width", "90", "-layout", "/tmp/flag.yaml", "-step", "4"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := cfg.App
	if a.Width != 90 || a.Height != 40 {
		t.Fatalf("expected width from flag and height from env, got %dx%d", a.Width, a.Height)
	}
	if a.LayoutPath != "/tmp/flag.yaml" {
		t.Fatalf("expected layout from flag, got %q", a.LayoutPath)
	}
	if a.Watch != 750*time.Millisecond {
		t.Fatalf("expected bare milliseconds from env, got %s", a.Watch)
	}
	if a.Animate || a.Step != 4 {
		t.Fatalf("unexpected animate/step %v/%d", a.Animate, a.Step)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/vwm.log" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Flags["width"] != "90" || cfg.Flags["watch"] != "750ms" {
		t.Fatalf("unexpected flags map %v", cfg.Flags)
	}
	if len(cfg.Args) != 6 {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsDurationFlag(t *testing.T) {
	cfg, err := LoadArgs([]string{"-layout", "desk.yaml", "-watch", "2s", "-animation-ms", "-1"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Watch != 2*time.Second {
		t.Fatalf("expected 2s, got %s", cfg.App.Watch)
	}
	if cfg.App.Animation >= 0 {
		t.Fatalf("expected negative animation to disable, got %s", cfg.App.Animation)
	}
}

func TestInvalidEnvironmentFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"VWM_WIDTH=wide", "VWM_ANIMATE=maybe", "VWM_WATCH=soon"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Width != 0 || !cfg.App.Animate || cfg.App.Watch != 0 {
		t.Fatalf("expected defaults for unparsable values, got %+v", cfg.App)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	_, err := LoadArgs([]string{"-width", "-1", "-height", "-2", "-step", "0", "-watch", "1s"}, nil)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("expected a multierror, got %T", err)
	}
	if len(merr.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(merr.Errors), err)
	}
	if !strings.Contains(err.Error(), "watch requires a layout file") {
		t.Fatalf("expected watch error, got %v", err)
	}
}

func TestUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
}
