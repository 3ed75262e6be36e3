package gen

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"tickport/config"
	"tickport/core"
)

func TestGenerate(t *testing.T) {
	f, err := config.Parse([]byte(`
timer: TCD1
clksel: div64
tick_rate: 500Hz
cpu_clock: 16MHz
preemption: true
`))
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions
	opts.AllowPreemption = true
	src, err := Generate(f, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := string(src)
	t.Logf("Generated:\n%s", out)

	for _, want := range []string{
		"// Code generated by tickgen. DO NOT EDIT.",
		"//go:build avr && xmega",
		"package main",
		"Instance:    core.Instance{Port: 'D', Index: 1},",
		"ClockSelect: core.ClkDiv64,",
		"CPUClockHz:  16000000,",
		"Preemptive:  true,",
		"tickVector       = 83",
		"PER=32000 div64, TCD1_OVF_vect",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Generated source missing %q", want)
		}
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	f := config.Default()
	f.TickRate = "10Hz"

	src, err := Generate(f, DefaultOptions)
	if !errors.Is(err, core.ErrPeriodRange) {
		t.Errorf("Expected ErrPeriodRange, got %v", err)
	}
	if src != nil {
		t.Error("No source should be produced for a bad config")
	}
}

func TestGenerateRejectsPreemption(t *testing.T) {
	f := config.Default()
	f.Preemption = true

	src, err := Generate(f, DefaultOptions)
	if !errors.Is(err, ErrNoContextSwitch) {
		t.Errorf("Expected ErrNoContextSwitch, got %v", err)
	}
	if src != nil {
		t.Error("No source should be produced without context switch support")
	}
}

func TestClockSelectConst(t *testing.T) {
	if got := clockSelectConst(core.ClkDiv1024); got != "ClkDiv1024" {
		t.Errorf("Expected ClkDiv1024, got %s", got)
	}
}

func TestTargetDescription(t *testing.T) {
	data, err := os.ReadFile("../../targets/xmega/atxmega128a1.json")
	if err != nil {
		t.Fatal(err)
	}
	var target struct {
		Inherits     []string `json:"inherits"`
		CPU          string   `json:"cpu"`
		BuildTags    []string `json:"build-tags"`
		LinkerScript string   `json:"linkerscript"`
	}
	if err := json.Unmarshal(data, &target); err != nil {
		t.Fatalf("Bad target JSON: %v", err)
	}

	if len(target.Inherits) != 1 || target.Inherits[0] != "avr" {
		t.Errorf("Expected target to inherit avr, got %v", target.Inherits)
	}
	if _, ok := core.LookupDevice(target.CPU); !ok {
		t.Errorf("Target cpu %q is not in the device catalog", target.CPU)
	}
	// avr comes from the parent target
	for _, tag := range strings.Split(DefaultOptions.BuildTag, " && ") {
		if tag == "avr" {
			continue
		}
		found := false
		for _, bt := range target.BuildTags {
			found = found || bt == tag
		}
		if !found {
			t.Errorf("Target build tags %v miss %q", target.BuildTags, tag)
		}
	}
	if _, err := os.Stat("../../" + target.LinkerScript); err != nil {
		t.Errorf("Linker script: %v", err)
	}
}
