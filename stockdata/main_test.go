package main

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	t.Chdir(t.TempDir())
	// a directory cannot be read as a .env file.
	if err := os.Mkdir(".env", 0755); err != nil {
		t.Fatal(err)
	}

	var quiet bytes.Buffer
	setup(false, &quiet)
	if quiet.Len() != 0 {
		t.Errorf("setup(false) logged %q, want nothing", quiet.String())
	}

	var verbose bytes.Buffer
	setup(true, &verbose)
	if !strings.Contains(verbose.String(), "cannot load .env") {
		t.Errorf("setup(true) logged %q, want the .env error", verbose.String())
	}
}

func TestSetup_LoadsEnv(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	t.Chdir(t.TempDir())
	t.Setenv("STOCKDATA_SETUP_TEST", "")
	os.Unsetenv("STOCKDATA_SETUP_TEST")
	if err := os.WriteFile(".env", []byte("STOCKDATA_SETUP_TEST=loaded\n"), 0644); err != nil {
		t.Fatal(err)
	}
	setup(false, os.Stderr)
	if got := os.Getenv("STOCKDATA_SETUP_TEST"); got != "loaded" {
		t.Errorf("STOCKDATA_SETUP_TEST = %q, want %q", got, "loaded")
	}
}
