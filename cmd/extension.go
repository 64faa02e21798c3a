package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvVerbose = "STOCKDATA_VERBOSE"
)

// ExtensionPrefix prefixes the name of external subcommand binaries.
const ExtensionPrefix = "stockdata-"

// RunExtension attempts to find and execute an external stockdata-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// Global flags are passed to the extension as environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	if key := eodhdAPIKey(); key != "" {
		cmd.Env = append(cmd.Env, EnvEODHDAPIKey+"="+key)
	}

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
