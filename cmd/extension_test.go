package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if testing.Short() {
		t.Skip("builds binaries")
	}
	tempDir := t.TempDir()

	helloSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvEODHDAPIKey, EnvEODHDAPIKey, EnvVerbose, EnvVerbose)

	helloPath := filepath.Join(tempDir, ExtensionPrefix+"hello")
	srcFile := helloPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloSource), 0644); err != nil {
		t.Fatalf("Failed to write %s source: %v", helloPath, err)
	}
	build := exec.Command("go", "build", "-o", helloPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile %s: %v", helloPath, err)
	}

	binaryPath := filepath.Join(tempDir, "stockdata")
	build = exec.Command("go", "build", "-o", binaryPath, "../stockdata")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile stockdata binary: %v", err)
	}

	run := exec.Command(binaryPath, "-eodhd-api-key", "s3cret", "-v", "hello", "a", "b")
	run.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}
	var stdout, stderr bytes.Buffer
	run.Stdout = &stdout
	run.Stderr = &stderr
	if err := run.Run(); err != nil {
		t.Fatalf("stockdata hello failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvEODHDAPIKey + "=s3cret",
		EnvVerbose + "=true",
		"args=[a b]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("does-not-exist", nil)
	if found || code != 0 {
		t.Errorf("RunExtension() = %v, %d, want false, 0", found, code)
	}
}
