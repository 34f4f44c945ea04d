package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/go-rod/rod/lib/launcher"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Browser  chromeInfo `json:"browser"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	BrowserBin string `json:"rod_browser_bin,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor collects environment diagnostics for PDF rendering.
func runDoctor(env *Environment) doctorResult {
	result := doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Container:  inContainer(),
			CI:         env.Getenv("CI") == "true",
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	if bin := result.Env.BrowserBin; bin != "" {
		result.Browser.Found = fileExists(bin)
		result.Browser.Path = bin
		if !result.Browser.Found {
			result.Errors = append(result.Errors, fmt.Sprintf("ROD_BROWSER_BIN points at missing file: %s", bin))
		}
	} else if path, found := launcher.LookPath(); found {
		result.Browser.Found = true
		result.Browser.Path = path
	} else {
		result.Warnings = append(result.Warnings,
			"no Chrome/Chromium found; rod will download a managed Chromium on first render")
	}

	result.System.TempWritable = tempWritable()
	if !result.System.TempWritable {
		result.Errors = append(result.Errors, "temp directory is not writable")
	}

	switch {
	case len(result.Errors) > 0:
		result.Status = "errors"
	case len(result.Warnings) > 0:
		result.Status = "warnings"
	default:
		result.Status = "ready"
	}
	return result
}

// inContainer detects common container markers.
func inContainer() bool {
	if fileExists("/.dockerenv") || fileExists("/run/.containerenv") {
		return true
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func tempWritable() bool {
	f, err := os.CreateTemp("", "site2pdf-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult renders the human-readable report.
func printDoctorResult(w io.Writer, result doctorResult) {
	fmt.Fprintf(w, "Status: %s\n\n", result.Status)

	if result.Browser.Found {
		fmt.Fprintf(w, "Browser: %s\n", result.Browser.Path)
	} else {
		fmt.Fprintln(w, "Browser: not found (managed Chromium will be downloaded)")
	}

	fmt.Fprintf(w, "OS/Arch: %s/%s\n", result.Env.OS, result.Env.Arch)
	fmt.Fprintf(w, "Container: %v  CI: %v\n", result.Env.Container, result.Env.CI)
	fmt.Fprintf(w, "Temp writable: %v\n", result.System.TempWritable)

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warning)
	}
	for _, derr := range result.Errors {
		fmt.Fprintf(w, "ERROR: %s\n", derr)
	}
}
