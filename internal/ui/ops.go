package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// BrowserEnv overrides the command used to open links
const BrowserEnv = "HNSEARCH_BROWSER"

var errNoProgram = errors.New("program not set")

// Ops are the side effects the UI triggers outside the terminal
type Ops interface {
	OpenURL(url string) error
	CopyToClipboard(text string) error
	ShowInPager(content string) error
}

// ExternalOps implements Ops with the system browser, the clipboard and
// the ov pager
type ExternalOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewExternalOps creates a new ExternalOps instance
func NewExternalOps() *ExternalOps {
	return &ExternalOps{}
}

// SetProgram sets the program reference for terminal management
func (o *ExternalOps) SetProgram(p *tea.Program) {
	o.program = p
}

// OpenURL hands url to the browser without waiting for it
func (o *ExternalOps) OpenURL(url string) error {
	name, args := browserCommand(runtime.GOOS, os.Getenv(BrowserEnv))
	cmd := exec.Command(name, append(args, url)...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func browserCommand(goos, override string) (string, []string) {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields[0], fields[1:]
	}
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// CopyToClipboard writes text to the system clipboard
func (o *ExternalOps) CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// ShowInPager shows content in the ov pager, handing it the terminal
func (o *ExternalOps) ShowInPager(content string) error {
	if o.program == nil {
		return errNoProgram
	}

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	return root.Run()
}
