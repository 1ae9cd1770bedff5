package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TempFileBase is the fixed base name of the round-trip file in os.TempDir.
const TempFileBase = "journalctl"

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// TempPath returns the round-trip file path for the given extension. An
// empty extension yields the bare base name.
func TempPath(ext string) string {
	name := TempFileBase
	if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext != "" {
		name += "." + ext
	}
	return filepath.Join(os.TempDir(), name)
}

// Session is one external editor round-trip: a temp file holding the content
// and the command that edits it. Callers must call Cleanup once the editor
// has exited, whatever the outcome.
type Session struct {
	Path string
	Cmd  *exec.Cmd
}

// Prepare writes content to the temp file, replacing any leftover from an
// earlier run, and builds the editor command. The command's stdio is left
// unset so the caller can attach it (directly or through a TUI).
func Prepare(editorCmd, content, ext string) (*Session, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}

	path := TempPath(ext)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing stale temp file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	cmdArgs := append(parts[1:], path)
	return &Session{
		Path: path,
		Cmd:  exec.Command(parts[0], cmdArgs...),
	}, nil
}

// Read returns the file content after the editor exited. ok is false when
// the editor removed the file.
func (s *Session) Read() (content string, ok bool, err error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	return string(data), true, nil
}

// Cleanup removes the temp file.
func (s *Session) Cleanup() {
	os.Remove(s.Path)
}

// Edit opens the given content in an editor attached to the terminal and
// returns the edited content. changed is false when the file was removed or
// saved unchanged.
func Edit(editorCmd, initialContent, ext string) (content string, changed bool, err error) {
	sess, err := Prepare(editorCmd, initialContent, ext)
	if err != nil {
		return "", false, err
	}
	defer sess.Cleanup()

	sess.Cmd.Stdin = os.Stdin
	sess.Cmd.Stdout = os.Stdout
	sess.Cmd.Stderr = os.Stderr

	if err := sess.Cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	result, ok, err := sess.Read()
	if err != nil {
		return "", false, err
	}
	if !ok || result == initialContent {
		return initialContent, false, nil
	}
	return result, true, nil
}
