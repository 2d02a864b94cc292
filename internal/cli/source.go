package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

// readTemplateInteractive collects a multi-line template from the terminal.
// Entry ends at the first blank line.
func readTemplateInteractive(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Enter your prompt template (finish with a blank line):")

	var lines []string
	for {
		line, err := readPromptLine(in)
		if err != nil {
			if err == io.EOF && len(lines) > 0 {
				break
			}
			return "", fmt.Errorf("reading template: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("no template entered")
	}
	return strings.Join(lines, "\n"), nil
}

// loadVarsFile reads a JSON variable mapping. A missing file is not an
// error; malformed JSON warns and yields an empty map so the loop can
// solicit values interactively instead of dying.
func loadVarsFile(errOut io.Writer, path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	vars := make(map[string]string)
	if err := json.Unmarshal(data, &vars); err != nil {
		fmt.Fprintf(errOut, "Warning: %s is not valid JSON (%v); ignoring it\n", path, err)
		return map[string]string{}
	}
	return vars
}

// offerSave asks whether to write the final template and variables to disk.
// Empty filenames skip the corresponding write.
func offerSave(in io.Reader, out io.Writer, tmpl string, vars map[string]string) error {
	if !promptYesNoIO(in, out, "Save the final template? (y/n): ") {
		return nil
	}

	fmt.Fprint(out, "Template file [tuned-prompt.txt]: ")
	path, err := readPromptLine(in)
	if err != nil && err != io.EOF {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = "tuned-prompt.txt"
	}
	if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	fmt.Fprintf(out, "Saved template to %s\n", path)

	if len(vars) == 0 {
		return nil
	}

	fmt.Fprint(out, "Variables file (blank to skip): ")
	varsPath, err := readPromptLine(in)
	if err != nil && err != io.EOF {
		return err
	}
	varsPath = strings.TrimSpace(varsPath)
	if varsPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding variables: %w", err)
	}
	if err := os.WriteFile(varsPath, data, 0o644); err != nil {
		return fmt.Errorf("writing variables: %w", err)
	}
	fmt.Fprintf(out, "Saved variables to %s\n", varsPath)
	return nil
}
