// Package remediation synthesizes PowerShell remediation commands from
// the registry fields of a finding, and derives the human-readable and
// regedit-addressable forms of the same registry path.
package remediation

import (
	"fmt"
	"strings"

	"github.com/hkporter/hkporter/internal/hardening"
)

// MissingValuePlaceholder is rendered into the -Value clause when the
// template never supplied a recommended value. The clause must still be
// present so the command stays syntactically complete.
const MissingValuePlaceholder = "<not set>"

var rootShortForms = strings.NewReplacer(
	"HKEY_LOCAL_MACHINE", "HKLM:",
	"HKEY_CURRENT_USER", "HKCU:",
)

// Command builds the remediation command for a finding, or "" when the
// finding has no registry path or item to act on.
//
// The root key keeps its PowerShell drive colon (HKLM:, HKCU:): the
// generated command is the machine-executable form. Display surfaces
// strip the colon separately via DisplayPath. Double quotes are removed
// from the value so the generated quoting cannot be broken from inside.
func Command(f hardening.Finding) string {
	if f.RegistryPath == nil || f.RegistryItem == nil {
		return ""
	}

	path := rootShortForms.Replace(*f.RegistryPath)

	value := MissingValuePlaceholder
	if f.RecommendedValue != nil {
		value = strings.ReplaceAll(*f.RecommendedValue, `"`, "")
	}

	return fmt.Sprintf(`Set-ItemProperty -Path "%s" -Name "%s" -Value "%s" -Force`, path, *f.RegistryItem, value)
}

// DisplayPath is the human-readable registry path: short root keys
// without the PowerShell drive colon.
func DisplayPath(path string) string {
	path = rootShortForms.Replace(path)
	path = strings.ReplaceAll(path, "HKLM:", "HKLM")
	path = strings.ReplaceAll(path, "HKCU:", "HKCU")
	return path
}

// RegeditPath expands a display path into the Computer\HKEY_... long
// form the Registry Editor address bar accepts.
func RegeditPath(path string) string {
	path = DisplayPath(path)
	for short, long := range map[string]string{
		"HKLM": `Computer\HKEY_LOCAL_MACHINE`,
		"HKCU": `Computer\HKEY_CURRENT_USER`,
		"HKCR": `Computer\HKEY_CLASSES_ROOT`,
		"HKU":  `Computer\HKEY_USERS`,
	} {
		if strings.HasPrefix(path, short) {
			return long + strings.TrimPrefix(path, short)
		}
	}
	return path
}

// ParsedCommand is a remediation command split back into its parts.
type ParsedCommand struct {
	Path  string
	Item  string
	Value string
}

// ParseCommand recovers the path, item, and value written into a
// command produced by Command. The value round-trips exactly: quotes
// were stripped before writing, so the quoted clause is unambiguous.
func ParseCommand(command string) (ParsedCommand, error) {
	var parsed ParsedCommand
	for flag, dst := range map[string]*string{
		"-Path":  &parsed.Path,
		"-Name":  &parsed.Item,
		"-Value": &parsed.Value,
	} {
		v, err := quotedArg(command, flag)
		if err != nil {
			return ParsedCommand{}, err
		}
		*dst = v
	}
	return parsed, nil
}

func quotedArg(command, flag string) (string, error) {
	marker := flag + ` "`
	start := strings.Index(command, marker)
	if start < 0 {
		return "", fmt.Errorf("command has no %s argument", flag)
	}
	rest := command[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", fmt.Errorf("unterminated %s argument", flag)
	}
	return rest[:end], nil
}
