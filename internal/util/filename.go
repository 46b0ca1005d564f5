package util

import (
	"regexp"
	"strings"
	"unicode"

	"local-file-manager/internal/model"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

var windowsReservedNames = map[string]struct{}{
	"CON":  {},
	"PRN":  {},
	"AUX":  {},
	"NUL":  {},
	"COM1": {},
	"COM2": {},
	"COM3": {},
	"COM4": {},
	"COM5": {},
	"COM6": {},
	"COM7": {},
	"COM8": {},
	"COM9": {},
	"LPT1": {},
	"LPT2": {},
	"LPT3": {},
	"LPT4": {},
	"LPT5": {},
	"LPT6": {},
	"LPT7": {},
	"LPT8": {},
	"LPT9": {},
}

// ValidateFileName checks a single path component. Names are rejected, never
// rewritten, so the caller always gets exactly the name it asked for.
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return model.InvalidName(name, "name cannot be empty")
	}

	if name == "." || name == ".." {
		return model.InvalidName(name, "name cannot be current or parent directory")
	}

	if match := invalidFilenameChars.FindString(name); match != "" {
		return model.InvalidName(name, "name contains invalid character "+match)
	}

	for _, char := range name {
		if unicode.IsControl(char) {
			return model.InvalidName(name, "name contains control characters")
		}
	}

	stem := name
	if idx := strings.Index(name, "."); idx >= 0 {
		stem = name[:idx]
	}

	if _, exists := windowsReservedNames[strings.ToUpper(stem)]; exists {
		return model.InvalidName(name, "reserved name "+strings.ToUpper(stem)+" is not allowed")
	}

	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return model.InvalidName(name, "name cannot end with a dot or a space")
	}

	return nil
}
