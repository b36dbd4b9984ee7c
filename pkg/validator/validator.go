package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	maxTeamNameLen    = 255
	maxUsernameLen    = 255
	maxFileNameLen    = 255
	maxAPIKeyNameLen  = 255
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errTeamNameEmptyFmt        = "team name cannot be empty"
	errTeamNameMaxLengthFmt    = "team name must not exceed %d characters"
	errUsernameEmptyFmt        = "username cannot be empty"
	errUsernameMaxLengthFmt    = "username must not exceed %d characters"
	errUsernameControlFmt      = "username cannot contain control characters"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errAPIKeyNameEmptyFmt      = "API key name cannot be empty"
	errAPIKeyNameMaxLengthFmt  = "API key name must not exceed %d characters"
	errAPIKeyNameControlFmt    = "API key name cannot contain control characters"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func TeamName(name string) error {
	if name == "" {
		return fmt.Errorf(errTeamNameEmptyFmt)
	}

	if len(name) > maxTeamNameLen {
		return fmt.Errorf(errTeamNameMaxLengthFmt, maxTeamNameLen)
	}

	return nil
}

func Username(name string) error {
	if name == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(name) > maxUsernameLen {
		return fmt.Errorf(errUsernameMaxLengthFmt, maxUsernameLen)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errUsernameControlFmt)
		}
	}

	return nil
}

// FileName rejects names that could escape the object key layout. Uploaded
// filenames are embedded verbatim in object keys, so a path separator here
// would place the blob outside its team prefix.
func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}

	return nil
}

func APIKeyName(name string) error {
	if name == "" {
		return fmt.Errorf(errAPIKeyNameEmptyFmt)
	}

	if len(name) > maxAPIKeyNameLen {
		return fmt.Errorf(errAPIKeyNameMaxLengthFmt, maxAPIKeyNameLen)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errAPIKeyNameControlFmt)
		}
	}

	return nil
}
