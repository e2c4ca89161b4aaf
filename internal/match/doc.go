// Package match suggests the closest known name for a misspelled directive or
// field, e.g. "did you mean \"suppress_default\"?".
package match
