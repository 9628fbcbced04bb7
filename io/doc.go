// Package io frames the μISA artifacts exchanged between the tools:
// raw binary programs, and CSV memory dumps.
package io
