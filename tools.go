//go:build tools
// +build tools

// Package tools tracks the mock generator used by go generate.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
