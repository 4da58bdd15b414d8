// Package mcp serves the seroost index to Model Context Protocol clients
// over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

// MCP error codes. The -320xx range is reserved for the application.
const (
	// ErrCodeIndexNotFound indicates there is no usable index.
	ErrCodeIndexNotFound = -32001

	// ErrCodeTimeout indicates the request timed out or was cancelled.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError is a tool error with a protocol code.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts an internal error to an MCPError.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var me *MCPError
	if errors.As(err, &me) {
		return me
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	}

	var se *serrors.SeroostError
	if !errors.As(err, &se) {
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}

	msg := se.Message
	if se.Suggestion != "" {
		msg = fmt.Sprintf("%s %s", se.Message, se.Suggestion)
	}

	switch se.Code {
	case serrors.ErrCodeIndexNotFound:
		return &MCPError{Code: ErrCodeIndexNotFound, Message: "index file not found. Please run index first."}
	case serrors.ErrCodeCorruptIndex:
		return &MCPError{Code: ErrCodeIndexNotFound, Message: msg}
	}

	if se.Category == serrors.CategoryValidation {
		return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
	}
	return &MCPError{Code: ErrCodeInternalError, Message: msg}
}

// NewInvalidParamsError creates an error for invalid tool arguments.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}
