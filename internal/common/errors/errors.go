// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Accounts and sessions
	ErrCodeEmailAlreadyRegistered ErrorCode = "EMAIL_ALREADY_REGISTERED"
	ErrCodeInvalidCredentials     ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTokenInvalid           ErrorCode = "TOKEN_INVALID"

	// Journey state
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeOnboardingRequired ErrorCode = "ONBOARDING_REQUIRED"
	ErrCodeUniversityNotFound ErrorCode = "UNIVERSITY_NOT_FOUND"
	ErrCodeAlreadyShortlisted ErrorCode = "ALREADY_SHORTLISTED"
	ErrCodeNotShortlisted     ErrorCode = "NOT_SHORTLISTED"
	ErrCodeAlreadyLocked      ErrorCode = "ALREADY_LOCKED"
	ErrCodeNotLocked          ErrorCode = "NOT_LOCKED"
	ErrCodeTodoNotFound       ErrorCode = "TODO_NOT_FOUND"
	ErrCodeUnsupportedAction  ErrorCode = "UNSUPPORTED_ACTION"

	// Storage
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	// Catalog search
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"

	// Generative AI
	ErrCodeLLMRateLimited      ErrorCode = "LLM_RATE_LIMITED"
	ErrCodeLLMGenerationFailed ErrorCode = "LLM_GENERATION_FAILED"
	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"

	// Workflow engine
	ErrCodeWorkflowEngineUnavailable ErrorCode = "WORKFLOW_ENGINE_UNAVAILABLE"
	ErrCodeWorkflowEngineTimeout     ErrorCode = "WORKFLOW_ENGINE_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf returns the code of the first StandardError in err's chain, or
// ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", details, false)
}

func NewEmailAlreadyRegisteredError(email string) *StandardError {
	return newError(ErrCodeEmailAlreadyRegistered, "Email already registered", fmt.Sprintf("email: %s", email), false)
}

func NewInvalidCredentialsError() *StandardError {
	return newError(ErrCodeInvalidCredentials, "Incorrect email or password", "", false)
}

func NewTokenInvalidError(details string) *StandardError {
	return newError(ErrCodeTokenInvalid, "Could not validate credentials", details, false)
}

func NewProfileNotFoundError(userID int64) *StandardError {
	return newError(ErrCodeProfileNotFound, "Profile not found. Please complete onboarding.", fmt.Sprintf("userId: %d", userID), false)
}

func NewOnboardingRequiredError(userID int64) *StandardError {
	return newError(ErrCodeOnboardingRequired, "Please complete onboarding first", fmt.Sprintf("userId: %d", userID), false)
}

func NewUniversityNotFoundError(universityID int64) *StandardError {
	return newError(ErrCodeUniversityNotFound, "University not found", fmt.Sprintf("universityId: %d", universityID), false)
}

func NewAlreadyShortlistedError(universityID int64) *StandardError {
	return newError(ErrCodeAlreadyShortlisted, "University already shortlisted", fmt.Sprintf("universityId: %d", universityID), false)
}

func NewNotShortlistedError(universityID int64) *StandardError {
	return newError(ErrCodeNotShortlisted, "University must be shortlisted before locking", fmt.Sprintf("universityId: %d", universityID), false)
}

func NewAlreadyLockedError(universityID int64) *StandardError {
	return newError(ErrCodeAlreadyLocked, "University already locked", fmt.Sprintf("universityId: %d", universityID), false)
}

func NewNotLockedError(universityID int64) *StandardError {
	return newError(ErrCodeNotLocked, "University not found in locked list", fmt.Sprintf("universityId: %d", universityID), false)
}

func NewTodoNotFoundError(todoID int64) *StandardError {
	return newError(ErrCodeTodoNotFound, "Todo not found", fmt.Sprintf("todoId: %d", todoID), false)
}

func NewUnsupportedActionError(action string) *StandardError {
	return newError(ErrCodeUnsupportedAction, "Unsupported action", fmt.Sprintf("action: %s", action), false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewQueryTimeoutError(operation string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("operation: %s", operation), true)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Catalog search error", err.Error(), true)
}

func NewSearchTimeoutError() *StandardError {
	return newError(ErrCodeSearchTimeout, "Catalog search timeout", "", true)
}

func NewLLMRateLimitedError(err error) *StandardError {
	return newError(ErrCodeLLMRateLimited, "AI counsellor rate limit reached", err.Error(), false)
}

func NewLLMGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeLLMGenerationFailed, "AI counsellor generation error", err.Error(), true)
}

func NewLLMTimeoutError() *StandardError {
	return newError(ErrCodeLLMTimeout, "AI counsellor timeout", "model call exceeded job timeout", true)
}

func NewWorkflowEngineUnavailableError(err error) *StandardError {
	return newError(ErrCodeWorkflowEngineUnavailable, "Workflow engine unavailable", err.Error(), true)
}

func NewWorkflowEngineTimeoutError(err error) *StandardError {
	return newError(ErrCodeWorkflowEngineTimeout, "Workflow engine request timed out", err.Error(), true)
}

// FromStorage maps a storage failure to a retryable StandardError, keeping
// deadline overruns distinguishable.
func FromStorage(operation string, err error) *StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewQueryTimeoutError(operation)
	}
	return NewQueryExecutionFailedError(operation, err)
}

// ==========================
// 4. BPMN Mapping and Retry Policy
// ==========================

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeLLMGenerationFailed,
		ErrCodeWorkflowEngineUnavailable:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeWorkflowEngineTimeout:
		return 2

	case ErrCodeLLMTimeout:
		return 1

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "EMAIL") || strings.Contains(codeStr, "CREDENTIALS") || strings.Contains(codeStr, "TOKEN"):
		return "AUTH"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNSUPPORTED"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "ALREADY") ||
		strings.Contains(codeStr, "NOT_") || strings.Contains(codeStr, "REQUIRED"):
		return "JOURNEY"
	default:
		return "OTHER"
	}
}
