package service

import "errors"

// Common service errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Submission errors
var (
	ErrDuplicateName     = errors.New("name already exists")
	ErrSubmissionsLocked = errors.New("submissions are locked")
)

// Maintenance errors
var (
	ErrProtectedTable = errors.New("table is protected")
	ErrUnknownTable   = errors.New("unknown table")
)

// Backup errors
var (
	ErrBackupNotFound       = errors.New("no backup snapshot found")
	ErrBackupAlreadyRunning = errors.New("backup service already running")
	ErrBackupNotRunning     = errors.New("backup service not running")
)
