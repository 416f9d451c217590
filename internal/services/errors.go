package services

import "errors"

// Service errors
var (
	// Dashboard errors
	ErrNoCleanedFiles = errors.New("no cleaned files found")
	ErrNotLoaded      = errors.New("dashboard data not loaded")

	// Cleaning errors
	ErrNoInputFiles = errors.New("no input files found")
)
