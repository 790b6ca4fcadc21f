package model

// Package model defines domain data structures used across the app: queued
// URLs, per-item outcomes, batch results, the failure taxonomy, and status
// enums. Structures are designed for direct binding in the UI and explicit
// state transitions.
