package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It collects URLs into a queue, hands a snapshot of the queue to the batch
// orchestrator and renders its status, progress and completion events.
// All UI strings are localized via Localization.
