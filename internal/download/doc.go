package download

// Package download implements the network step of the pipeline: one plain
// HTTP GET per URL with a bounded timeout, status validation, and a size-capped
// body read. Failures are reported as network or processing item errors.
