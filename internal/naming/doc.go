package naming

// Package naming maps source URLs to PNG file names and resolves them into
// free paths inside the output directory. Derive is pure; Resolver keeps the
// set of paths claimed during one run so two items never share a file.
