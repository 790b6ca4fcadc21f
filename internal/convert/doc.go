package convert

// Package convert implements the fetch-decode-encode unit: it downloads one
// URL, decodes it with every registered codec (PNG, JPEG, GIF, WebP, BMP,
// TIFF), normalizes it to non-premultiplied RGBA, and writes a PNG to a path
// that must not exist yet. Each failure is classified into an item error kind.
