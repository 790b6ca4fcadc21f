package naming

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://x.test/cat.webp", "cat.png"},
		{"https://x.test/photos/sunset.jpg?w=800#top", "sunset.png"},
		{"https://x.test/index", "converted_image.png"},
		{"https://x.test/image.png", "converted_image.png"},
		{"https://x.test/download", "converted_image.png"},
		{"https://x.test/", "converted_image.png"},
		{"https://x.test", "converted_image.png"},
		{"https://x.test/image.png?id=42&size=large", "id_42.png"},
		{"https://x.test/?blank=&name=cat", "name_cat.png"},
		{"https://x.test/index.html?q=a+b", "q_ab.png"},
		{"https://x.test/gallery/", "gallery.png"},
		{"https://x.test/a/b/c/", "c.png"},
		{"https://x.test/my%20cat%21.gif", "my20cat21.png"},
		{"https://x.test/a%2Fb.png", "a2Fb.png"},
		{"https://x.test/x²y.png", "x²y.png"},
		{"https://x.test/?%zz=1", "zz_1.png"},
		{"https://x.test/archive.tar.gz", "archivetar.png"},
		{"https://x.test/.hidden", "hidden.png"},
		{"https://x.test/some-name_v2.webp", "some-name_v2.png"},
		{"https://x.test/кот.webp", "кот.png"},
		{"https://x.test/!!!.webp", "converted_image.png"},
		{"https://x.test/Image.png", "Image.png"},
		{"http://[::1", "converted_image.png"},
		{"", "converted_image.png"},
	}

	for _, test := range tests {
		if got := Derive(test.url); got != test.expected {
			t.Errorf("Derive(%q) = %q, expected %q", test.url, got, test.expected)
		}
	}
}

func TestDerive_Deterministic(t *testing.T) {
	u := "https://cdn.x.test/a/b/image.png?token=abc"
	first := Derive(u)
	for i := 0; i < 5; i++ {
		if got := Derive(u); got != first {
			t.Fatalf("Derive is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestDerive_NoSeparators(t *testing.T) {
	urls := []string{
		"https://x.test/a%2Fb.png",
		"https://x.test/..%5C..%5Cwin.png",
		"https://x.test/?path=../../etc/passwd",
	}

	for _, u := range urls {
		name := Derive(u)
		if strings.ContainsAny(name, `/\`) {
			t.Errorf("Derive(%q) = %q contains a path separator", u, name)
		}
		if !strings.HasSuffix(name, OutputExtension) {
			t.Errorf("Derive(%q) = %q lacks extension", u, name)
		}
	}
}

func TestDerive_LongStemTruncated(t *testing.T) {
	long := strings.Repeat("é", 300)
	name := Derive("https://x.test/" + long + ".webp")

	stem := strings.TrimSuffix(name, OutputExtension)
	if len(stem) > MaxStemBytes {
		t.Errorf("Stem has %d bytes, expected at most %d", len(stem), MaxStemBytes)
	}
	if !utf8.ValidString(stem) {
		t.Error("Truncated stem is not valid UTF-8")
	}
}
