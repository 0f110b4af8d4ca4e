// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package upload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablonapp/tablon/internal/forum/upload"
)

/*
TestValidateImageURL exercises the external image link allow-list.
*/
func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		allowed bool
	}{
		{"jpg_extension", "https://example.com/cat.jpg", true},
		{"jpeg_extension", "https://example.com/cat.jpeg", true},
		{"png_extension", "http://example.com/pics/cat.png", true},
		{"webp_extension", "https://example.com/cat.webp", true},
		{"bmp_extension", "https://example.com/cat.bmp", true},
		{"uppercase_extension", "https://example.com/CAT.PNG", true},
		{"images_path_segment", "https://example.com/images/123456", true},
		{"trusted_host_imgur", "https://i.imgur.com/abc123", true},
		{"trusted_host_reddit", "https://i.redd.it/xyz", true},
		{"trusted_host_discord", "https://cdn.discordapp.com/attachments/1/2/cat", true},
		{"trusted_host_subdomain", "https://m.imgur.com/abc123", true},
		{"trusted_host_nested_subdomain", "https://a.b.tenor.com/view/cat", true},

		{"no_extension_untrusted_host", "https://example.com/cat", false},
		{"html_page", "https://example.com/cat.html", false},
		{"ftp_scheme", "ftp://example.com/cat.jpg", false},
		{"missing_scheme", "example.com/cat.jpg", false},
		{"empty", "", false},
		{"lookalike_host", "https://imgur.com.evil.example/abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := upload.ValidateImageURL(tt.url)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
