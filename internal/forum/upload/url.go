// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package upload owns post image handling for both deployment modes.
//
// # Modes
//
// In "url" mode the API accepts externally hosted image links and only
// validates them against an allow-list. In "upload" mode the API receives
// multipart files and stores them on local disk, exposing them under the
// /uploads/ static prefix. The active mode is chosen by configuration; the
// post handler branches, nothing else changes.
package upload

import (
	"net/url"
	"path"
	"strings"

	"github.com/tablonapp/tablon/internal/platform/apperr"
)

// ErrInvalidMultipart is returned when multipart form data cannot be parsed.
var ErrInvalidMultipart = apperr.ValidationError("Invalid multipart form data")

// imageExtensions lists the file extensions accepted as image links.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// trustedImageHosts lists hosts whose URLs are accepted even without an
// image extension, because they serve images from extension-less routes.
var trustedImageHosts = []string{
	"imgur.com",
	"i.imgur.com",
	"i.redd.it",
	"media.giphy.com",
	"tenor.com",
	"media.tenor.com",
	"i.pinimg.com",
	"cdn.discordapp.com",
	"media.discordapp.net",
}

// ValidateImageURL checks an externally hosted image link against the
// allow-list rules.
//
// # Rules (any one suffices after the scheme check)
//   - The path ends in a recognised image extension.
//   - The path contains an /images/ segment.
//   - The host is a trusted image host.
//
// # Returns
//   - nil when the link is acceptable.
//   - [apperr.ValidationError] otherwise; the message does not echo the URL.
func ValidateImageURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return apperr.ValidationError("Image URL must be a valid http(s) link")
	}

	lowerPath := strings.ToLower(parsed.Path)

	for _, extension := range imageExtensions {
		if strings.HasSuffix(lowerPath, extension) {
			return nil
		}
	}

	if strings.Contains(lowerPath, "/images/") {
		return nil
	}

	// Subdomains of a trusted host are accepted too; a dot-suffix match
	// keeps lookalikes such as imgur.com.evil.com out.
	host := strings.ToLower(parsed.Hostname())
	for _, trusted := range trustedImageHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return nil
		}
	}

	return apperr.ValidationError("Image URL must point to an image file or a known image host")
}

// extensionOf returns the lower-cased extension of a file name.
func extensionOf(name string) string {
	return strings.ToLower(path.Ext(name))
}
