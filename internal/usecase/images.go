package usecase

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultMaxImages caps the filtered image list in the research path
const DefaultMaxImages = 3

// placeholderDomains are known stock/placeholder image hosts rejected
// outright (substring match on the lowercased URL)
var placeholderDomains = []string{
	"placeholder.com",
	"via.placeholder",
	"placehold.it",
	"placehold.co",
	"dummyimage.com",
	"example.com",
	"picsum.photos",
	"lorempixel.com",
	"placeimg.com",
}

// imageExtensions are the recognized image file extensions
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// imageFormats are the recognized values for fm=/format= query parameters
var imageFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// trustedImageHosts are CDNs whose URLs are accepted without an explicit
// extension or format parameter (host suffix match)
var trustedImageHosts = []string{
	"images.unsplash.com",
	"cdn.shopify.com",
	"m.media-amazon.com",
	"images-na.ssl-images-amazon.com",
	"res.cloudinary.com",
	"imgix.net",
	"cloudfront.net",
	"alicdn.com",
}

// FilterImages drops placeholder-domain, non-HTTP and unrecognizable
// image URLs, caps the result at max (DefaultMaxImages when max <= 0)
// and returns human-readable notes for every rejection and for
// truncation.
func FilterImages(candidates []string, max int) ([]string, []string) {
	if max <= 0 {
		max = DefaultMaxImages
	}

	var accepted []string
	var notes []string

	for i, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		lowered := strings.ToLower(trimmed)

		if trimmed == "" {
			notes = append(notes, fmt.Sprintf("Rejected image %d: empty URL", i+1))
			continue
		}
		if domain := matchPlaceholderDomain(lowered); domain != "" {
			notes = append(notes, fmt.Sprintf("Rejected image %d: placeholder domain %q", i+1, domain))
			continue
		}
		if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
			notes = append(notes, fmt.Sprintf("Rejected image %d: not an HTTP(S) URL", i+1))
			continue
		}
		if !looksLikeImage(trimmed) {
			notes = append(notes, fmt.Sprintf("Rejected image %d: no recognized image extension, format or CDN host", i+1))
			continue
		}

		accepted = append(accepted, trimmed)
	}

	if len(accepted) > max {
		notes = append(notes, fmt.Sprintf("Image list truncated to %d of %d accepted", max, len(accepted)))
		accepted = accepted[:max]
	}

	return accepted, notes
}

func matchPlaceholderDomain(lowered string) string {
	for _, domain := range placeholderDomains {
		if strings.Contains(lowered, domain) {
			return domain
		}
	}
	return ""
}

// looksLikeImage accepts a URL with a recognized file extension, a
// recognized format query parameter, or a trusted CDN host
func looksLikeImage(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	query := parsed.Query()
	for _, param := range []string{"fm", "format"} {
		if imageFormats[strings.ToLower(query.Get(param))] {
			return true
		}
	}

	host := strings.ToLower(parsed.Hostname())
	for _, trusted := range trustedImageHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}

	return false
}
