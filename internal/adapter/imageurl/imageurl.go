package imageurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/niksmo/marketplace/internal/core/port"
)

var _ port.ImageResolver = (*Resolver)(nil)

var ErrInvalidRef = errors.New("invalid image reference")

// A Resolver builds CDN URLs from asset references
// like "image-<asset>-<width>x<height>-<format>".
type Resolver struct {
	base    *url.URL
	project string
	dataset string
}

func New(cdnURL, project, dataset string) (Resolver, error) {
	const op = "imageurl.New"

	base, err := url.Parse(cdnURL)
	if err != nil {
		return Resolver{}, fmt.Errorf("%s: %w", op, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return Resolver{}, fmt.Errorf("%s: CDN URL must be absolute: %q", op, cdnURL)
	}
	if project == "" || dataset == "" {
		return Resolver{}, fmt.Errorf("%s: project and dataset are required", op)
	}
	return Resolver{base, project, dataset}, nil
}

// ResolveImage returns absolute http(s) references unchanged.
func (r Resolver) ResolveImage(ref string) (string, error) {
	const op = "Resolver.ResolveImage"

	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		return ref, nil
	}

	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" || !validDimensions(parts[2]) {
		return "", fmt.Errorf("%s: %w: %q", op, ErrInvalidRef, ref)
	}
	asset, dims, format := parts[1], parts[2], parts[3]
	if asset == "" || format == "" {
		return "", fmt.Errorf("%s: %w: %q", op, ErrInvalidRef, ref)
	}

	u := r.base.JoinPath("images", r.project, r.dataset, asset+"-"+dims+"."+format)
	return u.String(), nil
}

func validDimensions(s string) bool {
	w, h, ok := strings.Cut(s, "x")
	return ok && isDigits(w) && isDigits(h)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
