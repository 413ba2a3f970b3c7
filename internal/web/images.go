package web

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strings"
)

// NewImageHandler serves /images/<name>. With a source, requests are
// redirected to the URL it returns; otherwise they are proxied to the
// catalog API, which hosts uploaded images under /images/.
func NewImageHandler(source ImageSource, apiBaseURL string) (http.Handler, error) {
	if source != nil {
		return &presignedImages{source: source}, nil
	}

	target, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("[ImageProxy] Failed to fetch %s: %v", r.URL.Path, err)
		w.WriteHeader(http.StatusBadGateway)
	}
	return proxy, nil
}

type presignedImages struct {
	source ImageSource
}

func (p *presignedImages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := imageName(r.URL.Path)
	if name == "" {
		http.NotFound(w, r)
		return
	}

	target, err := p.source.ImageURL(r.Context(), name)
	if err != nil {
		log.Printf("[ImageProxy] %v", err)
		http.Error(w, "image unavailable", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// imageName extracts the filename from /images/<name>
func imageName(p string) string {
	name := strings.TrimPrefix(path.Clean("/"+p), "/images")
	return strings.TrimPrefix(name, "/")
}
