package web

import (
	"net/http"
	"time"
)

var gmtZone *time.Location

func init() {
	var err error
	gmtZone, err = time.LoadLocation("GMT")
	if err != nil {
		gmtZone = time.UTC
	}
}

// HeaderHandler returns an http.Handler that adds the given headers to the response.
func HeaderHandler(h http.Handler, headers map[string]string) http.Handler {
	if len(headers) == 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

// ExpiresHandler adds an Expires header to GET and HEAD responses. When
// expires is zero, pages are marked with "Cache-Control: no-cache" instead
// so browsers revalidate and see template changes right away.
func ExpiresHandler(h http.Handler, expires time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			if expires != 0 {
				w.Header().Set("Expires", time.Now().Add(expires).In(gmtZone).Format(time.RFC1123))
			} else {
				w.Header().Set("Cache-Control", "no-cache")
			}
		}
		h.ServeHTTP(w, r)
	})
}
