package models

import "strings"

type Category struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ImageURL - résout une référence d'image stockée (chemin relatif, ex: "/p1.jpg")
// contre la base configurée + le segment uploads.
func ImageURL(baseURL, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base := strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return base + "/uploads" + ref
}
