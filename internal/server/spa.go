package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// handleSPA serves the built map frontend out of dir. Paths that match a
// real file (bundles, GeoJSON, icons) are served as-is; everything else gets
// index.html so routes like /province/Jawa%20Tengah resolve client-side.
func handleSPA(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
