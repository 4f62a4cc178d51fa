package api

import (
	"encoding/json"
	"io"
	"net/http"
)

// Proxy forwards a GET to the target URL server-side and relays status and
// body verbatim, so the browser UI can read pages its own cross-origin
// policy would block. The upstream request carries the fetcher's browser
// user agent.
func (h *Handlers) Proxy(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "URL obrigatória"})
		return
	}

	resp, err := h.fetcher.Do(r.Context(), target)
	if err != nil {
		h.logger.Error("proxy request failed", "url", target, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Erro ao buscar a URL",
			"details": err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Warn("proxy response relay interrupted", "url", target, "error", err)
	}
}
