package handlers

import "net/http"

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"}, "service is healthy")
}
