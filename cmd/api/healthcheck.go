package main

import (
	"net/http"
)

// @Summary Service health
// @Description Reports status, environment, version and whether the optional backends are reachable
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,system_info=map[string]string}
// @Router /v1/healthcheck [get]
func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status := "available"

	systemInfo := map[string]string{
		"environment": app.config.env,
		"version":     version,
		"store":       app.config.store,
	}

	if app.redis != nil {
		if err := app.redis.Ping(r.Context()); err != nil {
			app.logger.Warn("redis ping failed", "error", err)
			systemInfo["content_cache"] = "unavailable"
			status = "degraded"
		} else {
			systemInfo["content_cache"] = "available"
		}
	}

	env := envelope{
		"status":      status,
		"system_info": systemInfo,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
