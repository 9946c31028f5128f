package api

import (
	"net/http"

	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/server/result"
)

// InfoModel is the response body of GET /api/v1/info.
type InfoModel struct {
	Version struct {
		Server   string `json:"server"`
		Shrdlite string `json:"shrdlite"`
	} `json:"version"`
}

// HTTPGetInfo returns a HandlerFunc that reports version information on the
// planner and the server wrapping it. It requires no authentication.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Shrdlite = version.Current

	return result.OK(resp, "client got API info")
}
