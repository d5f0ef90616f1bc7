// internal/ua/ua.go
//
// User-Agent parsing helpers.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  The bot filter
// on public POSTs and the request logger are the only callers.
package ua

import (
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Info carries the UA attributes we log and filter on.
//
// Device will be one of: "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser string
	OS      string
	Device  string
	IsBot   bool
}

// scripted lists HTTP client libraries that uasurfer does not flag as bots
// but that never drive a real form.
var scripted = []string{"curl/", "wget/", "python-requests", "go-http-client", "httpie/", "okhttp/"}

// Parse converts a raw header into Info.  An empty header counts as a bot.
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	info := Info{
		Browser: u.Browser.Name.StringTrimPrefix(),
		OS:      u.OS.Name.StringTrimPrefix(),
		IsBot:   raw == "" || u.IsBot() || isScripted(raw),
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}
	return info
}

func isScripted(raw string) bool {
	l := strings.ToLower(raw)
	for _, s := range scripted {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}
