package converter

import "fmt"

// Platform is one of the fixed set of destination marketplaces.
type Platform string

const (
	PlatformMomo    Platform = "momo"
	PlatformPChome  Platform = "pchome"
	PlatformYahoo   Platform = "yahoo"
	PlatformCoupang Platform = "coupang"
	PlatformRakuten Platform = "rakuten"
)

// ParsePlatform validates a platform string from a request.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := registry[p]; !ok {
		return "", fmt.Errorf("unsupported platform: %q", s)
	}
	return p, nil
}

// Platforms lists all supported target platforms in a stable order.
func Platforms() []Platform {
	return []Platform{PlatformMomo, PlatformPChome, PlatformYahoo, PlatformCoupang, PlatformRakuten}
}

func (p Platform) String() string { return string(p) }
