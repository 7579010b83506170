package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a URL host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		if host == p.suffix || strings.HasSuffix(host, "."+p.suffix) {
			return p.platform
		}
	}
	return PlatformUnknown
}

var genericContent = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
}

func contentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return append([]string{".job__description", ".job-post-container", "#content"}, genericContent...)
	case PlatformLever:
		return append([]string{".posting-page", ".posting-description"}, genericContent...)
	case PlatformWorkday:
		return append([]string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}, genericContent...)
	default:
		return genericContent
	}
}

var commonNoise = []string{
	"script", "style", "noscript", "nav", "header", "footer",
	"form", ".application-form", "#application-form",
	".eeo-statement", ".voluntary-disclosure", ".cookie-banner", ".social-share",
}

func noiseSelectors(platform Platform) []string {
	noise := append([]string{}, commonNoise...)
	switch platform {
	case PlatformGreenhouse:
		noise = append(noise, ".application--wrapper", "#usa_self_id_section")
	case PlatformLever:
		noise = append(noise, ".posting-apply", ".lever-application-form")
	case PlatformWorkday:
		noise = append(noise, "[data-automation-id='applyButton']")
	}
	return noise
}
