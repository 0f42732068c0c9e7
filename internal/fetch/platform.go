package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	PlatformGupy       Platform = "gupy"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformIndeed     Platform = "indeed"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"gupy.io", PlatformGupy},
	{"linkedin.com", PlatformLinkedIn},
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"indeed.com", PlatformIndeed},
	{"indeed.com.br", PlatformIndeed},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
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

// PlatformContentSelectors returns content selectors for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGupy:
		return []string{
			"[data-testid='text-section']",
			"#job-description",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description__content",
		}
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			"#content",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".content",
		}
	case PlatformIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".application-form",
		".apply-button-container",
		".eeo-statement",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common,
			".show-more-less-html__button",
			".sign-up-modal",
			".top-card-layout__cta-container",
		)
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".posting-apply", ".lever-application-form")
	default:
		return common
	}
}
