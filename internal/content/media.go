package content

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Embed service identifiers returned by ClassifyEmbed.
const (
	ServiceYouTube = "youtube"
	ServiceVimeo   = "vimeo"
	ServiceCodePen = "codepen"
	ServiceIframe  = "iframe"
	ServiceNone    = "none"
)

// Default player dimensions per embed service.
const (
	youtubeWidth  = 560
	youtubeHeight = 315
	vimeoWidth    = 640
	vimeoHeight   = 360
	codepenWidth  = 800
	codepenHeight = 400
	iframeWidth   = 800
	iframeHeight  = 600
)

// ImageValidationResult is the outcome of classifying a URL as an image.
type ImageValidationResult struct {
	IsValid             bool   `json:"isValid"`
	HasExtension        bool   `json:"hasExtension"`
	IsFromTrustedDomain bool   `json:"isFromTrustedDomain"`
	IsDataURL           bool   `json:"isDataUrl"`
	Message             string `json:"message,omitempty"`
}

// MediaValidationResult is the outcome of classifying a URL as an
// embeddable service (video player, pen, generic iframe).
type MediaValidationResult struct {
	IsValid      bool   `json:"isValid"`
	Service      string `json:"service"`
	EmbedURL     string `json:"embedUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	VideoID      string `json:"videoId,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Message      string `json:"message,omitempty"`
}

// imageExtensions are path suffixes accepted as image files.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".bmp":  true,
	".ico":  true,
	".avif": true,
}

// trustedImageHosts are image-hosting domains accepted without a file
// extension (CDNs commonly serve extensionless image URLs).
var trustedImageHosts = []string{
	"i.imgur.com",
	"imgur.com",
	"images.unsplash.com",
	"unsplash.com",
	"res.cloudinary.com",
	"i.ibb.co",
	"raw.githubusercontent.com",
	"user-images.githubusercontent.com",
	"cdn.pixabay.com",
	"live.staticflickr.com",
	"upload.wikimedia.org",
	"media.giphy.com",
	"pbs.twimg.com",
}

// trustedIframeHosts are domains whose URLs may be embedded verbatim in an
// iframe when no dedicated service pattern matches.
var trustedIframeHosts = []string{
	"codesandbox.io",
	"stackblitz.com",
	"replit.com",
	"jsfiddle.net",
	"glitch.com",
	"observablehq.com",
}

var (
	// YouTube video IDs are exactly 11 characters from this alphabet.
	youtubeWatchRE = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`)
	youtubeShortRE = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`)
	youtubeEmbedRE = regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]{11})`)

	vimeoRE = regexp.MustCompile(`vimeo\.com/(\d+)`)

	codepenRE = regexp.MustCompile(`codepen\.io/([\w-]+)/(?:pen|embed)/([\w-]+)`)
)

// ClassifyImage decides whether rawURL plausibly points at a usable image.
// The check is purely syntactic: a URL is accepted if it parses and either
// carries a known image extension, is hosted on a curated image domain, or
// is a data:image/ URI. No network access is performed.
func ClassifyImage(rawURL string) ImageValidationResult {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ImageValidationResult{Message: "Image URL is required"}
	}

	if strings.HasPrefix(rawURL, "data:") {
		if strings.HasPrefix(rawURL, "data:image/") {
			return ImageValidationResult{IsValid: true, IsDataURL: true}
		}
		return ImageValidationResult{IsDataURL: true, Message: "Data URL is not an image"}
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" {
		return ImageValidationResult{Message: "Invalid URL format"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ImageValidationResult{Message: "Image URL must use http or https"}
	}

	result := ImageValidationResult{}

	ext := strings.ToLower(path.Ext(u.Path))
	result.HasExtension = imageExtensions[ext]
	result.IsFromTrustedDomain = hostMatches(u.Host, trustedImageHosts)

	if result.HasExtension || result.IsFromTrustedDomain {
		result.IsValid = true
		return result
	}

	result.Message = "URL does not appear to be an image (no image extension and unrecognized host)"
	return result
}

// ClassifyEmbed decides whether rawURL references a recognized embeddable
// service and derives canonical embed metadata for it. Services are tried
// in priority order: YouTube, Vimeo, CodePen, then generic trusted iframe
// hosts. Like ClassifyImage it is purely syntactic.
func ClassifyEmbed(rawURL string) MediaValidationResult {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return MediaValidationResult{Service: ServiceNone, Message: "Embed URL is required"}
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" {
		return MediaValidationResult{Service: ServiceNone, Message: "Invalid URL format"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return MediaValidationResult{Service: ServiceNone, Message: "Embed URL must use http or https"}
	}

	host := strings.ToLower(u.Host)

	if strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be") {
		if id := extractYouTubeID(rawURL); id != "" {
			return MediaValidationResult{
				IsValid:      true,
				Service:      ServiceYouTube,
				VideoID:      id,
				EmbedURL:     fmt.Sprintf("https://www.youtube.com/embed/%s", id),
				ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id),
				Width:        youtubeWidth,
				Height:       youtubeHeight,
			}
		}
		return MediaValidationResult{
			Service: ServiceNone,
			Message: "Could not extract a YouTube video ID from the URL",
		}
	}

	if m := vimeoRE.FindStringSubmatch(rawURL); m != nil {
		return MediaValidationResult{
			IsValid:  true,
			Service:  ServiceVimeo,
			VideoID:  m[1],
			EmbedURL: fmt.Sprintf("https://player.vimeo.com/video/%s", m[1]),
			Width:    vimeoWidth,
			Height:   vimeoHeight,
		}
	}

	if m := codepenRE.FindStringSubmatch(rawURL); m != nil {
		return MediaValidationResult{
			IsValid:  true,
			Service:  ServiceCodePen,
			EmbedURL: fmt.Sprintf("https://codepen.io/%s/embed/%s", m[1], m[2]),
			Width:    codepenWidth,
			Height:   codepenHeight,
		}
	}

	if hostMatches(u.Host, trustedIframeHosts) {
		return MediaValidationResult{
			IsValid:  true,
			Service:  ServiceIframe,
			EmbedURL: rawURL,
			Width:    iframeWidth,
			Height:   iframeHeight,
		}
	}

	return MediaValidationResult{
		Service: ServiceNone,
		Message: "URL is not a recognized embeddable service (YouTube, Vimeo, CodePen or trusted iframe host)",
	}
}

// extractYouTubeID pulls an 11-character video ID out of the common
// YouTube URL shapes (watch?v=, youtu.be/, embed/).
func extractYouTubeID(rawURL string) string {
	for _, re := range []*regexp.Regexp{youtubeWatchRE, youtubeShortRE, youtubeEmbedRE} {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// hostMatches reports whether host equals or is a subdomain of any entry
// in the allow-list. Port suffixes are ignored.
func hostMatches(host string, allowed []string) bool {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	for _, a := range allowed {
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}
