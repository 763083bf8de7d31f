package render

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var youtubeTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)

// videoEmbedURL maps a hosted-video page link to its player URL. Links to
// plain video files are not embeddable and report false.
func videoEmbedURL(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "youtu.be" || isHostOrSubdomain(host, "youtube.com"):
		return youtubeEmbedURL(parsed, host)
	case isHostOrSubdomain(host, "vimeo.com"):
		return vimeoEmbedURL(parsed)
	}
	return "", false
}

func youtubeEmbedURL(u *url.URL, host string) (string, bool) {
	path := strings.Trim(u.Path, "/")

	var id string
	if host == "youtu.be" {
		id = path
	} else {
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			id = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			id = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "live/"):
			id = strings.TrimPrefix(path, "live/")
		}
	}
	id, _, _ = strings.Cut(id, "/")
	if id == "" {
		return "", false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("playsinline", "1")
	if start := youtubeStart(u.Query()); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}
	return "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id) + "?" + values.Encode(), true
}

func youtubeStart(query url.Values) int {
	value := query.Get("start")
	if value == "" {
		value = query.Get("t")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return max(seconds, 0)
	}

	total := 0
	for _, match := range youtubeTimePattern.FindAllStringSubmatch(value, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func vimeoEmbedURL(u *url.URL) (string, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if _, err := strconv.ParseUint(segments[i], 10, 64); err == nil {
			return "https://player.vimeo.com/video/" + segments[i], true
		}
	}
	return "", false
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
