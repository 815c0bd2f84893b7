package scraper

import (
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/gocolly/colly/v2"
)

var (
	siteURLMatcher     = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com(/.*)?$`, 0)
	productURLMatcher  = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/product/[a-zA-Z0-9]{4,8}/[\S]*`, 0)
	partListURLMatcher = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/((list/[a-zA-Z0-9]{4,8})|((user/\w*/saved/(#view=)?[a-zA-Z0-9]{4,8})))`, 0)
	savedListMatcher   = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/user/[a-zA-Z0-9]*/saved/#view=[a-zA-Z0-9]{4,8}`, 0)
	vendorNameMatcher  = regexp2.MustCompile(`(?<=pcpartpicker\.com/mr/).*(?=\/)`, 0)
	scriptImageMatcher = regexp2.MustCompile(`(?<=src:\s").*(?=")`, 0)
)

func matches(re *regexp2.Regexp, s string) bool {
	ok, _ := re.MatchString(s)
	return ok
}

// MatchSiteURL reports whether the URL points at PCPartPicker at all.
func MatchSiteURL(URL string) bool { return matches(siteURLMatcher, URL) }

// MatchProductURL reports whether the URL is a single product page.
func MatchProductURL(URL string) bool { return matches(productURLMatcher, URL) }

// MatchPartListURL reports whether the URL is a shared or saved part list.
func MatchPartListURL(URL string) bool { return matches(partListURLMatcher, URL) }

// canonicalListURL rewrites a saved-list URL into its fetchable form.
func canonicalListURL(URL string) string {
	if !matches(savedListMatcher, URL) {
		return URL
	}
	return strings.Replace(URL, "#view=", "", 1)
}

// extractVendorName pulls the retailer slug out of an affiliate URL.
func extractVendorName(URL string) string {
	if URL == "" {
		return ""
	}
	m, err := vendorNameMatcher.FindStringMatch(URL)
	if err != nil || m == nil {
		return ""
	}
	return m.String()
}

// scriptImages collects gallery image URLs that only appear inside an
// inline script block.
func scriptImages(script *colly.HTMLElement, images []string) []string {
	m, _ := scriptImageMatcher.FindStringMatch(script.Text)
	for m != nil {
		src := m.String()
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		images = append(images, src)
		m, _ = scriptImageMatcher.FindNextMatch(m)
	}
	return images
}

// RegionPrefixURL builds the regional site root ("https://de.pcpartpicker.com/").
func RegionPrefixURL(region string) string {
	if region != "" && region != "us" {
		region += "."
	} else {
		region = ""
	}
	return "https://" + region + "pcpartpicker.com/"
}

// searchURL builds the regional search URL for a query.
func searchURL(searchTerm, region string) string {
	return RegionPrefixURL(region) + "search?q=" + url.QueryEscape(searchTerm)
}

// linkURL joins URL fragments, passing absolute URLs through untouched and
// collapsing an empty trailing fragment to "".
func linkURL(parts ...string) string {
	last := parts[len(parts)-1]
	if last == "" {
		return ""
	}
	if strings.HasPrefix(last, "http") {
		return last
	}
	return strings.Join(parts, "")
}
