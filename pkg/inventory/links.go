package inventory

import (
	"net/url"
	"strings"
)

// Storefront search endpoints. Amazon takes the term as a query
// parameter, Rakuten as a path segment.
const (
	amazonSearchBase  = "https://www.amazon.co.jp/s?k="
	rakutenSearchBase = "https://search.rakuten.co.jp/search/mall/"
)

// AmazonSearchURL returns the Amazon product-search URL for a name.
// Spaces are percent-encoded, not "+"-encoded.
func AmazonSearchURL(name string) string {
	return amazonSearchBase + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

// RakutenSearchURL returns the Rakuten product-search URL for a name.
func RakutenSearchURL(name string) string {
	return rakutenSearchBase + url.PathEscape(name)
}
