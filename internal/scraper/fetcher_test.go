package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$1,299", 1299},
		{"NT$100", 100},
		{"1299.50", 1299.5},
		{"$1,299 - $1,599", 1299},
		{"1,234,567", 1234567},
		{"售價 299 元", 299},
		{"free", 0},
		{"", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePrice(tc.in), "input %q", tc.in)
	}
}

func TestCleanImageURLsRewritesRelative(t *testing.T) {
	pageURL := "https://shopee.tw/product/123/456"

	out := CleanImageURLs([]string{
		"//cf.shopee.tw/file/abc.jpg",
		"/file/def.jpg",
		"https://cf.shopee.tw/file/ghi.jpg",
	}, pageURL)

	assert.Equal(t, []string{
		"https://cf.shopee.tw/file/abc.jpg",
		"https://shopee.tw/file/def.jpg",
		"https://cf.shopee.tw/file/ghi.jpg",
	}, out)
}

func TestCleanImageURLsDropsPlaceholders(t *testing.T) {
	out := CleanImageURLs([]string{
		"https://cf.shopee.tw/file/real.jpg",
		"https://cf.shopee.tw/img/PLACEHOLDER.png",
		"https://cf.shopee.tw/file/default_img.png",
		"https://cf.shopee.tw/no_image.jpg",
		"https://cf.shopee.tw/spinner/loading.gif",
		"   ",
		"",
	}, "https://shopee.tw/x")

	assert.Equal(t, []string{"https://cf.shopee.tw/file/real.jpg"}, out)
}

func TestCleanImageURLsEmptyInput(t *testing.T) {
	assert.Empty(t, CleanImageURLs(nil, "https://shopee.tw/x"))
}
