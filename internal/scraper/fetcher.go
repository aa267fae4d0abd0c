// Package scraper drives a headless Chrome instance to pull the raw product
// fields off a Shopee listing page.
package scraper

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
)

// ProductFetcher is what the conversion orchestrator depends on; tests swap
// in a stub.
type ProductFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*conversion.RawProduct, error)
}

// ChromeFetcher opens one browser context per call and releases it on every
// path.
type ChromeFetcher struct {
	// NavigationTimeout bounds the initial page load.
	NavigationTimeout time.Duration
	// SelectorTimeout bounds the wait for the primary title probe after the
	// page reports ready.
	SelectorTimeout time.Duration
	// ProbeTimeout bounds each individual selector probe.
	ProbeTimeout time.Duration

	log zerolog.Logger
}

func NewChromeFetcher(log zerolog.Logger) *ChromeFetcher {
	return &ChromeFetcher{
		NavigationTimeout: 30 * time.Second,
		SelectorTimeout:   10 * time.Second,
		ProbeTimeout:      2 * time.Second,
		log:               log.With().Str("component", "scraper").Logger(),
	}
}

// DefaultVariantName is substituted when a listing exposes no variants.
const DefaultVariantName = "單一規格"

func (f *ChromeFetcher) Fetch(ctx context.Context, pageURL string) (*conversion.RawProduct, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, f.NavigationTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, &conversion.FetchError{URL: pageURL, Err: err}
	}

	// Give the primary title probe a chance to render. Non-fatal: a miss just
	// means we fall back to the secondary probes.
	waitCtx, cancelWait := context.WithTimeout(browserCtx, f.SelectorTimeout)
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(titleProbes[0], chromedp.ByQuery)); err != nil {
		f.log.Debug().Str("url", pageURL).Msg("primary title probe never appeared")
	}
	cancelWait()

	title := f.firstText(browserCtx, titleProbes)
	priceText := f.firstText(browserCtx, priceProbes)
	description := f.firstText(browserCtx, descriptionProbes)
	category := f.firstText(browserCtx, categoryProbes)
	brand := f.firstText(browserCtx, brandProbes)
	rawImages := f.collectStrings(browserCtx, collectImagesJS)
	rawVariants := f.collectStrings(browserCtx, collectVariantsJS)

	if title == "" && priceText == "" {
		return nil, &conversion.ParseError{URL: pageURL, Reason: "no recognizable product fields on page"}
	}

	price := ParsePrice(priceText)

	variants := make([]conversion.Variant, 0, len(rawVariants))
	for _, name := range rawVariants {
		if name = strings.TrimSpace(name); name != "" {
			variants = append(variants, conversion.Variant{Name: name})
		}
	}
	if len(variants) == 0 {
		variants = []conversion.Variant{{Name: DefaultVariantName, Price: price}}
	}

	product := &conversion.RawProduct{
		Title:       title,
		Description: description,
		Price:       price,
		Images:      CleanImageURLs(rawImages, pageURL),
		Variants:    variants,
		Category:    category,
		Brand:       brand,
		SourceURL:   pageURL,
	}

	f.log.Info().
		Str("url", pageURL).
		Str("title", product.Title).
		Float64("price", product.Price).
		Int("images", len(product.Images)).
		Int("variants", len(product.Variants)).
		Msg("scraped product")

	return product, nil
}

// firstText tries each selector in order and returns the first non-empty
// trimmed text. Probe failures are silent; optional fields default to "".
func (f *ChromeFetcher) firstText(ctx context.Context, selectors []string) string {
	for _, sel := range selectors {
		probeCtx, cancel := context.WithTimeout(ctx, f.ProbeTimeout)
		var text string
		err := chromedp.Run(probeCtx, chromedp.Text(sel, &text, chromedp.ByQuery, chromedp.AtLeast(0)))
		cancel()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

func (f *ChromeFetcher) collectStrings(ctx context.Context, js string) []string {
	probeCtx, cancel := context.WithTimeout(ctx, f.ProbeTimeout)
	defer cancel()

	var out []string
	if err := chromedp.Run(probeCtx, chromedp.Evaluate(js, &out)); err != nil {
		return nil
	}
	return out
}

var placeholderMarkers = []string{"placeholder", "default_img", "no_image", "loading.gif"}

// CleanImageURLs drops placeholder images and rewrites relative URLs to
// absolute against the page URL.
func CleanImageURLs(raw []string, pageURL string) []string {
	base, _ := url.Parse(pageURL)

	out := make([]string, 0, len(raw))
	for _, src := range raw {
		src = strings.TrimSpace(src)
		if src == "" || isPlaceholder(src) {
			continue
		}
		switch {
		case strings.HasPrefix(src, "//"):
			src = "https:" + src
		case strings.HasPrefix(src, "/") && base != nil:
			src = base.Scheme + "://" + base.Host + src
		}
		out = append(out, src)
	}
	return out
}

func isPlaceholder(src string) bool {
	lower := strings.ToLower(src)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

var priceRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// ParsePrice extracts the first number out of a price string like
// "$1,299 - $1,599" or "NT$100". A price range yields its lower bound.
func ParsePrice(text string) float64 {
	match := priceRe.FindString(text)
	if match == "" {
		return 0
	}
	match = strings.ReplaceAll(match, ",", "")
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return price
}
