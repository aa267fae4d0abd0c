// Package converter maps a scraped Shopee product into the listing shape each
// target marketplace expects. Conversion is pure: no I/O, no hidden state,
// same input always yields the same output.
package converter

import (
	"fmt"
	"html"
	"strings"

	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
)

// platformSpec pairs a platform's mapping function with its export header
// set. Keeping unimplemented platforms as explicit passthrough arms beats
// silently falling through a switch.
type platformSpec struct {
	convert  func(conversion.RawProduct) conversion.ConvertedProduct
	headers  []string
	twoLayer bool
}

var registry = map[Platform]platformSpec{
	PlatformMomo: {
		convert:  convertMomo,
		headers:  []string{"商品名稱", "商品描述", "售價", "商品規格", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		twoLayer: false,
	},
	PlatformPChome: {
		convert:  convertPChome,
		headers:  []string{"商品名稱", "商品描述", "售價", "規格名稱", "規格選項", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		twoLayer: true,
	},
	// Passthrough targets: field layout only, no marketplace-specific
	// description or spec rules yet.
	PlatformYahoo: {
		convert:  passthrough(PlatformYahoo),
		headers:  []string{"商品名稱", "商品描述", "售價", "商品規格", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		twoLayer: false,
	},
	PlatformCoupang: {
		convert:  passthrough(PlatformCoupang),
		headers:  []string{"商品名稱", "商品描述", "售價", "商品規格", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		twoLayer: false,
	},
	PlatformRakuten: {
		convert:  passthrough(PlatformRakuten),
		headers:  []string{"商品名稱", "商品描述", "售價", "商品規格", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		twoLayer: false,
	},
}

// Convert maps a raw product into the target platform's shape. The platform
// is validated upstream; an unknown value here is a programmer error.
func Convert(raw conversion.RawProduct, platform Platform) conversion.ConvertedProduct {
	spec, ok := registry[platform]
	if !ok {
		panic(fmt.Sprintf("converter: unregistered platform %q", platform))
	}
	return spec.convert(raw)
}

// Headers returns the fixed export header set for a platform.
func Headers(platform Platform) []string {
	return registry[platform].headers
}

// IsTwoLayer reports whether the platform uses the two-layer
// (key → value list) specification shape.
func IsTwoLayer(platform Platform) bool {
	return registry[platform].twoLayer
}

func base(raw conversion.RawProduct, platform Platform) conversion.ConvertedProduct {
	return conversion.ConvertedProduct{
		Platform:    string(platform),
		Title:       raw.Title,
		Description: raw.Description,
		Price:       raw.Price,
		Images:      raw.Images,
		Variants:    raw.Variants,
		Category:    raw.Category,
		Brand:       raw.Brand,
	}
}

func passthrough(platform Platform) func(conversion.RawProduct) conversion.ConvertedProduct {
	return func(raw conversion.RawProduct) conversion.ConvertedProduct {
		return base(raw, platform)
	}
}

// convertMomo synthesizes an HTML description (paragraph + variant bullet
// list) and collapses all variant names into one comma-joined spec string.
func convertMomo(raw conversion.RawProduct) conversion.ConvertedProduct {
	out := base(raw, PlatformMomo)

	names := variantNames(raw.Variants)

	var b strings.Builder
	if raw.Description != "" {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(raw.Description))
		b.WriteString("</p>")
	}
	if len(names) > 0 {
		b.WriteString("<h3>規格</h3><ul>")
		for _, name := range names {
			b.WriteString("<li>")
			b.WriteString(html.EscapeString(name))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	}

	out.Description = b.String()
	out.Specs = conversion.SpecSet{Flat: strings.Join(names, ", ")}
	return out
}

// convertPChome keeps the plain-text description and regroups variant names
// into the two-layer key → distinct-values mapping.
func convertPChome(raw conversion.RawProduct) conversion.ConvertedProduct {
	out := base(raw, PlatformPChome)
	out.Specs = GroupSpecs(raw.Variants)
	return out
}

func variantNames(variants []conversion.Variant) []string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		if name := strings.TrimSpace(v.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
