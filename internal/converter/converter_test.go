package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
)

func sampleRaw() conversion.RawProduct {
	return conversion.RawProduct{
		Title:       "無線藍牙耳機",
		Description: "降噪 & 防水 <v2>",
		Price:       1299,
		Images:      []string{"https://cf.shopee.tw/a.jpg", "https://cf.shopee.tw/b.jpg"},
		Variants: []conversion.Variant{
			{Name: "顏色:黑色"},
			{Name: "顏色:白色"},
		},
		Category:  "3C",
		Brand:     "Acme",
		SourceURL: "https://shopee.tw/product/1/2",
	}
}

func TestParsePlatform(t *testing.T) {
	for _, p := range Platforms() {
		got, err := ParsePlatform(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePlatform("amazon")
	assert.Error(t, err)
	_, err = ParsePlatform("")
	assert.Error(t, err)
}

func TestConvertKeepsCommonFields(t *testing.T) {
	raw := sampleRaw()
	for _, p := range Platforms() {
		out := Convert(raw, p)
		assert.Equal(t, string(p), out.Platform)
		assert.Equal(t, raw.Title, out.Title)
		assert.Equal(t, raw.Price, out.Price)
		assert.Equal(t, raw.Images, out.Images)
		assert.Equal(t, raw.Category, out.Category)
		assert.Equal(t, raw.Brand, out.Brand)
	}
}

func TestConvertMomoSynthesizesHTMLDescription(t *testing.T) {
	out := Convert(sampleRaw(), PlatformMomo)

	assert.Equal(t,
		"<p>降噪 &amp; 防水 &lt;v2&gt;</p><h3>規格</h3><ul><li>顏色:黑色</li><li>顏色:白色</li></ul>",
		out.Description)
	assert.Equal(t, "顏色:黑色, 顏色:白色", out.Specs.Flat)
	assert.Empty(t, out.Specs.Groups)
}

func TestConvertMomoWithoutVariantsOrDescription(t *testing.T) {
	raw := sampleRaw()
	raw.Description = ""
	raw.Variants = nil

	out := Convert(raw, PlatformMomo)
	assert.Equal(t, "", out.Description)
	assert.Equal(t, "", out.Specs.Flat)
}

func TestConvertMomoSkipsBlankVariantNames(t *testing.T) {
	raw := sampleRaw()
	raw.Variants = []conversion.Variant{{Name: "  "}, {Name: "紅色"}, {Name: ""}}

	out := Convert(raw, PlatformMomo)
	assert.Equal(t, "紅色", out.Specs.Flat)
}

func TestConvertPChomeGroupsVariants(t *testing.T) {
	raw := sampleRaw()
	raw.Variants = []conversion.Variant{
		{Name: "顏色:黑色,尺寸:M"},
		{Name: "顏色:白色,尺寸:L"},
	}

	out := Convert(raw, PlatformPChome)

	// Description stays plain text for the two-layer target.
	assert.Equal(t, raw.Description, out.Description)
	assert.Equal(t, []string{"顏色", "尺寸"}, out.Specs.Keys)
	assert.Equal(t, []string{"黑色", "白色"}, out.Specs.Groups["顏色"])
	assert.Equal(t, []string{"M", "L"}, out.Specs.Groups["尺寸"])
}

func TestConvertIsDeterministic(t *testing.T) {
	raw := sampleRaw()
	first := Convert(raw, PlatformPChome)
	second := Convert(raw, PlatformPChome)
	assert.Equal(t, first, second)
}

func TestConvertPanicsOnUnregisteredPlatform(t *testing.T) {
	assert.Panics(t, func() {
		Convert(sampleRaw(), Platform("ebay"))
	})
}

func TestHeadersPerPlatform(t *testing.T) {
	assert.Equal(t,
		[]string{"商品名稱", "商品描述", "售價", "商品規格", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		Headers(PlatformMomo))
	assert.Equal(t,
		[]string{"商品名稱", "商品描述", "售價", "規格名稱", "規格選項", "商品主圖", "商品圖片2", "商品圖片3", "商品分類", "品牌"},
		Headers(PlatformPChome))

	assert.False(t, IsTwoLayer(PlatformMomo))
	assert.True(t, IsTwoLayer(PlatformPChome))
	assert.False(t, IsTwoLayer(PlatformYahoo))
}
