// Package i18n holds the static UI string table. Lookups never fail: an
// unknown language falls back to English and an unknown key yields a
// visibly-marked placeholder so broken references show up in output instead
// of halting a render.
package i18n

import (
	"strings"
)

const (
	LangEN = "en"
	LangZH = "zh"
)

// Column and label keys used by the sheet views and the table renderer.
const (
	KeySeqCol     = "sn_col"
	KeyImageCol   = "image_col"
	KeyDescCol    = "desc_col"
	KeyPriceCol   = "price_col"
	KeyQtyCol     = "qty_col"
	KeyTotalCol   = "total_col"
	KeySubtotal   = "subtotal_label"
	KeyTax        = "tax_label"
	KeyShipping   = "shipping_label"
	KeyGrandTotal = "grand_total_label"

	KeyUploadSuccess     = "upload_success_message"
	KeyNoProducts        = "no_products_warning"
	KeyFontWarning       = "font_warning"
	KeyImageError        = "image_generation_error"
	KeyNewProductDefault = "new_product_default_name"
)

var translations = map[string]map[string]string{
	KeySeqCol:     {LangZH: "S.N.", LangEN: "S.N."},
	KeyImageCol:   {LangZH: "图片", LangEN: "Image"},
	KeyDescCol:    {LangZH: "商品名称", LangEN: "Product Name"},
	KeyPriceCol:   {LangZH: "单价(RMB)", LangEN: "Unit Price (RMB)"},
	KeyQtyCol:     {LangZH: "数量(套)", LangEN: "Qty. (Set)"},
	KeyTotalCol:   {LangZH: "总价", LangEN: "Total"},
	KeySubtotal:   {LangZH: "商品总计", LangEN: "Subtotal"},
	KeyTax:        {LangZH: "税价 ({rate})", LangEN: "Tax ({rate})"},
	KeyShipping:   {LangZH: "运费", LangEN: "Shipping Fee"},
	KeyGrandTotal: {LangZH: "最终总计", LangEN: "Grand Total"},

	KeyUploadSuccess:     {LangZH: "图片已成功关联到: {product_name}", LangEN: "Image successfully associated with: {product_name}"},
	KeyNoProducts:        {LangZH: "请先在上方表格中添加商品行。", LangEN: "Please add product rows in the table above first."},
	KeyFontWarning:       {LangZH: "未找到配置的字体文件，中文可能显示为方框。", LangEN: "Configured font file not found. Chinese characters may not display correctly."},
	KeyImageError:        {LangZH: "生成图片时出错: {error}", LangEN: "Error generating image: {error}"},
	KeyNewProductDefault: {LangZH: "新商品", LangEN: "New Product"},
}

// Normalize maps arbitrary client input to a supported language tag.
func Normalize(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case LangZH, "zh-cn", "zh-hans":
		return LangZH
	default:
		return LangEN
	}
}

// T returns the display string for key in the given language.
func T(key, lang string) string {
	byLang, ok := translations[key]
	if !ok {
		return "MISSING_KEY: " + key
	}
	if text, ok := byLang[Normalize(lang)]; ok {
		return text
	}
	if text, ok := byLang[LangEN]; ok {
		return text
	}
	return "MISSING_KEY: " + key
}

// TF resolves key and substitutes {name}-style placeholders from args.
func TF(key, lang string, args map[string]string) string {
	text := T(key, lang)
	if len(args) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
