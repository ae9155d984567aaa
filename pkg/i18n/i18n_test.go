package i18n

import "testing"

func TestLookupPerLanguage(t *testing.T) {
	if got := T(KeyDescCol, LangEN); got != "Product Name" {
		t.Fatalf("unexpected en value %q", got)
	}
	if got := T(KeyDescCol, LangZH); got != "商品名称" {
		t.Fatalf("unexpected zh value %q", got)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	if got := T(KeyShipping, "fr"); got != "Shipping Fee" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestMissingKeyProducesPlaceholder(t *testing.T) {
	if got := T("does_not_exist", LangEN); got != "MISSING_KEY: does_not_exist" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"zh":      LangZH,
		"ZH-CN":   LangZH,
		" zh ":    LangZH,
		"en":      LangEN,
		"":        LangEN,
		"unknown": LangEN,
	}
	for input, want := range tests {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTemplateSubstitution(t *testing.T) {
	got := TF(KeyTax, LangEN, map[string]string{"rate": "1%"})
	if got != "Tax (1%)" {
		t.Fatalf("unexpected substitution %q", got)
	}

	got = TF(KeyUploadSuccess, LangZH, map[string]string{"product_name": "1. 大提琴地毯"})
	if got != "图片已成功关联到: 1. 大提琴地毯" {
		t.Fatalf("unexpected substitution %q", got)
	}
}
