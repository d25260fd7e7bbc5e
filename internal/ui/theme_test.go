package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/mp3-tagger/internal/model"
)

func TestAppTheme_PinsVariant(t *testing.T) {
	dark := NewAppTheme(model.ThemeDark)
	light := NewAppTheme(model.ThemeLight)

	if dark.Variant() != theme.VariantDark || light.Variant() != theme.VariantLight {
		t.Fatal("Unexpected variants")
	}

	// The requested variant is ignored
	if dark.Color(theme.ColorNameBackground, theme.VariantLight) != dark.Color(theme.ColorNameBackground, theme.VariantDark) {
		t.Error("Dark theme must not follow the requested variant")
	}
	if dark.Color(theme.ColorNameBackground, theme.VariantLight) == light.Color(theme.ColorNameBackground, theme.VariantLight) {
		t.Error("Dark and light backgrounds should differ")
	}
}

func TestAppTheme_CompactSizes(t *testing.T) {
	th := NewAppTheme(model.ThemeLight)

	if th.Size(theme.SizeNamePadding) >= theme.DefaultTheme().Size(theme.SizeNamePadding) {
		t.Error("Padding should be smaller than the default")
	}
	if th.Size(theme.SizeNameInlineIcon) != theme.DefaultTheme().Size(theme.SizeNameInlineIcon) {
		t.Error("Unlisted sizes should come from the default theme")
	}
}

func TestApplyTheme(t *testing.T) {
	app := test.NewApp()

	for _, pref := range []model.Theme{model.ThemeDark, model.ThemeLight, model.ThemeDark} {
		ApplyTheme(app, pref)

		applied, ok := app.Settings().Theme().(*AppTheme)
		if !ok {
			t.Fatalf("Expected *AppTheme, got %T", app.Settings().Theme())
		}
		if (applied.Variant() == theme.VariantDark) != pref.IsDark() {
			t.Errorf("Applied variant does not match %s", pref)
		}
	}
}
