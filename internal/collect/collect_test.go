package collect

import (
	"strings"
	"testing"

	"github.com/siteforge/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAssemblesDocument(t *testing.T) {
	snap := Snapshot{
		KeyUserProfile:         `{"firstName":"Jordan","lastName":"Baker","websiteName":"Baker Ceramics","phone":"+1 555 0100"}`,
		KeySelectedPalette:     `{"name":"Earthen","description":"Warm tones","colors":["#8d5524","#e0ac69","#f1e4d4"]}`,
		KeyAppName:             "Baker Ceramics",
		KeySelectedCatalog:     "grid",
		KeySelectedProductPage: "detailed",
		KeyPageContent:         `{"product1Name":"Bowl","product1Price":"24.00"}`,
		KeyPageImages:          `{"product1Image":"data:image/jpeg;base64,/9j/4AAQ"}`,
		KeyLogoSize:            "128",
		KeyLogoViewerZoom:      "1.5",
		KeyAdminEvalRequested:  "true",
		KeyAdminEvalAt:         "2026-08-01T12:05:00Z",
		KeyUserName:            "Jordan",
		KeyUserEmail:           "jordan@example.com",
	}

	doc := Collect(snap)

	assert.Equal(t, "1.0", doc.Meta.Version)
	assert.Equal(t, "wizard", doc.Meta.Source)
	assert.False(t, doc.Meta.CreatedAt.IsZero())

	assert.Equal(t, "Jordan", doc.User.Name)
	assert.Equal(t, "jordan@example.com", doc.User.Email)
	assert.Equal(t, "Baker Ceramics", doc.Profile.WebsiteName)
	assert.Equal(t, "grid", doc.Website.Catalog)

	assert.Equal(t, []string{"#8d5524", "#e0ac69", "#f1e4d4"}, doc.Branding.Palette.Colors)

	require.NotNil(t, doc.Branding.Settings.Size)
	assert.Equal(t, 128.0, *doc.Branding.Settings.Size)
	assert.Nil(t, doc.Branding.Settings.BorderRadius, "absent numeric slot defaults to null")
	require.NotNil(t, doc.Branding.Viewer.Zoom)
	assert.Equal(t, 1.5, *doc.Branding.Viewer.Zoom)

	products := doc.Assets.Content["products"].([]any)
	require.Len(t, products, 1)
	images := doc.Assets.Images["productImages"].([]any)
	require.Len(t, images, 1)

	assert.True(t, doc.Flags.AdminEvaluationRequested)
	assert.Equal(t, "2026-08-01T12:05:00Z", doc.Flags.AdminEvaluationRequestedAt)
}

func TestCollectUsernameFallback(t *testing.T) {
	doc := Collect(Snapshot{KeyUserNameAlt: "alt-name"})
	assert.Equal(t, "alt-name", doc.User.Name)
}

func TestCollectNonNumericSettingsAreNull(t *testing.T) {
	doc := Collect(Snapshot{
		KeyLogoSize:          "not-a-number",
		KeyLogoViewerOffsetX: "",
	})

	assert.Nil(t, doc.Branding.Settings.Size)
	assert.Nil(t, doc.Branding.Viewer.OffsetX)
}

func TestCollectGeneratedLogoWins(t *testing.T) {
	snap := Snapshot{
		KeyGeneratedLogo: "data:image/svg+xml;base64," + strings.Repeat("A", 4096),
		KeyUploadedLogo:  "data:image/jpeg;base64,BBBB",
	}

	doc := Collect(snap)

	require.NotNil(t, doc.Branding.Logo)
	assert.Equal(t, types.LogoGenerated, doc.Branding.Logo.Type)
	assert.Equal(t, "image/svg+xml", doc.Branding.Logo.MimeType)
	assert.Equal(t, 4096*3/4/1024, doc.Branding.Logo.SizeKB)
}

func TestCollectUploadedLogoFallback(t *testing.T) {
	doc := Collect(Snapshot{KeyUploadedLogo: "data:image/jpeg;base64,BBBB"})

	require.NotNil(t, doc.Branding.Logo)
	assert.Equal(t, types.LogoUploaded, doc.Branding.Logo.Type)
	assert.Equal(t, "image/jpeg", doc.Branding.Logo.MimeType)
}

func TestCollectNoLogo(t *testing.T) {
	doc := Collect(Snapshot{})
	assert.Nil(t, doc.Branding.Logo)
}

func TestCollectMimeDefaultsToPNG(t *testing.T) {
	doc := Collect(Snapshot{KeyGeneratedLogo: "rawbase64withoutprefix"})

	require.NotNil(t, doc.Branding.Logo)
	assert.Equal(t, "image/png", doc.Branding.Logo.MimeType)
}

func TestCollectMalformedSlotsAreTotal(t *testing.T) {
	doc := Collect(Snapshot{
		KeyUserProfile:     "{not json",
		KeySelectedPalette: "[]",
		KeyPageContent:     "null",
	})

	assert.Equal(t, "", doc.Profile.WebsiteName)
	assert.Empty(t, doc.Branding.Palette.Colors)
	products := doc.Assets.Content["products"].([]any)
	assert.Empty(t, products)
}

func TestDisplayCopyRedactsLogoData(t *testing.T) {
	doc := Collect(Snapshot{KeyGeneratedLogo: "data:image/png;base64," + strings.Repeat("A", 2048)})

	display := DisplayCopy(doc)

	require.NotNil(t, display.Branding.Logo)
	assert.Contains(t, display.Branding.Logo.Data, "KB")
	assert.NotContains(t, display.Branding.Logo.Data, "AAAA")
	assert.Contains(t, doc.Branding.Logo.Data, "AAAA", "original document is untouched")
}

func TestFormattedJSONRedacts(t *testing.T) {
	doc := Collect(Snapshot{KeyGeneratedLogo: "data:image/png;base64," + strings.Repeat("B", 2048)})

	formatted, err := FormattedJSON(doc)
	require.NoError(t, err)
	assert.NotContains(t, formatted, "BBBB")
	assert.Contains(t, formatted, "image/png")
}
