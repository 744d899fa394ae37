package collect

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/siteforge/apiserver/types"
)

// Snapshot is the wizard's key/value state, captured by a boundary
// adapter (browser storage, request body) and passed in explicitly.
// The key set is fixed by contract; see the snapshot key constants.
type Snapshot map[string]string

// Snapshot keys consumed by Collect.
const (
	KeyUserProfile         = "userProfile"
	KeySelectedPalette     = "selectedPalette"
	KeyGeneratedLogo       = "generatedLogo"
	KeyUploadedLogo        = "uploadedLogo"
	KeyAppName             = "appName"
	KeySelectedCatalog     = "selectedCatalog"
	KeySelectedProductPage = "selectedProductPage"
	KeyPageContent         = "pageContent"
	KeyPageImages          = "pageImages"
	KeyLogoSize            = "logoSize"
	KeyLogoBorderRadius    = "logoBorderRadius"
	KeyLogoViewerZoom      = "logoViewerZoom"
	KeyLogoViewerOffsetX   = "logoViewerOffsetX"
	KeyLogoViewerOffsetY   = "logoViewerOffsetY"
	KeyAdminEvalRequested  = "adminEvaluationRequested"
	KeyAdminEvalAt         = "adminEvaluationRequestedAt"
	KeyUserName            = "userName"
	KeyUserNameAlt         = "username"
	KeyUserEmail           = "userEmail"
)

const (
	documentVersion = "1.0"
	documentSource  = "wizard"
	defaultMimeType = "image/png"
)

// Collect assembles the canonical document from a snapshot. Pure
// apart from the creation timestamp; it performs no I/O and never
// fails — absent or malformed slots default to empty values.
func Collect(snap Snapshot) types.SiteConfigDocument {
	doc := types.SiteConfigDocument{
		Meta: types.Meta{
			Version:   documentVersion,
			CreatedAt: time.Now().UTC(),
			Source:    documentSource,
		},
		User: types.UserInfo{
			Name:  firstNonEmpty(snap[KeyUserName], snap[KeyUserNameAlt]),
			Email: snap[KeyUserEmail],
		},
		Profile: collectProfile(snap),
		Website: types.Website{
			AppName:     snap[KeyAppName],
			Catalog:     snap[KeySelectedCatalog],
			ProductPage: snap[KeySelectedProductPage],
		},
		Branding: types.Branding{
			Palette: collectPalette(snap),
			Logo:    collectLogo(snap),
			Settings: types.LogoSettings{
				Size:         parseNumber(snap[KeyLogoSize]),
				BorderRadius: parseNumber(snap[KeyLogoBorderRadius]),
			},
			Viewer: types.ViewerState{
				Zoom:    parseNumber(snap[KeyLogoViewerZoom]),
				OffsetX: parseNumber(snap[KeyLogoViewerOffsetX]),
				OffsetY: parseNumber(snap[KeyLogoViewerOffsetY]),
			},
		},
		Assets: types.Assets{
			Content: NormalizeContent(parseObject(snap[KeyPageContent])),
			Images:  NormalizeImages(parseObject(snap[KeyPageImages])),
		},
		Flags: types.Flags{
			AdminEvaluationRequested:   snap[KeyAdminEvalRequested] == "true",
			AdminEvaluationRequestedAt: snap[KeyAdminEvalAt],
		},
	}
	return doc
}

func collectProfile(snap Snapshot) types.Profile {
	obj := parseObject(snap[KeyUserProfile])
	return types.Profile{
		FirstName:   asString(obj["firstName"]),
		LastName:    asString(obj["lastName"]),
		WebsiteName: asString(obj["websiteName"]),
		Phone:       asString(obj["phone"]),
	}
}

func collectPalette(snap Snapshot) types.Palette {
	obj := parseObject(snap[KeySelectedPalette])
	palette := types.Palette{
		Name:        asString(obj["name"]),
		Description: asString(obj["description"]),
		Colors:      []string{},
	}
	if colors, ok := obj["colors"].([]any); ok {
		for _, c := range colors {
			if s := asString(c); s != "" {
				palette.Colors = append(palette.Colors, s)
			}
		}
	}
	return palette
}

// collectLogo picks the generated logo over the uploaded one when
// both slots are present, and derives the display metadata.
func collectLogo(snap Snapshot) *types.Logo {
	data := snap[KeyGeneratedLogo]
	logoType := types.LogoGenerated
	if data == "" {
		data = snap[KeyUploadedLogo]
		logoType = types.LogoUploaded
	}
	if data == "" {
		return nil
	}
	return &types.Logo{
		Type:     logoType,
		MimeType: sniffMime(data),
		Data:     data,
		SizeKB:   estimateSizeKB(data),
	}
}

// sniffMime reads the "data:<mime>;base64," prefix, image/png when
// the prefix is absent or malformed.
func sniffMime(dataURL string) string {
	if !strings.HasPrefix(dataURL, "data:") {
		return defaultMimeType
	}
	rest := dataURL[len("data:"):]
	end := strings.IndexAny(rest, ";,")
	if end <= 0 {
		return defaultMimeType
	}
	return rest[:end]
}

// estimateSizeKB is floor(base64length * 3/4 / 1024) over the payload
// after the comma, or the whole string for bare base64.
func estimateSizeKB(dataURL string) int {
	payload := dataURL
	if i := strings.IndexByte(dataURL, ','); i >= 0 {
		payload = dataURL[i+1:]
	}
	return len(payload) * 3 / 4 / 1024
}

// parseObject decodes a JSON object slot, empty map on absent or
// malformed input.
func parseObject(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		return map[string]any{}
	}
	return obj
}

// parseNumber returns nil for absent or non-numeric values.
func parseNumber(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
