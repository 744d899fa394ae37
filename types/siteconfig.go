package types

import "time"

// Logo type tags: which wizard slot supplied the embedded image.
const (
	LogoGenerated = "generated"
	LogoUploaded  = "uploaded"
)

// SiteConfigDocument is the canonical unit persisted and exchanged:
// one user's complete site submission, assembled by the collector
// from the wizard's key/value snapshot.
type SiteConfigDocument struct {
	Meta     Meta     `json:"meta"`
	User     UserInfo `json:"user"`
	Profile  Profile  `json:"profile"`
	Website  Website  `json:"website"`
	Branding Branding `json:"branding"`
	Assets   Assets   `json:"assets"`
	Flags    Flags    `json:"flags"`
}

// Meta carries document provenance.
type Meta struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source"`
}

// UserInfo identifies the submitting user. Free text at this layer;
// not re-validated here.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile holds the business profile collected in the first wizard step.
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	// WebsiteName is required by the persistence schema: non-empty,
	// at most 100 characters.
	WebsiteName string `json:"websiteName"`

	Phone string `json:"phone,omitempty"`
}

// Website holds the application-level choices.
type Website struct {
	AppName     string `json:"appName"`
	Catalog     string `json:"catalog"`
	ProductPage string `json:"productPage"`
}

// Branding groups palette, logo and the numeric styling state.
type Branding struct {
	Palette  Palette      `json:"palette"`
	Logo     *Logo        `json:"logo,omitempty"`
	Settings LogoSettings `json:"settings"`
	Viewer   ViewerState  `json:"viewer"`
}

// Palette is the selected color palette. The API schema requires at
// least one color; the wizard recommends exactly three.
type Palette struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Colors      []string `json:"colors"`
}

// Logo is an embedded image, either generated or uploaded.
type Logo struct {
	// Type is LogoGenerated or LogoUploaded.
	Type string `json:"type"`

	// MimeType is sniffed from the data URL prefix, image/png when
	// the prefix is absent.
	MimeType string `json:"mimeType"`

	// Data is the raw data URL, base64 payload included.
	Data string `json:"data"`

	// SizeKB is the decoded size estimate shown in the UI.
	SizeKB int `json:"sizeKB"`
}

// LogoSettings holds numeric styling state. Fields are null when the
// snapshot value is absent or non-numeric.
type LogoSettings struct {
	Size         *float64 `json:"size"`
	BorderRadius *float64 `json:"borderRadius"`
}

// ViewerState holds the logo viewer's viewport state, null per field
// when absent or non-numeric.
type ViewerState struct {
	Zoom    *float64 `json:"zoom"`
	OffsetX *float64 `json:"offsetX"`
	OffsetY *float64 `json:"offsetY"`
}

// Assets carries the normalized content and image collections. The
// maps hold the normalized arrays under fixed keys ("products",
// "team", "productImages", "teamAvatars") plus arbitrary free-form
// keys passed through unchanged.
type Assets struct {
	Content map[string]any `json:"content"`
	Images  map[string]any `json:"images"`
}

// Flags holds the admin-evaluation request state.
type Flags struct {
	AdminEvaluationRequested   bool   `json:"adminEvaluationRequested"`
	AdminEvaluationRequestedAt string `json:"adminEvaluationRequestedAt,omitempty"`
}
