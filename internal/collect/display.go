package collect

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/siteforge/apiserver/types"
)

// DisplayCopy deep-copies the document and replaces the logo's raw
// data with a readable placeholder, so large embedded images never
// end up in UI output or logs.
func DisplayCopy(doc types.SiteConfigDocument) types.SiteConfigDocument {
	copied := deepCopy(doc)
	if copied.Branding.Logo != nil {
		copied.Branding.Logo.Data = fmt.Sprintf("[%s image data, ~%d KB]",
			copied.Branding.Logo.MimeType, copied.Branding.Logo.SizeKB)
	}
	return copied
}

// FormattedJSON renders the display copy as indented JSON.
func FormattedJSON(doc types.SiteConfigDocument) (string, error) {
	data, err := json.MarshalIndent(DisplayCopy(doc), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveJSON serializes the full document to a file.
func SaveJSON(doc types.SiteConfigDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// deepCopy roundtrips through JSON so the copy shares no maps or
// slices with the original.
func deepCopy(doc types.SiteConfigDocument) types.SiteConfigDocument {
	data, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var copied types.SiteConfigDocument
	if err := json.Unmarshal(data, &copied); err != nil {
		return doc
	}
	return copied
}
