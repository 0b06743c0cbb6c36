package reportserver

import (
	"embed"
	"fmt"
)

//go:embed assets/*
var embeddedAssets embed.FS

const placeholderAsset = "assets/placeholder.html"

// placeholderPage returns the page served while the report directory has no index.
func placeholderPage() ([]byte, error) {
	data, err := embeddedAssets.ReadFile(placeholderAsset)
	if err != nil {
		return nil, fmt.Errorf("reportserver: read placeholder: %w", err)
	}
	return data, nil
}
