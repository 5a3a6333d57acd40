package mediasync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebluefowl/spacesync/internal/host"
)

func TestExpandVariants(t *testing.T) {
	md := &host.Metadata{
		File:  "2024/01/photo.jpg",
		Sizes: host.Sizes{{Name: "thumb", File: "photo-150x150.jpg"}},
	}
	assert.Equal(t,
		[]string{"/uploads/2024/01/photo.jpg", "/uploads/2024/01/photo-150x150.jpg"},
		ExpandVariants("/uploads", md))
}

func TestExpandVariantsKeepsHostOrder(t *testing.T) {
	raw := `{
		"file": "2024/01/photo.jpg",
		"sizes": {
			"medium": {"file": "photo-300x200.jpg"},
			"thumbnail": {"file": "photo-150x150.jpg"},
			"broken": {"width": 10},
			"large": {"file": "photo-1024x683.jpg"}
		}
	}`
	var md host.Metadata
	require.NoError(t, json.Unmarshal([]byte(raw), &md))

	assert.Equal(t, []string{
		"/uploads/2024/01/photo.jpg",
		"/uploads/2024/01/photo-300x200.jpg",
		"/uploads/2024/01/photo-150x150.jpg",
		"/uploads/2024/01/photo-1024x683.jpg",
	}, ExpandVariants("/uploads", &md))
}

func TestExpandVariantsEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		md   *host.Metadata
		want []string
	}{
		{"nil metadata", nil, nil},
		{"no original", &host.Metadata{Sizes: host.Sizes{{Name: "thumb", File: "a-1.jpg"}}}, nil},
		{"original only", &host.Metadata{File: "doc.pdf"}, []string{"/u/doc.pdf"}},
		{
			"no extension keeps full path as base",
			&host.Metadata{File: "2024/scan", Sizes: host.Sizes{{Name: "t", File: "-thumb"}}},
			[]string{"/u/2024/scan", "/u/2024/scan-thumb"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandVariants("/u", tt.md))
		})
	}
}
