package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paddock-backend/shared/config"
)

func TestAllowedImageType(t *testing.T) {
	config.LoadConfig()

	assert.True(t, AllowedImageType("lemur.jpg"))
	assert.True(t, AllowedImageType("lemur.JPG"))
	assert.True(t, AllowedImageType("heron.png"))
	assert.True(t, AllowedImageType("otter.webp"))
	assert.False(t, AllowedImageType("notes.pdf"))
	assert.False(t, AllowedImageType("script.sh"))
	assert.False(t, AllowedImageType("noextension"))
}

func TestMaxImageSizeDefault(t *testing.T) {
	config.LoadConfig()

	assert.Equal(t, int64(10*1024*1024), MaxImageSize())
}

func TestMaxImageSizeUnits(t *testing.T) {
	t.Setenv("SPECIES_IMAGE_MAX_SIZE", "512KB")
	config.LoadConfig()
	assert.Equal(t, int64(512*1024), MaxImageSize())

	t.Setenv("SPECIES_IMAGE_MAX_SIZE", "2MB")
	config.LoadConfig()
	assert.Equal(t, int64(2*1024*1024), MaxImageSize())

	t.Setenv("SPECIES_IMAGE_MAX_SIZE", "garbage")
	config.LoadConfig()
	assert.Equal(t, int64(10*1024*1024), MaxImageSize())
}
