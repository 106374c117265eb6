package winhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowordHiword(t *testing.T) {
	packed := uint32(400) | uint32(300)<<16

	assert.Equal(t, uint16(400), Loword(packed))
	assert.Equal(t, uint16(300), Hiword(packed))

	assert.Equal(t, uint16(0), Loword(0))
	assert.Equal(t, uint16(0), Hiword(0))
	assert.Equal(t, uint16(0xffff), Loword(0xffffffff))
	assert.Equal(t, uint16(0xffff), Hiword(0xffffffff))
}

func TestTextureFormat_SRGBVariant(t *testing.T) {
	assert.Equal(t, TextureFormatBGRA8UnormSrgb, TextureFormatBGRA8Unorm.SRGBVariant())
	assert.Equal(t, TextureFormatRGBA8UnormSrgb, TextureFormatRGBA8Unorm.SRGBVariant())
	assert.Equal(t, TextureFormatBGRA8UnormSrgb, TextureFormatBGRA8UnormSrgb.SRGBVariant())
	assert.Equal(t, TextureFormatUndefined, TextureFormatUndefined.SRGBVariant())
}

func TestColorFromVec(t *testing.T) {
	c := ColorFromVec(DefaultClearColor)
	assert.Equal(t, Color{R: 1, G: 0, B: 0, A: 0.5}, c)
}
