package render

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// AssetCache memoizes slide layouts across lessons of one run. It is owned
// and injected by the caller, never module-global, and Clear makes the
// lifecycle explicit so test runs stay isolated.
type AssetCache struct {
	c *gocache.Cache
}

func NewAssetCache() *AssetCache {
	return &AssetCache{c: gocache.New(gocache.NoExpiration, 0)}
}

// Layout returns the cached layout for a slide, computing it on first use.
func (a *AssetCache) Layout(slide types.Slide) SlideLayout {
	key := string(slide.Kind) + "\x00" + slide.SpeakerName + "\x00" + slide.Text
	if v, ok := a.c.Get(key); ok {
		return v.(SlideLayout)
	}
	layout := LayoutSlide(slide)
	a.c.SetDefault(key, layout)
	return layout
}

// Clear drops every cached asset so nothing leaks across requests.
func (a *AssetCache) Clear() {
	a.c.Flush()
}

// Len reports the number of cached layouts.
func (a *AssetCache) Len() int {
	return a.c.ItemCount()
}
