// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glyph

import (
	"context"
	"sync/atomic"

	"github.com/gogpu/particles"
	"github.com/gogpu/particles/outline"
)

var globalFont atomic.Pointer[outline.Font]

// LoadFont loads the process-wide font shared by every engine that was not
// given one with WithFont. Once a font is set, later calls return it
// without loading. Concurrent first calls share one underlying load.
//
// Engines created before the font arrives render nothing; call
// Engine.Regenerate after LoadFont returns.
func LoadFont(ctx context.Context, url string) (*outline.Font, error) {
	if f := globalFont.Load(); f != nil {
		return f, nil
	}
	f, err := outline.Load(ctx, url)
	if err != nil {
		return nil, err
	}
	if globalFont.CompareAndSwap(nil, f) {
		particles.Logger().Info("glyph: font ready", "url", url, "family", f.Name())
	}
	return globalFont.Load(), nil
}

// Font returns the process-wide font, or nil before LoadFont succeeds.
func Font() *outline.Font {
	return globalFont.Load()
}
