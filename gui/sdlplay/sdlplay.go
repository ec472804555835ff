// This file is part of Ardugo.
//
// Ardugo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Ardugo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Ardugo.  If not, see <https://www.gnu.org/licenses/>.

package sdlplay

import (
	"fmt"
	"io"
	"sync"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/gui"
	"github.com/jetsetilly/ardugo/hardware/peripherals/ssd1306"

	"github.com/veandco/go-sdl2/sdl"
)

const pixelDepth = 4

const windowTitle = "Ardugo"

// SdlPlay is the SDL playmode window. It implements the gui.GUI interface
// and the hardware.FrameTrigger interface.
//
// NewFrame() may be called from the simulation goroutine; everything else
// that touches SDL must only be called from the main thread.
type SdlPlay struct {
	scr *ssd1306.SSD1306

	// connects the SDL event loop with the session
	events gui.Events

	// all audio is handled by the sound type
	snd *sound

	// sdl stuff
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is written by NewFrame() on the simulation goroutine and
	// uploaded to the texture by Service() on the main thread
	crit       sync.Mutex
	pixels     []byte
	frameReady bool
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay type.
//
// MUST ONLY be called from the #mainthread.
func NewSdlPlay(scr *ssd1306.SSD1306, scale float32) (*SdlPlay, error) {
	pl := &SdlPlay{scr: scr}

	if scale <= 0 {
		scale = 4.0
	}

	err := sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	pl.window, err = sdl.CreateWindow(windowTitle,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(ssd1306.Columns)*scale), int32(float32(ssd1306.Rows)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	pl.renderer, err = sdl.CreateRenderer(pl.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	err = pl.renderer.SetLogicalSize(ssd1306.Columns, ssd1306.Rows)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// texture is the same size as the panel. we copy the pixels to it on
	// every frame
	pl.texture, err = pl.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		ssd1306.Columns, ssd1306.Rows)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	pl.pixels = make([]byte, ssd1306.Columns*ssd1306.Rows*pixelDepth)

	// preset alpha channel - we never change the value of this channel
	for i := pixelDepth - 1; i < len(pl.pixels); i += pixelDepth {
		pl.pixels[i] = 255
	}

	// initialise the sound system
	pl.snd, err = newSound()
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	setupService()

	return pl, nil
}

// SetEventChannel implements the gui.GUI interface.
func (pl *SdlPlay) SetEventChannel(events gui.Events) {
	pl.events = events
}

// NewFrame implements the hardware.FrameTrigger interface. It converts the
// display's luminance buffer to host pixels; the upload to the texture
// happens later, in Service(), on the main thread.
func (pl *SdlPlay) NewFrame() error {
	pl.crit.Lock()
	defer pl.crit.Unlock()

	pl.render()
	pl.frameReady = true

	return nil
}

func (pl *SdlPlay) render() {
	if !pl.scr.DisplayOn() {
		for i := 0; i < len(pl.pixels); i += pixelDepth {
			pl.pixels[i] = 0
			pl.pixels[i+1] = 0
			pl.pixels[i+2] = 0
		}
		return
	}

	opacity := pl.scr.Opacity()
	inverted := pl.scr.Inverted()
	mirrorH := pl.scr.MirrorHorizontal()
	mirrorV := pl.scr.MirrorVertical()

	// reading the luminance buffer while the simulation goroutine writes to
	// it. a torn frame is invisible in practice and is corrected on the next
	// frame
	luma := pl.scr.Luminance()

	for y := 0; y < ssd1306.Rows; y++ {
		for x := 0; x < ssd1306.Columns; x++ {
			l := luma[y*ssd1306.Columns+x]
			if inverted {
				l = 255 - l
			}
			v := uint8(float32(l) * opacity)

			dx := x
			if mirrorH {
				dx = ssd1306.Columns - 1 - x
			}
			dy := y
			if mirrorV {
				dy = ssd1306.Rows - 1 - y
			}

			i := (dy*ssd1306.Columns + dx) * pixelDepth
			pl.pixels[i] = v
			pl.pixels[i+1] = v
			pl.pixels[i+2] = v
		}
	}
}

// SetAudio implements the speaker.Mixer interface. May be called from the
// simulation goroutine.
func (pl *SdlPlay) SetAudio(samples []int16) error {
	return pl.snd.setAudio(samples)
}

// EndMixing implements the speaker.Mixer interface.
func (pl *SdlPlay) EndMixing() error {
	return pl.snd.endMixing()
}

// Destroy implements the gui.GUI interface.
//
// MUST ONLY be called from the #mainthread.
func (pl *SdlPlay) Destroy(output io.Writer) {
	if pl.snd != nil {
		if err := pl.snd.endMixing(); err != nil {
			fmt.Fprintf(output, "%v\n", err)
		}
	}

	if pl.texture != nil {
		if err := pl.texture.Destroy(); err != nil {
			fmt.Fprintf(output, "%v\n", err)
		}
	}
	if pl.renderer != nil {
		if err := pl.renderer.Destroy(); err != nil {
			fmt.Fprintf(output, "%v\n", err)
		}
	}
	if pl.window != nil {
		if err := pl.window.Destroy(); err != nil {
			fmt.Fprintf(output, "%v\n", err)
		}
	}

	sdl.Quit()
}
