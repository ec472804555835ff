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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jetsetilly/ardugo/firmware"
	"github.com/jetsetilly/ardugo/gui"
	"github.com/jetsetilly/ardugo/gui/sdlplay"
	"github.com/jetsetilly/ardugo/hardware"
	"github.com/jetsetilly/ardugo/logger"
	"github.com/jetsetilly/ardugo/modalflag"
	"github.com/jetsetilly/ardugo/performance"
	"github.com/jetsetilly/ardugo/playmode"
	"github.com/jetsetilly/ardugo/statsview"
	"github.com/jetsetilly/ardugo/version"
	"github.com/jetsetilly/ardugo/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() must only be called as part of a larger loop from the main
	// thread. it should service all gui events that are not safe to do in
	// sub-threads
	Service()
}

// communication between the main() function and the launch() function. this
// is required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels
	creation      chan GuiCreator
	creationError chan error

	// a function to be run in its entirety on the main thread. used by the
	// cooperative execution model, where the gui and the simulation share
	// one thread
	mainFunc       chan func() error
	mainFuncResult chan error
}

// run the function on the main thread and wait for it to finish.
func (sync *mainSync) runOnMain(f func() error) error {
	sync.mainFunc <- f
	return <-sync.mainFuncResult
}

// #mainthread
func main() {
	sync := &mainSync{
		state:          make(chan stateRequest),
		creator:        make(chan func() (GuiCreator, error)),
		creation:       make(chan GuiCreator),
		creationError:  make(chan error),
		mainFunc:       make(chan func() error),
		mainFuncResult: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with a reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	done := false
	var scr GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			// destroy existing gui
			if scr != nil {
				scr.Destroy(os.Stderr)
			}

			g, err := creator()
			if err != nil {
				sync.creationError <- err
				scr = nil
			} else {
				scr = g
				sync.creation <- g
			}

		case f := <-sync.mainFunc:
			sync.mainFuncResult <- f()

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if scr != nil {
					scr.Destroy(os.Stderr)
				}
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if scr != nil {
				scr.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses the mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = play(md, sync)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		vrsn, rev, _ := version.Version()
		fmt.Printf("%s (%s)\n", vrsn, rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func play(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	coop := md.AddBool("coop", false, "run simulation and GUI cooperatively on one thread")
	scale := md.AddFloat64("scale", 4.0, "display scaling")
	wav := md.AddString("wav", "", "record audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("firmware file required for %s mode", md)
	case 1:
		img, err := firmware.Load(md.GetArg(0))
		if err != nil {
			return err
		}

		ard, err := hardware.NewArduboy("atmega32u4")
		if err != nil {
			return err
		}

		if err := ard.AttachFirmware(img); err != nil {
			return err
		}

		// add wavwriter mixer if wav argument has been specified
		if *wav != "" {
			aw, err := wavwriter.NewWavWriter(*wav)
			if err != nil {
				return err
			}
			ard.Speaker.AddMixer(aw)
		}

		defer func() {
			if err := ard.End(); err != nil {
				fmt.Fprintf(os.Stderr, "* %v\n", err)
			}
		}()

		events := make(gui.Events, 64)

		if *coop {
			// cooperative model: window creation, simulation and gui
			// servicing all happen on the main thread, in one closure
			return sync.runOnMain(func() error {
				scr, err := sdlplay.NewSdlPlay(ard.Display, float32(*scale))
				if err != nil {
					return err
				}
				defer scr.Destroy(os.Stderr)

				ard.AddFrameTrigger(scr)
				ard.Speaker.AddMixer(scr)

				return playmode.Play(ard, scr, events, true)
			})
		}

		// dual-thread model: create gui on the main thread, simulate here
		sync.creator <- func() (GuiCreator, error) {
			return sdlplay.NewSdlPlay(ard.Display, float32(*scale))
		}

		var scr *sdlplay.SdlPlay
		select {
		case g := <-sync.creation:
			scr = g.(*sdlplay.SdlPlay)
		case err := <-sync.creationError:
			return err
		}

		ard.AddFrameTrigger(scr)
		ard.Speaker.AddMixer(scr)

		return playmode.Play(ard, scr, events, false)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddBool("profile", false, "write cpu and memory profiles")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("firmware file required for %s mode", md)
	case 1:
		return performance.Check(os.Stdout, *profile, md.GetArg(0), *duration)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}
