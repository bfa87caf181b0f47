package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glmandel/navigation"
	"github.com/stewi1014/glmandel/programs"
)

func init() {
	// glfw and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	mainContext, mainQuit := context.WithCancelCause(context.Background())

	func() {
		defer CatchPanicToContext(mainQuit)
		mainQuit(run(mainContext, DefaultWindowConfig()))
	}()

	<-mainContext.Done()
	if err := context.Cause(mainContext); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
		ShowErrorDialog("Mandelbrot", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config WindowConfig) error {
	err := glfw.Init()
	if err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	window, err := NewRenderWindow(config)
	if err != nil {
		return err
	}
	defer window.Destroy()

	program, err := programs.LookupProgram("mandelbrot")
	if err != nil {
		return err
	}

	width, height := window.FramebufferSize()
	renderer, err := NewRenderer(program, width, height, config.Debug)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	controller := navigation.NewController(renderer, width, height, config.Navigation)

	skipping := false
	for ctx.Err() == nil {
		for _, event := range window.PollEvents() {
			if controller.Handle(event) == navigation.ActionExit {
				return nil
			}
		}

		if controller.Handle(navigation.Idle{}) != navigation.ActionRedraw {
			continue
		}

		err := renderer.Draw(controller.Params())
		if errors.Is(err, ErrSurfaceUnavailable) {
			// Only the first of a run of skipped frames is logged.
			if !skipping {
				log.Println("skipping frames:", err)
			}
			skipping = true
			continue
		}
		if err != nil {
			return err
		}
		skipping = false
		window.SwapBuffers()
	}

	return context.Cause(ctx)
}
