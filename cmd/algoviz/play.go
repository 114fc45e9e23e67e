package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/playback"
)

// runPlay drives a controller on the real clock and prints every frame it
// lands on. Ctrl+C tears the playback down.
func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seq, _, err := resolve(args[0])
	if err != nil {
		return err
	}

	ctl := playback.New(append(cfg.PlaybackOptions(), playback.WithLogger(logger))...)

	var (
		mu   sync.Mutex
		last = -1
		done = make(chan struct{})
		once sync.Once
	)
	unsubscribe := ctl.Subscribe(func(st playback.Status) {
		mu.Lock()
		defer mu.Unlock()
		if st.Sequence != nil && st.Index != last {
			last = st.Index
			if f, ok := st.Frame(); ok {
				printFrame(os.Stdout, f, st.Total())
			}
		}
		if st.Phase() == playback.Complete {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("> running %s (%d frames, %.1fx)\n\n", seq.Category().Title(), seq.Len(), ctl.Speed())
	if err := ctl.Start(seq); err != nil {
		return err
	}

	select {
	case <-done:
		if cfg.Console {
			for _, line := range seq.Console() {
				fmt.Println(line)
			}
		}
		return nil
	case <-ctx.Done():
		ctl.Teardown()
		logger.Warn("playback interrupted", "index", last)
		return ctx.Err()
	}
}
