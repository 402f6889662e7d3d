// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/device/otoout"
)

// frameRate is how often the frame tick runs while playing.
const frameRate = 60

var playFlags voiceFlags

var playCmd = &cobra.Command{
	Use:   "play FILE...",
	Short: "Play files through the speakers",
	Long: `Play every file at once through the default output device.

Playback ends when every voice has finished, or on Ctrl-C.

Examples:
  audmix play shot.wav --volume 80 --pan -750
  audmix play engine.ogg --loop --pos 10,0,-5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	playFlags.register(playCmd.Flags())
}

func runPlay(cmd *cobra.Command, args []string) error {
	m, dev, err := newMixer()
	if err != nil {
		return err
	}
	defer m.Close()

	ids, err := loadFiles(m, args)
	if err != nil {
		return err
	}

	player, err := otoout.New(dev, otoout.Float32, 0)
	if err != nil {
		return err
	}
	defer player.Close()

	if err := playFlags.start(m, ids); err != nil {
		return err
	}
	player.Start()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted")
			return nil
		case <-ticker.C:
		}

		m.DoFrame()
		if err := player.Err(); err != nil {
			return err
		}
		if m.ActiveCount() == 0 {
			return nil
		}
	}
}

