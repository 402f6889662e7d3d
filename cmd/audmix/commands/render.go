// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/device/soft"
	"github.com/ik5/audmix/formats/wav"
)

var (
	renderFlags   voiceFlags
	renderOutput  string
	renderSeconds float64
)

var renderCmd = &cobra.Command{
	Use:   "render FILE...",
	Short: "Mix files offline into a WAV file",
	Long: `Mix every file on the software device and write the result as a
16-bit stereo WAV file at the configured sample rate.

Rendering stops after --seconds, or earlier once every voice has finished.

Example:
  audmix render a.wav b.ogg -o mix.wav --seconds 5 --pan 1500`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderFlags.register(renderCmd.Flags())
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output WAV file")
	renderCmd.Flags().Float64Var(&renderSeconds, "seconds", 10, "maximum length to render")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(_ *cobra.Command, args []string) error {
	if renderSeconds <= 0 {
		return fmt.Errorf("--seconds must be positive, got %v", renderSeconds)
	}

	total := int(renderSeconds * float64(cfg.SampleRate))
	m, dev, err := newMixer(soft.WithCaptureLimit(total*4 + 4))
	if err != nil {
		return err
	}
	defer m.Close()

	ids, err := loadFiles(m, args)
	if err != nil {
		return err
	}

	capture := m.Capture()
	if err := capture.StartCapture(); err != nil {
		return err
	}
	if err := renderFlags.start(m, ids); err != nil {
		return err
	}

	buf := make([]float32, 2*max(cfg.SampleRate/frameRate, 1))
	rendered := 0
	for rendered < total && m.ActiveCount() > 0 {
		n := min(len(buf)/2, total-rendered)
		rendered += dev.Render(buf[:n*2])
		m.DoFrame()
	}

	if err := capture.StopCapture(); err != nil {
		return err
	}
	samples, err := drain(capture)
	if err != nil {
		return err
	}

	f, err := os.Create(renderOutput)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, cfg.SampleRate, 2, samples); err != nil {
		return fmt.Errorf("writing %s: %w", renderOutput, err)
	}

	logger.WithField("file", renderOutput).WithField("frames", rendered).Info("rendered")

	return f.Close()
}

// drain reads captured 16-bit little endian PCM until the capturer ends.
func drain(c device.Capturer) ([]int16, error) {
	var samples []int16

	buf := make([]byte, 16*1024)
	for {
		n, err := c.ReadCapture(buf)
		for i := 0; i+1 < n; i += 2 {
			samples = append(samples, int16(binary.LittleEndian.Uint16(buf[i:])))
		}

		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return samples, nil
		}
	}
}
