// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/formats/wav"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Print the decoded format of files",
	Long: `Decode every file the way play does and print the buffer layout, size
and duration. WAV files also show the format stored in the file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, _, err := newMixer()
	if err != nil {
		return err
	}
	defer m.Close()

	out := cmd.OutOrStdout()
	for _, path := range args {
		id, err := loadFile(m, path)
		if err != nil {
			return err
		}

		info, err := m.BufferInfo(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s: %s %d Hz, %d bytes, %v\n", path, info.Format, info.SampleRate, info.Size, info.Duration)

		if codec, _ := codecFor(path); codec == audmix.CodecWAV {
			if err := printWAVHeader(cmd, path); err != nil {
				return err
			}
		}

		if err := m.Unload(id); err != nil {
			return err
		}
	}

	return nil
}

func printWAVHeader(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr, err := wav.Probe(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  stored as %d-bit, %d channels, %d Hz\n", hdr.BitDepth, hdr.Channels, hdr.SampleRate)

	return nil
}
