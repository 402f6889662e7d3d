// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// maxEmptyReads ends a stream that keeps returning no data without error.
const maxEmptyReads = 64

// ReadPCM16 drains src and returns every sample converted to 16-bit PCM.
// The source is not closed.
func ReadPCM16(src Source, bufSize int) ([]int16, error) {
	ch := max(src.Channels(), 1)
	bufSize = max(bufSize-bufSize%ch, ch)
	buf := make([]float32, bufSize)

	var pcm []int16
	for empty := 0; empty < maxEmptyReads; {
		n, err := src.ReadSamples(buf)
		if n == 0 {
			empty++
		} else {
			empty = 0
		}

		for _, v := range buf[:n] {
			pcm = append(pcm, utils.Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			return pcm, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	return pcm, nil
}

// PCM16Bytes encodes samples as little endian bytes.
func PCM16Bytes(samples []int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}

	return out
}
