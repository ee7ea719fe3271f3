// Copyright 2026 The Nakama Search Core Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import "encoding/binary"

// EncodePositions packs an ascending list of token positions into the
// opaque Value payload a posting's Matcher carries, for fields that store
// positions alongside doc ids. Positions are delta-encoded varints.
func EncodePositions(positions []int) []byte {
	if len(positions) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(positions)*2)
	var tmp [binary.MaxVarintLen64]byte
	prev := 0
	for _, p := range positions {
		n := binary.PutUvarint(tmp[:], uint64(p-prev))
		buf = append(buf, tmp[:n]...)
		prev = p
	}
	return buf
}

// DecodePositions unpacks a Value payload produced by EncodePositions back
// into an ascending list of token positions.
func DecodePositions(buf []byte) []int {
	if len(buf) == 0 {
		return nil
	}
	var out []int
	prev := 0
	for len(buf) > 0 {
		delta, n := binary.Uvarint(buf)
		if n <= 0 {
			break
		}
		buf = buf[n:]
		prev += int(delta)
		out = append(out, prev)
	}
	return out
}
