// Package png builds a PNG file grammar on top of package datamodel: a
// signature, followed by a repeated sequence of chunks, each either an
// IHDR-shaped header (weight 10) or a generic type-plus-data chunk
// (weight 5), trailed by a CRC32 computed over the chunk's own bytes.
package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/5l1v3r1/fuddly/datamodel"
	"github.com/5l1v3r1/fuddly/walker"
)

// signature is the eight-byte PNG magic.
const signature = "\x89PNG\r\n\x1a\n"

// New returns a PNG_model root node with the production chunk-count range
// (2 to 200, inclusive).
func New() walker.Node {
	return NewWithChunkRange(2, 200)
}

// NewWithChunkRange returns a PNG_model root node whose chunks collection
// ranges over [minChunks, maxChunks] instead of the production bound.
// Tests use a far smaller range: walking 2 to 200 repeated chunks
// exhaustively is intractable to assert on directly, even though the
// production grammar should still declare the real bound.
func NewWithChunkRange(minChunks, maxChunks int) walker.Node {
	sig := datamodel.NewTerminal("sig", datamodel.NewStringValue([]byte(signature), 8, 8))
	sig.ClearAttr(walker.AttrMutable)

	chunks := datamodel.NewRepeated("chunks", minChunks, maxChunks, buildChunk)

	return datamodel.NewAlternation("PNG_model", datamodel.Alternative{
		Name:   "PNG_model",
		Weight: 1,
		Build:  func() []walker.Node { return []walker.Node{sig, chunks} },
	})
}

// buildChunk constructs one repeated unit of the chunks collection: a
// length field, an IHDR-or-generic alternation, and a trailing CRC32
// computed over whichever alternative was chosen.
func buildChunk(idx int) walker.Node {
	lenNode := datamodel.NewTerminal("len", datamodel.NewIntValueRange(0, 1<<32-1, 32))

	ihdrAlt := datamodel.Alternative{
		Name:   "IHDR",
		Weight: 10,
		Build: func() []walker.Node {
			return []walker.Node{
				datamodel.NewTerminal("type1", datamodel.NewStringValue([]byte("IHDR"), 4, 4)),
				datamodel.NewTerminal("width", datamodel.NewIntValueRange(0, 1<<32-1, 32)),
				datamodel.NewTerminal("height", datamodel.NewIntValueRange(0, 1<<32-1, 32)),
				datamodel.NewTerminal("bit_depth", datamodel.NewIntValueEnum(8, 1, 2, 4, 8, 16)),
				datamodel.NewTerminal("color_type", datamodel.NewIntValueEnum(8, 0, 2, 3, 4, 6)),
				datamodel.NewTerminal("compression_method", datamodel.NewIntValueEnum(8, 0)),
				datamodel.NewTerminal("filter_method", datamodel.NewIntValueEnum(8, 0)),
				datamodel.NewTerminal("interlace_method", datamodel.NewIntValueEnum(8, 0, 1)),
			}
		},
	}

	genericAlt := datamodel.Alternative{
		Name:   "generic",
		Weight: 5,
		Build: func() []walker.Node {
			typeNode := datamodel.NewTerminal("type2", datamodel.NewStringValue([]byte("IEND"), 4, 4))
			dataGen := datamodel.NewGenFunc("data_gen", false, func() []byte {
				n, _ := lenNode.ValueType().CurrentRawVal()
				if n < 0 {
					n = 0
				}
				// A fuzzed length field can reach the full 32-bit range;
				// the generated payload is capped so the model stays
				// serializable in memory.
				if n > 1<<16 {
					n = 1 << 16
				}
				return bytes.Repeat([]byte{0xAA}, int(n))
			})
			return []walker.Node{typeNode, dataGen}
		},
	}

	chk := datamodel.NewAlternation("chk", ihdrAlt, genericAlt)

	crc := datamodel.NewGenFunc("crc32_gen", true, func() []byte {
		sum := crc32.ChecksumIEEE(chk.GetValue())
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, sum)
		return buf
	})

	return datamodel.NewAlternation("chunk", datamodel.Alternative{
		Name:   "chunk",
		Weight: 1,
		Build:  func() []walker.Node { return []walker.Node{lenNode, chk, crc} },
	})
}
