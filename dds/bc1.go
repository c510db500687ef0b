package dds

import "encoding/binary"

const bc1BlockSize = 8

// bc1Block is one 8-byte BC1 block: two RGB565 endpoints and sixteen 2-bit
// palette indices, texel (x, y) at bits 2*(4*y+x).
type bc1Block struct {
	color0  uint16
	color1  uint16
	indices uint32
}

func readBC1Block(b []byte) bc1Block {
	return bc1Block{
		color0:  binary.LittleEndian.Uint16(b[0:]),
		color1:  binary.LittleEndian.Uint16(b[2:]),
		indices: binary.LittleEndian.Uint32(b[4:]),
	}
}

// index returns the palette index of texel (x, y) inside the block.
func (b bc1Block) index(x, y int) int {
	return int(b.indices>>(2*uint(4*y+x))) & 0x3
}

// palette builds the opaque four-color table. The three-color variant with
// transparent black (color0 <= color1) is not distinguished.
func (b bc1Block) palette() [4][4]byte {
	var p [4][4]byte
	p[0] = expand565(b.color0)
	p[1] = expand565(b.color1)
	for c := 0; c < 3; c++ {
		c0, c1 := uint16(p[0][c]), uint16(p[1][c])
		p[2][c] = byte((2*c0 + c1) / 3)
		p[3][c] = byte((c0 + 2*c1) / 3)
	}
	p[2][3] = 255
	p[3][3] = 255

	return p
}

// expand565 scales a packed RGB565 color to 8 bits per channel, rounding.
func expand565(c uint16) [4]byte {
	r := uint32(c>>11) & 0x1f
	g := uint32(c>>5) & 0x3f
	b := uint32(c) & 0x1f

	return [4]byte{
		byte((r*255 + 15) / 31),
		byte((g*255 + 31) / 63),
		byte((b*255 + 15) / 31),
		255,
	}
}

// decodeBC1 decompresses a width x height BC1 surface into RGBA8 dst, whose
// rows are stride bytes apart, with the surface origin at (ox, oy).
//
// Source row sy lands on destination row oy+height-1-sy. Texel columns are
// mirrored within the part of the block that lies on the surface, so in a
// block with cols visible columns column x lands on cols-1-x. Padding texels
// are dropped.
func decodeBC1(dst []byte, stride, ox, oy int, src []byte, width, height int) {
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4

	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			cols := min(4, width-bx*4)
			off := (by*blocksW + bx) * bc1BlockSize
			block := readBC1Block(src[off : off+bc1BlockSize])
			pal := block.palette()

			for y := 0; y < 4; y++ {
				sy := by*4 + y
				if sy >= height {
					break
				}
				row := oy + height - 1 - sy
				for x := 0; x < cols; x++ {
					dx := bx*4 + cols - 1 - x
					p := row*stride + (ox+dx)*4
					copy(dst[p:p+4], pal[block.index(x, y)][:])
				}
			}
		}
	}
}
