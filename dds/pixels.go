package dds

// swizzleBGRA copies width x height BGRA8 pixels into RGBA8 dst at (ox, oy).
// With flip set, source row sy lands on row oy+height-1-sy.
func swizzleBGRA(dst []byte, stride, ox, oy int, src []byte, width, height int, flip bool) {
	for sy := 0; sy < height; sy++ {
		row := oy + sy
		if flip {
			row = oy + height - 1 - sy
		}
		s := src[sy*width*4 : (sy+1)*width*4]
		d := dst[row*stride+ox*4:]
		for x := 0; x < width; x++ {
			i := x * 4
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = s[i+3]
		}
	}
}

// copyRGBA16F copies half-float RGBA pixels unchanged except for a vertical flip.
func copyRGBA16F(dst []byte, stride, ox, oy int, src []byte, width, height int) {
	rowBytes := width * 8
	for sy := 0; sy < height; sy++ {
		row := oy + height - 1 - sy
		copy(dst[row*stride+ox*8:row*stride+ox*8+rowBytes], src[sy*rowBytes:(sy+1)*rowBytes])
	}
}

// decodeSurface writes one surface of format f into dst at (ox, oy). Faces of
// a cubemap always flip; plain BGRA8 surfaces keep their row order.
func decodeSurface(dst []byte, stride, ox, oy int, f SourceFormat, src []byte, width, height int, cube bool) {
	switch f {
	case SourceBC1:
		if width < 4 || height < 4 {
			swizzleBGRA(dst, stride, ox, oy, src, width, height, cube)
			return
		}
		decodeBC1(dst, stride, ox, oy, src, width, height)
	case SourceBGRA8:
		swizzleBGRA(dst, stride, ox, oy, src, width, height, cube)
	case SourceRGBA16F:
		copyRGBA16F(dst, stride, ox, oy, src, width, height)
	}
}

// topDown reports whether a flat surface of format f keeps file row order.
func topDown(f SourceFormat, width, height int) bool {
	switch f {
	case SourceBGRA8:
		return true
	case SourceBC1:
		return width < 4 || height < 4
	default:
		return false
	}
}
