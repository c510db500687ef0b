package dds

import "fmt"

const (
	crossColumns = 4
	crossRows    = 3
	cubeFaces    = 6
)

// crossOffsets places each stored face (+X, -X, +Y, -Y, +Z, -Z) in the 4x3
// unfolded cross, in face units of (column, row).
var crossOffsets = [cubeFaces][2]int{
	{2, 1},
	{0, 1},
	{1, 2},
	{1, 0},
	{1, 1},
	{3, 1},
}

// decodeCube assembles six consecutive faces into a cross layout image.
// Unused cells stay zero.
func decodeCube(h *header, f SourceFormat, payload []byte) (*Image, error) {
	if h.Caps2&caps2AllFaces != caps2AllFaces {
		return nil, fmt.Errorf("%w: caps2=0x%08x", ErrPartialCubemap, h.Caps2)
	}

	size := int(h.Width)
	if int(h.Height) != size {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquareCubemap, h.Width, h.Height)
	}

	stepSize, err := faceSize(f, size, size, h.mipCount())
	if err != nil {
		return nil, err
	}
	baseSize, err := levelSize(f, size, size, 0)
	if err != nil {
		return nil, err
	}
	if need := stepSize * cubeFaces; len(payload) < need {
		return nil, fmt.Errorf("%w: cubemap needs %d bytes, have %d", ErrTruncated, need, len(payload))
	}

	img, err := newImage(size*crossColumns, size*crossRows, f.Output())
	if err != nil {
		return nil, err
	}

	stride := img.Stride()
	for face, cell := range crossOffsets {
		src := payload[face*stepSize : face*stepSize+baseSize]
		decodeSurface(img.Pix, stride, cell[0]*size, cell[1]*size, f, src, size, size, true)
	}

	return img, nil
}
