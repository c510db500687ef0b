package dds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/woozymasta/bcn"
)

// Container selects the file layout produced by the writer.
type Container uint8

const (
	// ContainerDDS stores mip levels back to back, largest first.
	ContainerDDS Container = iota
	// ContainerEDDS stores an Enfusion block table and COPY/LZ4 bodies,
	// smallest level first.
	ContainerEDDS
)

// WriteOptions configures writing.
type WriteOptions struct {
	// Format is bcn.FormatBGRA8 (default when unknown) or bcn.FormatDXT1.
	Format bcn.Format
	// MaxMipMaps limits the chain; 0 means full chain.
	MaxMipMaps int
	// Container selects DDS or EDDS layout.
	Container Container
	// Compress enables LZ4 blocks for EDDS. Ignored for DDS.
	Compress bool
}

func (o *WriteOptions) format() bcn.Format {
	if o == nil || o.Format == bcn.FormatUnknown {
		return bcn.FormatBGRA8
	}

	return o.Format
}

// Write encodes img into a file at path.
func Write(img image.Image, path string, opts *WriteOptions) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}

	bw := bufio.NewWriter(f)
	if err := Encode(bw, img, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", ErrWritePayload, err)
	}

	return f.Close()
}

// Encode writes img as DDS or EDDS with a generated mip chain.
func Encode(w io.Writer, img image.Image, opts *WriteOptions) error {
	format := opts.format()
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if format == bcn.FormatDXT1 && (width < 4 || height < 4) {
		return fmt.Errorf("%w: DXT1 needs at least 4x4, got %dx%d", ErrInvalidDimensions, width, height)
	}

	mipMapCount, err := calculateMipMapCount(width, height)
	if err != nil {
		return err
	}
	if opts != nil && opts.MaxMipMaps > 0 && opts.MaxMipMaps < mipMapCount {
		mipMapCount = opts.MaxMipMaps
	}

	mips := bcn.GenerateMipmaps(img, false)
	if len(mips) > mipMapCount {
		mips = mips[:mipMapCount]
	}

	payloads := make([][]byte, len(mips))
	for i, mip := range mips {
		data, _, _, err := bcn.EncodeImageWithOptions(mip, format, nil)
		if err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeMipmap, i, err)
		}
		payloads[i] = data
	}

	return EncodeFromBlocks(w, format, width, height, payloads, opts)
}

// EncodeFromBlocks writes pre-encoded mip payloads, ordered largest to smallest.
func EncodeFromBlocks(w io.Writer, format bcn.Format, width, height int, mipmaps [][]byte, opts *WriteOptions) error {
	if len(mipmaps) == 0 {
		return ErrEmptyMipmaps
	}
	if format != bcn.FormatBGRA8 && format != bcn.FormatDXT1 {
		return ErrInvalidFormat
	}

	w32, err := u32FromInt(width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return err
	}
	mip32, err := u32FromInt(len(mipmaps))
	if err != nil {
		return err
	}

	for i, mip := range mipmaps {
		expected := expectedDataLength(format, mipDimension(width, i), mipDimension(height, i))
		if len(mip) != expected {
			return fmt.Errorf("%w: mipmap %d: expected %d, got %d", ErrMipmapSizeMismatch, i, expected, len(mip))
		}
	}

	enfusion := opts != nil && opts.Container == ContainerEDDS
	header, err := makeDDSHeader(w32, h32, mip32, format, enfusion)
	if err != nil {
		return err
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}

	if !enfusion {
		for i, mip := range mipmaps {
			if _, err := w.Write(mip); err != nil {
				return fmt.Errorf("%w: mipmap %d: %v", ErrWritePayload, i, err)
			}
		}
		return nil
	}

	return writeEDDSBlocks(w, mipmaps, opts.Compress)
}

// writeEDDSBlocks writes the block table and bodies, smallest level first.
func writeEDDSBlocks(w io.Writer, mipmaps [][]byte, compress bool) error {
	blocks := make([]*Block, len(mipmaps))
	for i, mip := range mipmaps {
		if compress {
			block, err := compressBlock(mip)
			if err != nil {
				return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeMipmap, i, err)
			}
			blocks[i] = block
			continue
		}

		size, err := i32FromInt(len(mip))
		if err != nil {
			return err
		}
		blocks[i] = &Block{Magic: BlockMagicCOPY, Size: size, Data: mip}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		block := blocks[i]
		if _, err := io.WriteString(w, block.Magic); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockTable, i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, block.Size); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockTable, i, err)
		}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if err := writeBlockData(w, blocks[i]); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
		}
	}

	return nil
}
