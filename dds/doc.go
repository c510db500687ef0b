/*
Package dds decodes DirectDraw Surface textures into flat RGBA buffers.

Three pixel formats are recognized by exact match of the header's pixel-format
descriptor: BC1 (FourCC "DXT1"), uncompressed A8R8G8B8 and half-float RGBA
(FourCC 113). BC1 and half-float surfaces are written bottom-up so row 0 of the
result is the visually bottom row; cubemaps with all six faces are unfolded
into a 4x3 cross. Enfusion EDDS files (ENF1 marker, COPY/LZ4 block table) are
read through the same dispatch.

The package also writes BGRA8 and DXT1 surfaces as DDS or EDDS, which is how
the terrain tooling exports height maps.
*/
package dds
