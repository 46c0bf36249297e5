package png

import "sort"

// Critical chunk types defined by the PNG specification.
var (
	IHDR = MustParse("IHDR")
	PLTE = MustParse("PLTE")
	IDAT = MustParse("IDAT")
	IEND = MustParse("IEND")
)

// Definition describes a chunk type registered by the PNG specification or
// its APNG extension.
type Definition struct {
	// Type is the chunk type code.
	Type ChunkType

	// Name is a short human-readable name.
	Name string

	// Description summarizes what the chunk carries.
	Description string
}

var registry = map[ChunkType]Definition{}

func init() {
	for _, d := range []Definition{
		{IHDR, "Image header", "Width, height, bit depth, color type and interlace method"},
		{PLTE, "Palette", "Palette entries for indexed-color images"},
		{IDAT, "Image data", "Compressed image datastream"},
		{IEND, "Image trailer", "Marks the end of the PNG datastream"},
		{MustParse("cHRM"), "Primary chromaticities", "CIE chromaticities of the display primaries and white point"},
		{MustParse("gAMA"), "Image gamma", "Relationship between image samples and display output intensity"},
		{MustParse("iCCP"), "Embedded ICC profile", "Compressed ICC color profile"},
		{MustParse("sBIT"), "Significant bits", "Original number of significant bits per channel"},
		{MustParse("sRGB"), "Standard RGB color space", "Rendering intent for the sRGB color space"},
		{MustParse("cICP"), "Coding-independent code points", "Color primaries, transfer function and matrix coefficients"},
		{MustParse("mDCV"), "Mastering display color volume", "Characteristics of the mastering display"},
		{MustParse("cLLI"), "Content light level", "Maximum content and frame-average light levels"},
		{MustParse("bKGD"), "Background color", "Default background color"},
		{MustParse("hIST"), "Image histogram", "Approximate usage frequency of each palette entry"},
		{MustParse("tRNS"), "Transparency", "Simple transparency without a full alpha channel"},
		{MustParse("eXIf"), "Exchangeable image file profile", "Exif metadata"},
		{MustParse("pHYs"), "Physical pixel dimensions", "Intended pixel size or aspect ratio"},
		{MustParse("sPLT"), "Suggested palette", "Suggested palette for reduced-color displays"},
		{MustParse("tIME"), "Image last-modification time", "Time of the last image modification"},
		{MustParse("iTXt"), "International textual data", "UTF-8 keyword and text, optionally compressed"},
		{MustParse("tEXt"), "Textual data", "Latin-1 keyword and text"},
		{MustParse("zTXt"), "Compressed textual data", "Latin-1 keyword and compressed text"},
		{MustParse("acTL"), "Animation control", "Number of frames and plays of an animated image"},
		{MustParse("fcTL"), "Frame control", "Dimensions, position, delay and disposal of a frame"},
		{MustParse("fdAT"), "Frame data", "Compressed image data for an animation frame"},
	} {
		registry[d.Type] = d
	}
}

// Lookup returns the registered definition for c.
func Lookup(c ChunkType) (Definition, bool) {
	d, ok := registry[c]
	return d, ok
}

// IsKnown reports whether c is a registered chunk type.
func IsKnown(c ChunkType) bool {
	_, ok := registry[c]
	return ok
}

// Known returns every registered definition ordered by type bytes.
func Known() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, d := range registry {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Type.Compare(defs[j].Type) < 0
	})
	return defs
}
