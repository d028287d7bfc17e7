package tags

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"strings"

	// Decoders for the two cover formats modeled. Anything else is
	// classified as UNKNOWN and reports 0x0 dimensions.
	_ "image/jpeg"
	_ "image/png"
)

// iTunes data atom type codes for cover images.
const (
	atomTypeJPEG = 13
	atomTypePNG  = 14
)

// InspectAtomCover classifies a cover sourced from a covr data atom.
// The atom's data type code declares the image format.
func InspectAtomCover(raw []byte, typeCode uint32) Artwork {
	return inspectCover(raw, formatFromAtomCode(typeCode))
}

// InspectFrameCover classifies a cover sourced from an APIC frame.
// The frame's MIME type declares the image format.
func InspectFrameCover(raw []byte, mimeType string) Artwork {
	return inspectCover(raw, formatFromMIME(mimeType))
}

// inspectCover hashes the raw bytes and decodes the pixel dimensions.
// Undecodable images keep their declared format but report 0x0, which
// fails the canonical size check downstream.
func inspectCover(raw []byte, format ImageFormat) Artwork {
	sum := sha256.Sum256(raw)
	art := Artwork{
		Format:      format,
		ContentHash: hex.EncodeToString(sum[:]),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(raw)); err == nil {
		art.Width = cfg.Width
		art.Height = cfg.Height
	}
	return art
}

func formatFromAtomCode(typeCode uint32) ImageFormat {
	switch typeCode {
	case atomTypeJPEG:
		return FormatJPEG
	case atomTypePNG:
		return FormatPNG
	default:
		return FormatUnknown
	}
}

func formatFromMIME(mimeType string) ImageFormat {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.Contains(mimeType, "jpeg"):
		return FormatJPEG
	case strings.Contains(mimeType, "png"):
		return FormatPNG
	default:
		return FormatUnknown
	}
}
